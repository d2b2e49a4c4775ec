// Package sexpr is the thin formula reader §4.10 calls for: it accepts
// only the fully-parenthesized internal AST shape (e.g.
// "(diamond (prop a) true)"), never a concrete infix grammar with
// precedence/associativity rules to get right - that would be the
// "concrete-syntax parser" this repo's scope deliberately excludes. Both
// cmd/lydia and httpapi share this one reader rather than each rolling
// their own.
//
// LTLf surface syntax is out of scope here: an LTLf AST built
// programmatically through syntax.Manager still lowers to LDLf via
// normalize.LTLfToLDLf as always, but this reader's own grammar only
// covers the LDLf/regex/propositional shapes, since a formula typed by
// hand at a CLI or HTTP caller is the case that matters for this reader.
package sexpr

import (
	"strings"

	"github.com/whitemech/lydia-sub000/errs"
	"github.com/whitemech/lydia-sub000/syntax"
)

// Parse reads one fully-parenthesized LDLf formula from s.
func Parse(m *syntax.Manager, s string) (syntax.LDLf, error) {
	toks := tokenize(s)
	ts := &tokenStream{toks: toks}
	f, err := parseLDLf(m, ts)
	if err != nil {
		return nil, err
	}
	if !ts.atEnd() {
		return nil, errs.Contract("sexpr: trailing input after formula: " + ts.rest())
	}
	return f, nil
}

func tokenize(s string) []string {
	s = strings.ReplaceAll(s, "(", " ( ")
	s = strings.ReplaceAll(s, ")", " ) ")
	return strings.Fields(s)
}

type tokenStream struct {
	toks []string
	pos  int
}

func (ts *tokenStream) atEnd() bool { return ts.pos >= len(ts.toks) }

func (ts *tokenStream) rest() string { return strings.Join(ts.toks[ts.pos:], " ") }

func (ts *tokenStream) peek() (string, bool) {
	if ts.atEnd() {
		return "", false
	}
	return ts.toks[ts.pos], true
}

func (ts *tokenStream) next() (string, error) {
	t, ok := ts.peek()
	if !ok {
		return "", errs.Contract("sexpr: unexpected end of input")
	}
	ts.pos++
	return t, nil
}

func (ts *tokenStream) expect(lit string) error {
	t, err := ts.next()
	if err != nil {
		return err
	}
	if t != lit {
		return errs.Contract("sexpr: expected " + lit + ", got " + t)
	}
	return nil
}

func parseLDLf(m *syntax.Manager, ts *tokenStream) (syntax.LDLf, error) {
	tok, err := ts.next()
	if err != nil {
		return nil, err
	}
	switch tok {
	case "true":
		return m.LDLfTrue(), nil
	case "false":
		return m.LDLfFalse(), nil
	case "(":
		return parseLDLfForm(m, ts)
	default:
		return nil, errs.Contract("sexpr: expected an LDLf formula, got " + tok)
	}
}

func parseLDLfForm(m *syntax.Manager, ts *tokenStream) (syntax.LDLf, error) {
	head, err := ts.next()
	if err != nil {
		return nil, err
	}
	switch head {
	case "not":
		child, err := parseLDLf(m, ts)
		if err != nil {
			return nil, err
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		return m.LDLfNot(child)

	case "and", "or":
		var children []syntax.LDLf
		for {
			if t, ok := ts.peek(); ok && t == ")" {
				break
			}
			c, err := parseLDLf(m, ts)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		if head == "and" {
			return m.LDLfAnd(children...)
		}
		return m.LDLfOr(children...)

	case "diamond", "box":
		r, err := parseRegex(m, ts)
		if err != nil {
			return nil, err
		}
		body, err := parseLDLf(m, ts)
		if err != nil {
			return nil, err
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		if head == "diamond" {
			return m.Diamond(r, body)
		}
		return m.Box(r, body)

	default:
		return nil, errs.Contract("sexpr: unknown LDLf form " + head)
	}
}

func parseRegex(m *syntax.Manager, ts *tokenStream) (syntax.Regex, error) {
	if err := ts.expect("("); err != nil {
		return nil, err
	}
	head, err := ts.next()
	if err != nil {
		return nil, err
	}
	switch head {
	case "prop":
		p, err := parseProp(m, ts)
		if err != nil {
			return nil, err
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		return m.PropRegex(p)

	case "seq", "union":
		var parts []syntax.Regex
		for {
			if t, ok := ts.peek(); ok && t == ")" {
				break
			}
			r, err := parseRegex(m, ts)
			if err != nil {
				return nil, err
			}
			parts = append(parts, r)
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		if head == "seq" {
			return m.Seq(parts...)
		}
		return m.Union(parts...)

	case "test":
		f, err := parseLDLf(m, ts)
		if err != nil {
			return nil, err
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		return m.Test(f)

	case "star":
		r, err := parseRegex(m, ts)
		if err != nil {
			return nil, err
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		return m.Star(r)

	default:
		return nil, errs.Contract("sexpr: unknown regex form " + head)
	}
}

func parseProp(m *syntax.Manager, ts *tokenStream) (syntax.PropFormula, error) {
	tok, err := ts.next()
	if err != nil {
		return nil, err
	}
	switch tok {
	case "true":
		return m.True(), nil
	case "false":
		return m.False(), nil
	case "(":
		return parsePropForm(m, ts)
	default:
		return m.Atom(m.Symbol(tok)), nil
	}
}

func parsePropForm(m *syntax.Manager, ts *tokenStream) (syntax.PropFormula, error) {
	head, err := ts.next()
	if err != nil {
		return nil, err
	}
	switch head {
	case "not":
		child, err := parseProp(m, ts)
		if err != nil {
			return nil, err
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		return m.Not(child)

	case "and", "or":
		var children []syntax.PropFormula
		for {
			if t, ok := ts.peek(); ok && t == ")" {
				break
			}
			c, err := parseProp(m, ts)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		if err := ts.expect(")"); err != nil {
			return nil, err
		}
		if head == "and" {
			return m.And(children...)
		}
		return m.Or(children...)

	default:
		return nil, errs.Contract("sexpr: unknown propositional form " + head)
	}
}
