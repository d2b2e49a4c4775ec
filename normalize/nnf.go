// Package normalize is the normal-form pipeline (component C3): LDLf
// negation-normal-form rewriting and the LTLf-to-LDLf lowering translation
// described in §4.2. Every entry point into the compositional translator
// (C5) runs a formula through this package first.
package normalize

import "github.com/whitemech/lydia-sub000/syntax"

// NNF rewrites f so negation appears only at propositional leaves. Regex
// subterms are recursed into without being negated themselves: a Test's
// inner formula is normalized, but PropRegex/Seq/Union/Star are otherwise
// left structurally alone (§4.2).
func NNF(m *syntax.Manager, f syntax.LDLf) (syntax.LDLf, error) {
	return nnf(m, f, false)
}

func nnf(m *syntax.Manager, f syntax.LDLf, negate bool) (syntax.LDLf, error) {
	switch t := f.(type) {
	case *syntax.LDLfTrue:
		if negate {
			return m.LDLfFalse(), nil
		}
		return m.LDLfTrue(), nil
	case *syntax.LDLfFalse:
		if negate {
			return m.LDLfTrue(), nil
		}
		return m.LDLfFalse(), nil
	case *syntax.LDLfNot:
		return nnf(m, t.Child(), !negate)
	case *syntax.LDLfAnd:
		children, err := nnfAll(m, t.Children(), negate)
		if err != nil {
			return nil, err
		}
		if negate {
			return m.LDLfOr(children...)
		}
		return m.LDLfAnd(children...)
	case *syntax.LDLfOr:
		children, err := nnfAll(m, t.Children(), negate)
		if err != nil {
			return nil, err
		}
		if negate {
			return m.LDLfAnd(children...)
		}
		return m.LDLfOr(children...)
	case *syntax.LDLfDiamond:
		body, err := nnf(m, t.Body(), negate)
		if err != nil {
			return nil, err
		}
		r, err := nnfRegex(m, t.Regex())
		if err != nil {
			return nil, err
		}
		if negate {
			return m.Box(r, body)
		}
		return m.Diamond(r, body)
	case *syntax.LDLfBox:
		body, err := nnf(m, t.Body(), negate)
		if err != nil {
			return nil, err
		}
		r, err := nnfRegex(m, t.Regex())
		if err != nil {
			return nil, err
		}
		if negate {
			return m.Diamond(r, body)
		}
		return m.Box(r, body)
	case *syntax.LDLfF:
		body, err := nnf(m, t.Body(), negate)
		if err != nil {
			return nil, err
		}
		if negate {
			return m.LDLfT(body), nil
		}
		return m.LDLfF(body), nil
	case *syntax.LDLfT:
		body, err := nnf(m, t.Body(), negate)
		if err != nil {
			return nil, err
		}
		if negate {
			return m.LDLfF(body), nil
		}
		return m.LDLfT(body), nil
	case *syntax.LDLfQ:
		if negate {
			return nil, contractViolation("NNF: Q placeholder cannot be negated, it is never produced under a Not")
		}
		body, err := nnf(m, t.Body(), false)
		if err != nil {
			return nil, err
		}
		return m.LDLfQ(body), nil
	default:
		panic("normalize.nnf: unreachable LDLf term")
	}
}

func nnfAll(m *syntax.Manager, children []syntax.LDLf, negate bool) ([]syntax.LDLf, error) {
	out := make([]syntax.LDLf, len(children))
	for i, c := range children {
		cc, err := nnf(m, c, negate)
		if err != nil {
			return nil, err
		}
		out[i] = cc
	}
	return out, nil
}

func nnfRegex(m *syntax.Manager, r syntax.Regex) (syntax.Regex, error) {
	switch t := r.(type) {
	case *syntax.PropRegex:
		return r, nil
	case *syntax.TestRegex:
		f, err := NNF(m, t.Formula())
		if err != nil {
			return nil, err
		}
		return m.Test(f)
	case *syntax.SeqRegex:
		parts := make([]syntax.Regex, len(t.Parts()))
		for i, p := range t.Parts() {
			pp, err := nnfRegex(m, p)
			if err != nil {
				return nil, err
			}
			parts[i] = pp
		}
		return m.Seq(parts...)
	case *syntax.UnionRegex:
		alts := make([]syntax.Regex, len(t.Alternatives()))
		for i, a := range t.Alternatives() {
			aa, err := nnfRegex(m, a)
			if err != nil {
				return nil, err
			}
			alts[i] = aa
		}
		return m.Union(alts...)
	case *syntax.StarRegex:
		body, err := nnfRegex(m, t.Body())
		if err != nil {
			return nil, err
		}
		return m.Star(body)
	default:
		panic("normalize.nnfRegex: unreachable regex term")
	}
}
