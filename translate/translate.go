// Package translate is the compositional LDLf-to-DFA translator
// (component C5): given a formula, it fixes an alphabet once from the
// formula's atoms and then builds the DFA bottom-up, recursing on
// structure and delegating regex modalities to a dedicated visitor
// (Diamond/Box) and the general star procedure (package star) rather
// than ever enumerating the alphabet directly.
package translate

import (
	"fmt"
	"sort"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/internal/bdd"
	"github.com/whitemech/lydia-sub000/normalize"
	"github.com/whitemech/lydia-sub000/star"
	"github.com/whitemech/lydia-sub000/syntax"
)

// translator carries the state shared by every recursive step of one
// top-level ToDFA call: the same BDD manager and the same fixed,
// alphabetically-ordered variable set, so every Product call downstream
// is comparing DFAs over one alphabet.
type translator struct {
	m        *syntax.Manager
	bmgr     *bdd.Manager
	varNames []string
	atomIdx  map[string]int
}

// ToDFA is the compositional translator's entry point: NNF the formula,
// fix its alphabet, and recurse.
func ToDFA(m *syntax.Manager, f syntax.LDLf) (*dfa.DFA, error) {
	nf, err := normalize.NNF(m, f)
	if err != nil {
		return nil, err
	}
	varNames := atoms(nf)
	tr := &translator{
		m:        m,
		bmgr:     bdd.NewManager(),
		varNames: varNames,
		atomIdx:  dfa.AtomIndex(varNames),
	}
	return tr.toDFA(nf)
}

func (tr *translator) toDFA(f syntax.LDLf) (*dfa.DFA, error) {
	switch t := f.(type) {
	case *syntax.LDLfTrue:
		return positiveSink(tr.bmgr, tr.varNames), nil
	case *syntax.LDLfFalse:
		return negativeSink(tr.bmgr, tr.varNames), nil
	case *syntax.LDLfNot:
		child, err := tr.toDFA(t.Child())
		if err != nil {
			return nil, err
		}
		return dfa.Minimize(dfa.Negation(child)), nil
	case *syntax.LDLfAnd:
		return tr.fold(t.Children(), dfa.OpAnd)
	case *syntax.LDLfOr:
		return tr.fold(t.Children(), dfa.OpOr)
	case *syntax.LDLfDiamond:
		return tr.diamondOrBox(t.Regex(), t.Body(), true)
	case *syntax.LDLfBox:
		return tr.diamondOrBox(t.Regex(), t.Body(), false)
	default:
		return nil, fmt.Errorf("translate.toDFA: unexpected LDLf node %T", f)
	}
}

// fold combines n sub-DFAs under op, smallest-state-count pair first
// (§4.4 step 3), stopping early once the accumulator is already a sink
// that op can no longer change (a negative sink under AND, a positive
// sink under OR).
func (tr *translator) fold(children []syntax.LDLf, op dfa.Op) (*dfa.DFA, error) {
	pending := make([]*dfa.DFA, len(children))
	for i, c := range children {
		d, err := tr.toDFA(c)
		if err != nil {
			return nil, err
		}
		pending[i] = d
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].NStates() < pending[j].NStates() })

	absorbing := func(d *dfa.DFA) bool {
		if op == dfa.OpAnd {
			return d.IsNegativeSink()
		}
		return d.IsPositiveSink()
	}

	acc := pending[0]
	for _, d := range pending[1:] {
		if absorbing(acc) {
			break
		}
		acc = dfa.Minimize(dfa.Product(acc, d, op))
	}
	return acc, nil
}

// diamondOrBox reduces a box reading to a negated diamond reading once
// (standard modal duality, [r]psi = not<r>not psi, extended to a whole
// regex rather than one step), so every regex case below only ever has
// to implement the existential reading.
func (tr *translator) diamondOrBox(r syntax.Regex, body syntax.LDLf, existential bool) (*dfa.DFA, error) {
	if !existential {
		negBody, err := tr.m.LDLfNot(body)
		if err != nil {
			return nil, err
		}
		negBody, err = normalize.NNF(tr.m, negBody)
		if err != nil {
			return nil, err
		}
		d, err := tr.diamondOrBox(r, negBody, true)
		if err != nil {
			return nil, err
		}
		return dfa.Minimize(dfa.Negation(d)), nil
	}

	switch re := r.(type) {
	case *syntax.PropRegex:
		cont, err := tr.toDFA(body)
		if err != nil {
			return nil, err
		}
		return tr.regexConcat(re, cont)

	case *syntax.SeqRegex:
		parts := re.Parts()
		nested := body
		var err error
		for i := len(parts) - 1; i >= 1; i-- {
			nested, err = tr.m.Diamond(parts[i], nested)
			if err != nil {
				return nil, err
			}
		}
		return tr.diamondOrBox(parts[0], nested, true)

	case *syntax.UnionRegex:
		var acc *dfa.DFA
		for _, alt := range re.Alternatives() {
			altDFA, err := tr.diamondOrBox(alt, body, true)
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = altDFA
				continue
			}
			acc = dfa.Minimize(dfa.Product(acc, altDFA, dfa.OpOr))
			if acc.IsPositiveSink() {
				break
			}
		}
		return acc, nil

	case *syntax.TestRegex:
		testDFA, err := tr.toDFA(re.Formula())
		if err != nil {
			return nil, err
		}
		bodyDFA, err := tr.toDFA(body)
		if err != nil {
			return nil, err
		}
		return dfa.Minimize(dfa.Product(testDFA, bodyDFA, dfa.OpAnd)), nil

	case *syntax.StarRegex:
		ctx := &star.Context{
			M:          tr.m,
			BDD:        tr.bmgr,
			VarNames:   tr.varNames,
			ToDFA:      tr.toDFA,
			RegexToDFA: tr.regexConcat,
		}
		return ctx.Star(re, body, true)

	default:
		return nil, fmt.Errorf("translate.diamondOrBox: unexpected regex node %T", r)
	}
}

// regexConcat builds the DFA of regex r followed by end: a plain
// (existential, test-allowed) regex-to-DFA compiler used both by the
// top-level Diamond dispatch above and, restricted to test-free regexes,
// by the star package's linear shortcut.
func (tr *translator) regexConcat(r syntax.Regex, end *dfa.DFA) (*dfa.DFA, error) {
	switch re := r.(type) {
	case *syntax.PropRegex:
		d := dfa.New(tr.bmgr, tr.varNames)
		s0 := d.AddState(false)
		s1 := d.AddState(true)
		d.SetInitial(s0)
		guard := dfa.GuardToBDD(tr.bmgr, tr.atomIdx, re.Prop())
		d.AddTransition(s0, guard, s1)
		return dfa.Minimize(dfa.Concatenate(d, end)), nil

	case *syntax.SeqRegex:
		parts := re.Parts()
		acc := end
		for i := len(parts) - 1; i >= 0; i-- {
			var err error
			acc, err = tr.regexConcat(parts[i], acc)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	case *syntax.UnionRegex:
		var acc *dfa.DFA
		for _, alt := range re.Alternatives() {
			altDFA, err := tr.regexConcat(alt, end)
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = altDFA
				continue
			}
			acc = dfa.Minimize(dfa.Product(acc, altDFA, dfa.OpOr))
			if acc.IsPositiveSink() {
				break
			}
		}
		return acc, nil

	case *syntax.TestRegex:
		testDFA, err := tr.toDFA(re.Formula())
		if err != nil {
			return nil, err
		}
		return dfa.Minimize(dfa.Product(testDFA, end, dfa.OpAnd)), nil

	case *syntax.StarRegex:
		oneStep, err := tr.regexConcat(re.Body(), positiveSink(tr.bmgr, tr.varNames))
		if err != nil {
			return nil, err
		}
		oneStep.SetFinal(oneStep.Initial(), true)
		closed := dfa.Minimize(dfa.Closure(oneStep))
		return dfa.Minimize(dfa.Concatenate(closed, end)), nil

	default:
		return nil, fmt.Errorf("translate.regexConcat: unexpected regex node %T", r)
	}
}

func positiveSink(mgr *bdd.Manager, varNames []string) *dfa.DFA {
	d := dfa.New(mgr, varNames)
	s := d.AddState(true)
	d.SetInitial(s)
	d.AddTransition(s, mgr.One(), s)
	return d
}

func negativeSink(mgr *bdd.Manager, varNames []string) *dfa.DFA {
	d := dfa.New(mgr, varNames)
	s := d.AddState(false)
	d.SetInitial(s)
	d.AddTransition(s, mgr.One(), s)
	return d
}
