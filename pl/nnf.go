package pl

import "github.com/whitemech/lydia-sub000/syntax"

// NNF pushes negations down to literals, the propositional half of the
// normal-form transform described in §4.2 (the LDLf/LTLf transformer in the
// normalize package has its own rules and does not call it).
func NNF(m *syntax.Manager, f syntax.PropFormula) (syntax.PropFormula, error) {
	return nnf(m, f, false)
}

func nnf(m *syntax.Manager, f syntax.PropFormula, negate bool) (syntax.PropFormula, error) {
	switch t := f.(type) {
	case *syntax.PLTrue:
		if negate {
			return m.False(), nil
		}
		return m.True(), nil
	case *syntax.PLFalse:
		if negate {
			return m.True(), nil
		}
		return m.False(), nil
	case *syntax.PLAtom:
		if negate {
			return m.Not(t)
		}
		return t, nil
	case *syntax.PLNot:
		return nnf(m, t.Child(), !negate)
	case *syntax.PLAnd:
		children := make([]syntax.PropFormula, len(t.Children()))
		for idx, c := range t.Children() {
			cc, err := nnf(m, c, negate)
			if err != nil {
				return nil, err
			}
			children[idx] = cc
		}
		if negate {
			return m.Or(children...)
		}
		return m.And(children...)
	case *syntax.PLOr:
		children := make([]syntax.PropFormula, len(t.Children()))
		for idx, c := range t.Children() {
			cc, err := nnf(m, c, negate)
			if err != nil {
				return nil, err
			}
			children[idx] = cc
		}
		if negate {
			return m.And(children...)
		}
		return m.Or(children...)
	default:
		panic("pl.nnf: unreachable propositional term")
	}
}
