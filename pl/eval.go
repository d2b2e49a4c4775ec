package pl

import "github.com/whitemech/lydia-sub000/syntax"

// Eval evaluates f under the given interpretation.
func Eval(f syntax.PropFormula, i Interpretation) bool {
	switch t := f.(type) {
	case *syntax.PLTrue:
		return true
	case *syntax.PLFalse:
		return false
	case *syntax.PLAtom:
		return i[atomKey(t)]
	case *syntax.PLAnd:
		for _, c := range t.Children() {
			if !Eval(c, i) {
				return false
			}
		}
		return true
	case *syntax.PLOr:
		for _, c := range t.Children() {
			if Eval(c, i) {
				return true
			}
		}
		return false
	case *syntax.PLNot:
		return !Eval(t.Child(), i)
	default:
		panic("pl.Eval: unreachable propositional term")
	}
}
