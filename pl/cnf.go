package pl

import "github.com/whitemech/lydia-sub000/syntax"

// CNF converts f to conjunctive normal form by first computing its NNF and
// then distributing Or over And. The prime-implicant enumerator and the
// star procedure do not call it; they work on the formula as given.
// Distribution is the textbook recursive rule, not Tseitin's
// linear encoding: delta-expansions are small enough in practice that the
// blow-up never matters, and a direct formula (rather than a fresh set of
// auxiliary variables) is what the rest of this package's literal-based
// implicant search expects.
func CNF(m *syntax.Manager, f syntax.PropFormula) (syntax.PropFormula, error) {
	n, err := NNF(m, f)
	if err != nil {
		return nil, err
	}
	return distribute(m, n)
}

func distribute(m *syntax.Manager, f syntax.PropFormula) (syntax.PropFormula, error) {
	switch t := f.(type) {
	case *syntax.PLAnd:
		parts := make([]syntax.PropFormula, len(t.Children()))
		for idx, c := range t.Children() {
			cc, err := distribute(m, c)
			if err != nil {
				return nil, err
			}
			parts[idx] = cc
		}
		return m.And(parts...)
	case *syntax.PLOr:
		children := t.Children()
		acc, err := distribute(m, children[0])
		if err != nil {
			return nil, err
		}
		for _, c := range children[1:] {
			cc, err := distribute(m, c)
			if err != nil {
				return nil, err
			}
			acc, err = distributeOrPair(m, acc, cc)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	default:
		return f, nil
	}
}

// distributeOrPair applies (a1 ^ ... ^ an) v b == (a1 v b) ^ ... ^ (an v b),
// recursing on whichever side is a conjunction.
func distributeOrPair(m *syntax.Manager, a, b syntax.PropFormula) (syntax.PropFormula, error) {
	if aAnd, ok := a.(*syntax.PLAnd); ok {
		clauses := make([]syntax.PropFormula, len(aAnd.Children()))
		for idx, ac := range aAnd.Children() {
			d, err := distributeOrPair(m, ac, b)
			if err != nil {
				return nil, err
			}
			clauses[idx] = d
		}
		return m.And(clauses...)
	}
	if bAnd, ok := b.(*syntax.PLAnd); ok {
		clauses := make([]syntax.PropFormula, len(bAnd.Children()))
		for idx, bc := range bAnd.Children() {
			d, err := distributeOrPair(m, a, bc)
			if err != nil {
				return nil, err
			}
			clauses[idx] = d
		}
		return m.And(clauses...)
	}
	return m.Or(a, b)
}
