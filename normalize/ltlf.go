package normalize

import "github.com/whitemech/lydia-sub000/syntax"

// LTLfToLDLf lowers an LTLf formula to its LDLf equivalent (§4.2). The
// output is not itself guaranteed to be in NNF — negation is built the
// straightforward way and pushed back by a subsequent NNF pass, which is
// how every caller already uses this function (LTLf→LDLf, then NNF, then
// the compositional translator).
func LTLfToLDLf(m *syntax.Manager, f syntax.LTLf) (syntax.LDLf, error) {
	switch t := f.(type) {
	case *syntax.LTLfTrue:
		return m.LDLfTrue(), nil
	case *syntax.LTLfFalse:
		return m.LDLfFalse(), nil
	case *syntax.LTLfAtom:
		return diamondTrue(m, m.Atom(t.Symbol()))
	case *syntax.LTLfAnd:
		children, err := translateAll(m, t.Children())
		if err != nil {
			return nil, err
		}
		return m.LDLfAnd(children...)
	case *syntax.LTLfOr:
		children, err := translateAll(m, t.Children())
		if err != nil {
			return nil, err
		}
		return m.LDLfOr(children...)
	case *syntax.LTLfNot:
		inner, err := LTLfToLDLf(m, t.Child())
		if err != nil {
			return nil, err
		}
		neg, err := m.LDLfNot(inner)
		if err != nil {
			return nil, err
		}
		return NNF(m, neg)
	case *syntax.LTLfNext:
		return next(m, t.Body())
	case *syntax.LTLfWeakNext:
		return weakNext(m, t.Body())
	case *syntax.LTLfUntil:
		return until(m, t.Left(), t.Right())
	case *syntax.LTLfRelease:
		return release(m, t.Left(), t.Right())
	case *syntax.LTLfEventually:
		return eventually(m, t.Body())
	case *syntax.LTLfAlways:
		return always(m, t.Body())
	default:
		panic("normalize.LTLfToLDLf: unreachable LTLf term")
	}
}

func translateAll(m *syntax.Manager, children []syntax.LTLf) ([]syntax.LDLf, error) {
	out := make([]syntax.LDLf, len(children))
	for i, c := range children {
		cc, err := LTLfToLDLf(m, c)
		if err != nil {
			return nil, err
		}
		out[i] = cc
	}
	return out, nil
}

// end builds "end", the LDLf formula [true]ff that holds only at the last
// instant of a trace.
func end(m *syntax.Manager) (syntax.LDLf, error) {
	r, err := trueRegex(m)
	if err != nil {
		return nil, err
	}
	return m.Box(r, m.LDLfFalse())
}

func trueRegex(m *syntax.Manager) (syntax.Regex, error) {
	return m.PropRegex(m.True())
}

func diamondTrue(m *syntax.Manager, prop syntax.PropFormula) (syntax.LDLf, error) {
	r, err := m.PropRegex(prop)
	if err != nil {
		return nil, err
	}
	return m.Diamond(r, m.LDLfTrue())
}

// next builds Xphi ≡ <true>(phi ^ ~end).
func next(m *syntax.Manager, body syntax.LTLf) (syntax.LDLf, error) {
	phi, err := LTLfToLDLf(m, body)
	if err != nil {
		return nil, err
	}
	e, err := end(m)
	if err != nil {
		return nil, err
	}
	notEnd, err := m.LDLfNot(e)
	if err != nil {
		return nil, err
	}
	conj, err := m.LDLfAnd(phi, notEnd)
	if err != nil {
		return nil, err
	}
	r, err := trueRegex(m)
	if err != nil {
		return nil, err
	}
	return m.Diamond(r, conj)
}

// weakNext builds WXphi ≡ [true](phi v end).
func weakNext(m *syntax.Manager, body syntax.LTLf) (syntax.LDLf, error) {
	phi, err := LTLfToLDLf(m, body)
	if err != nil {
		return nil, err
	}
	e, err := end(m)
	if err != nil {
		return nil, err
	}
	disj, err := m.LDLfOr(phi, e)
	if err != nil {
		return nil, err
	}
	r, err := trueRegex(m)
	if err != nil {
		return nil, err
	}
	return m.Box(r, disj)
}

// until builds alpha U beta ≡ <(alpha?;true)*>(beta ^ ~end).
func until(m *syntax.Manager, left, right syntax.LTLf) (syntax.LDLf, error) {
	star, err := testTrueStar(m, left)
	if err != nil {
		return nil, err
	}
	beta, err := LTLfToLDLf(m, right)
	if err != nil {
		return nil, err
	}
	e, err := end(m)
	if err != nil {
		return nil, err
	}
	notEnd, err := m.LDLfNot(e)
	if err != nil {
		return nil, err
	}
	conj, err := m.LDLfAnd(beta, notEnd)
	if err != nil {
		return nil, err
	}
	return m.Diamond(star, conj)
}

// release builds alpha R beta ≡ [(~alpha?;true)*](beta v end).
func release(m *syntax.Manager, left, right syntax.LTLf) (syntax.LDLf, error) {
	alpha, err := LTLfToLDLf(m, left)
	if err != nil {
		return nil, err
	}
	notAlpha, err := m.LDLfNot(alpha)
	if err != nil {
		return nil, err
	}
	star, err := testTrueStarFromLDLf(m, notAlpha)
	if err != nil {
		return nil, err
	}
	beta, err := LTLfToLDLf(m, right)
	if err != nil {
		return nil, err
	}
	e, err := end(m)
	if err != nil {
		return nil, err
	}
	disj, err := m.LDLfOr(beta, e)
	if err != nil {
		return nil, err
	}
	return m.Box(star, disj)
}

// eventually builds Fphi ≡ <true*>(phi ^ ~end).
func eventually(m *syntax.Manager, body syntax.LTLf) (syntax.LDLf, error) {
	phi, err := LTLfToLDLf(m, body)
	if err != nil {
		return nil, err
	}
	e, err := end(m)
	if err != nil {
		return nil, err
	}
	notEnd, err := m.LDLfNot(e)
	if err != nil {
		return nil, err
	}
	conj, err := m.LDLfAnd(phi, notEnd)
	if err != nil {
		return nil, err
	}
	star, err := trueStar(m)
	if err != nil {
		return nil, err
	}
	return m.Diamond(star, conj)
}

// always builds Gphi ≡ [true*](phi v end).
func always(m *syntax.Manager, body syntax.LTLf) (syntax.LDLf, error) {
	phi, err := LTLfToLDLf(m, body)
	if err != nil {
		return nil, err
	}
	e, err := end(m)
	if err != nil {
		return nil, err
	}
	disj, err := m.LDLfOr(phi, e)
	if err != nil {
		return nil, err
	}
	star, err := trueStar(m)
	if err != nil {
		return nil, err
	}
	return m.Box(star, disj)
}

func trueStar(m *syntax.Manager) (syntax.Regex, error) {
	r, err := trueRegex(m)
	if err != nil {
		return nil, err
	}
	return m.Star(r)
}

// testTrueStar builds (alpha?;true)* for an LTLf alpha.
func testTrueStar(m *syntax.Manager, alpha syntax.LTLf) (syntax.Regex, error) {
	ldlf, err := LTLfToLDLf(m, alpha)
	if err != nil {
		return nil, err
	}
	return testTrueStarFromLDLf(m, ldlf)
}

// testTrueStarFromLDLf builds (guard?;true)* from an already-lowered guard.
func testTrueStarFromLDLf(m *syntax.Manager, guard syntax.LDLf) (syntax.Regex, error) {
	test, err := m.Test(guard)
	if err != nil {
		return nil, err
	}
	tr, err := trueRegex(m)
	if err != nil {
		return nil, err
	}
	seq, err := m.Seq(test, tr)
	if err != nil {
		return nil, err
	}
	return m.Star(seq)
}
