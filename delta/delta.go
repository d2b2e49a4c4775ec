// Package delta computes the symbolic one-step expansion of an LDLf
// formula (component C6's δ function). Delta is the engine behind the
// general star procedure in package star: instead of enumerating the
// automaton's alphabet, it rewrites a formula into a propositional
// formula over the current step's atoms plus quoted sub-formulas
// standing for "whatever must hold from the next step onward."
//
// Delta assumes its input is already in negation normal form (package
// normalize): LDLfNot never appears in an NNF'd tree, so this visitor
// has no case for it, and the box/diamond duality is recovered by
// De Morgan's law at the point where Box is handled, reusing
// normalize.NNF to push the negation rather than re-deriving it.
//
// Only the symbolic mode described by the translation is implemented.
// The non-symbolic ("ground") mode, parameterized by a concrete
// interpretation, belongs to the legacy eager BDD/SAT translation
// strategies; this module only supports the compositional translator,
// so that mode is left out (see DESIGN.md).
package delta

import (
	"fmt"

	"github.com/whitemech/lydia-sub000/normalize"
	"github.com/whitemech/lydia-sub000/syntax"
)

// Delta computes δ(f) (or, when epsilonMode is true, δ's "end of trace"
// variant used to decide whether f is nullable) as a propositional
// formula over the current step's atoms and quoted continuations.
func Delta(m *syntax.Manager, f syntax.LDLf, epsilonMode bool) (syntax.PropFormula, error) {
	switch t := f.(type) {
	case *syntax.LDLfTrue:
		return m.True(), nil
	case *syntax.LDLfFalse:
		return m.False(), nil
	case *syntax.LDLfAnd:
		return deltaAll(m, t.Children(), epsilonMode, m.And)
	case *syntax.LDLfOr:
		return deltaAll(m, t.Children(), epsilonMode, m.Or)
	case *syntax.LDLfDiamond:
		return deltaDiamond(m, t.Regex(), t.Body(), epsilonMode)
	case *syntax.LDLfBox:
		return deltaBox(m, t.Regex(), t.Body(), epsilonMode)
	case *syntax.LDLfF:
		return m.False(), nil
	case *syntax.LDLfT:
		return m.True(), nil
	case *syntax.LDLfQ:
		return Delta(m, t.Body(), epsilonMode)
	default:
		return nil, fmt.Errorf("delta.Delta: unexpected LDLf node %T (formula not in NNF?)", f)
	}
}

func deltaAll(
	m *syntax.Manager,
	children []syntax.LDLf,
	epsilonMode bool,
	combine func(...syntax.PropFormula) (syntax.PropFormula, error),
) (syntax.PropFormula, error) {
	parts := make([]syntax.PropFormula, len(children))
	for i, c := range children {
		p, err := Delta(m, c, epsilonMode)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}
	return combine(parts...)
}

// deltaDiamond implements δ(⟨r⟩ψ) by dispatching on r's shape.
func deltaDiamond(m *syntax.Manager, r syntax.Regex, psi syntax.LDLf, epsilonMode bool) (syntax.PropFormula, error) {
	switch re := r.(type) {
	case *syntax.PropRegex:
		if epsilonMode {
			return m.False(), nil
		}
		expanded, err := ExpandPlaceholders(m, psi)
		if err != nil {
			return nil, err
		}
		q := m.QuotedAtom(m.Quote(expanded))
		return m.And(re.Prop(), q)

	case *syntax.UnionRegex:
		// δ(⟨r1+r2⟩ψ) = δ(⟨r1⟩ψ) ∨ δ(⟨r2⟩ψ) ∨ ...
		parts := make([]syntax.PropFormula, len(re.Alternatives()))
		for i, alt := range re.Alternatives() {
			d, err := deltaDiamond(m, alt, psi, epsilonMode)
			if err != nil {
				return nil, err
			}
			parts[i] = d
		}
		return m.Or(parts...)

	case *syntax.SeqRegex:
		// δ(⟨r1;r2⟩ψ) = δ(⟨r1⟩⟨r2;...;rn⟩ψ)
		parts := re.Parts()
		nested := psi
		for i := len(parts) - 1; i >= 1; i-- {
			d, err := m.Diamond(parts[i], nested)
			if err != nil {
				return nil, err
			}
			nested = d
		}
		return deltaDiamond(m, parts[0], nested, epsilonMode)

	case *syntax.StarRegex:
		// δ(⟨r*⟩ψ) = δ(ψ) ∨ δ(⟨r⟩F(⟨r*⟩ψ))
		dPsi, err := Delta(m, psi, epsilonMode)
		if err != nil {
			return nil, err
		}
		starDiamond, err := m.Diamond(re, psi)
		if err != nil {
			return nil, err
		}
		f := m.LDLfF(starDiamond)
		dRest, err := deltaDiamond(m, re.Body(), f, epsilonMode)
		if err != nil {
			return nil, err
		}
		return m.Or(dPsi, dRest)

	case *syntax.TestRegex:
		// δ(⟨ψ'?⟩φ) = δ(ψ') ∧ δ(φ)
		dTest, err := Delta(m, re.Formula(), epsilonMode)
		if err != nil {
			return nil, err
		}
		dBody, err := Delta(m, psi, epsilonMode)
		if err != nil {
			return nil, err
		}
		return m.And(dTest, dBody)

	default:
		return nil, fmt.Errorf("delta.deltaDiamond: unexpected regex node %T", r)
	}
}

// deltaBox implements δ([r]ψ) as the De Morgan dual of δ(⟨r⟩¬ψ).
func deltaBox(m *syntax.Manager, r syntax.Regex, psi syntax.LDLf, epsilonMode bool) (syntax.PropFormula, error) {
	negated, err := m.LDLfNot(psi)
	if err != nil {
		return nil, err
	}
	negated, err = normalize.NNF(m, negated)
	if err != nil {
		return nil, err
	}
	d, err := deltaDiamond(m, r, negated, epsilonMode)
	if err != nil {
		return nil, err
	}
	switch d.(type) {
	case *syntax.PLTrue:
		return m.False(), nil
	case *syntax.PLFalse:
		return m.True(), nil
	}
	return m.Not(d)
}

// ExpandPlaceholders strips the F/T step-placeholders introduced by the
// star procedure's unrolling (they exist only to mark "the remaining
// occurrences still need at least one more step"), leaving their body
// untouched otherwise. The Q marker is preserved, so the star procedure's
// loop formula ⟨r⟩Q(body) comes out of expansion as the same formula and
// is reached again as the same worklist state; Delta treats a Q as its
// body.
func ExpandPlaceholders(m *syntax.Manager, f syntax.LDLf) (syntax.LDLf, error) {
	switch t := f.(type) {
	case *syntax.LDLfTrue, *syntax.LDLfFalse:
		return f, nil
	case *syntax.LDLfAnd:
		children, err := expandChildren(m, t.Children())
		if err != nil {
			return nil, err
		}
		return m.LDLfAnd(children...)
	case *syntax.LDLfOr:
		children, err := expandChildren(m, t.Children())
		if err != nil {
			return nil, err
		}
		return m.LDLfOr(children...)
	case *syntax.LDLfDiamond:
		body, err := ExpandPlaceholders(m, t.Body())
		if err != nil {
			return nil, err
		}
		return m.Diamond(t.Regex(), body)
	case *syntax.LDLfBox:
		body, err := ExpandPlaceholders(m, t.Body())
		if err != nil {
			return nil, err
		}
		return m.Box(t.Regex(), body)
	case *syntax.LDLfF:
		return ExpandPlaceholders(m, t.Body())
	case *syntax.LDLfT:
		return ExpandPlaceholders(m, t.Body())
	case *syntax.LDLfQ:
		body, err := ExpandPlaceholders(m, t.Body())
		if err != nil {
			return nil, err
		}
		return m.LDLfQ(body), nil
	default:
		return nil, fmt.Errorf("delta.ExpandPlaceholders: unexpected LDLf node %T", f)
	}
}

// Nullable reports whether f accepts the empty continuation (no further
// input). It is δ evaluated in epsilon mode, which always reduces to
// True or False with no free atoms left (every case either short-circuits
// to a constant or recurses structurally), so the result never needs a
// BDD or an interpretation.
func Nullable(m *syntax.Manager, f syntax.LDLf) (bool, error) {
	d, err := Delta(m, f, true)
	if err != nil {
		return false, err
	}
	switch d.(type) {
	case *syntax.PLTrue:
		return true, nil
	case *syntax.PLFalse:
		return false, nil
	default:
		return false, fmt.Errorf("delta.Nullable: epsilon-mode delta did not reduce to a constant, got %s", d.String())
	}
}

func expandChildren(m *syntax.Manager, children []syntax.LDLf) ([]syntax.LDLf, error) {
	out := make([]syntax.LDLf, len(children))
	for i, c := range children {
		e, err := ExpandPlaceholders(m, c)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
