// Package star builds the DFA for a Diamond or Box formula whose regex is
// a Kleene star (component C6, §4.5): the one part of the compositional
// translator that cannot be handled by the DFA algebra alone, since a
// star's body may iterate an unbounded number of times.
//
// Two constructions are implemented, selected by whether the star's body
// contains a Test:
//
//   - Test-free: build an automaton for one iteration of the body ending
//     in acceptance, add the empty word, close it (one-or-more becomes
//     zero-or-more), then concatenate with the continuation. Entirely
//     built from the dfa package's algebra.
//
//   - General: the body may test arbitrary LDLf sub-formulas, so a single
//     step can depend on the DFA of another formula entirely. This is
//     handled by symbolic subset construction over formula states: each
//     automaton state is an LDLf formula (the conjunction of whatever
//     sub-obligations must still hold), transitions are read off the
//     prime implicants of that formula's delta expansion (package delta).
//     Every sub-formula a transition depends on - the star's own loop
//     marker, an ordinary continuation obligation, or the negation of one
//     when an implicant requires a quoted sub-formula to not hold - is
//     explored the same way: as a new pending formula state in the one
//     worklist, never through a separately pre-built DFA.
//
// The literal translation bit-encodes simultaneous alternatives into
// auxiliary existential/universal BDD variables to avoid state blowup in
// the general case; this package instead keeps each reachable subset as
// its own hash-consed LDLf formula and lets the Manager's interning do
// the deduplication. See DESIGN.md for the precise tradeoff (soundness
// is preserved; two prime implicants whose guards genuinely overlap but
// name different targets resolve to whichever was applied last, which
// can under-approximate the rare formula that relies on trying both).
package star

import (
	"fmt"

	"github.com/whitemech/lydia-sub000/delta"
	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/internal/bdd"
	"github.com/whitemech/lydia-sub000/normalize"
	"github.com/whitemech/lydia-sub000/pl"
	"github.com/whitemech/lydia-sub000/syntax"
)

// Context bundles what the star procedure needs from the surrounding
// compositional translator, passed in rather than imported to avoid a
// translate<->star import cycle (translate calls into star for every
// Diamond/Box-of-Star node, and star calls back into translate to build
// the continuation's DFA and to compile plain regex bodies).
type Context struct {
	M        *syntax.Manager
	BDD      *bdd.Manager
	VarNames []string

	// ToDFA builds the DFA for an arbitrary LDLf formula (translate's own
	// entry point).
	ToDFA func(syntax.LDLf) (*dfa.DFA, error)

	// RegexToDFA builds the DFA for regex r followed by end (translate's
	// own regex visitor), used by the test-free shortcut.
	RegexToDFA func(r syntax.Regex, end *dfa.DFA) (*dfa.DFA, error)
}

// Star builds the DFA for Diamond(r, body) (existential=true) or
// Box(r, body) (existential=false) where r is a StarRegex.
func (ctx *Context) Star(r *syntax.StarRegex, body syntax.LDLf, existential bool) (*dfa.DFA, error) {
	if !existential {
		negBody, err := ctx.M.LDLfNot(body)
		if err != nil {
			return nil, err
		}
		negBody, err = normalize.NNF(ctx.M, negBody)
		if err != nil {
			return nil, err
		}
		d, err := ctx.Star(r, negBody, true)
		if err != nil {
			return nil, err
		}
		return dfa.Negation(d), nil
	}

	if !containsTest(r.Body()) {
		return ctx.testFreeStar(r, body)
	}
	return ctx.generalStar(r, body)
}

func containsTest(r syntax.Regex) bool {
	switch re := r.(type) {
	case *syntax.PropRegex:
		return false
	case *syntax.TestRegex:
		return true
	case *syntax.SeqRegex:
		for _, p := range re.Parts() {
			if containsTest(p) {
				return true
			}
		}
		return false
	case *syntax.UnionRegex:
		for _, a := range re.Alternatives() {
			if containsTest(a) {
				return true
			}
		}
		return false
	case *syntax.StarRegex:
		return containsTest(re.Body())
	default:
		return true // unknown shape: don't take the shortcut
	}
}

// testFreeStar implements the linear construction (§4.5): one iteration
// of r ending in acceptance, plus the empty word, closed, then handed off
// into the continuation.
func (ctx *Context) testFreeStar(r *syntax.StarRegex, body syntax.LDLf) (*dfa.DFA, error) {
	end := positiveSink(ctx.BDD, ctx.VarNames)
	oneStep, err := ctx.RegexToDFA(r.Body(), end)
	if err != nil {
		return nil, err
	}
	oneStep.SetFinal(oneStep.Initial(), true) // add the empty word

	closed := dfa.Minimize(dfa.Closure(oneStep))

	cont, err := ctx.ToDFA(body)
	if err != nil {
		return nil, err
	}
	return dfa.Minimize(dfa.Concatenate(closed, cont)), nil
}

func positiveSink(mgr *bdd.Manager, varNames []string) *dfa.DFA {
	d := dfa.New(mgr, varNames)
	s := d.AddState(true)
	d.SetInitial(s)
	d.AddTransition(s, mgr.One(), s)
	return d
}

// generalStar implements the subset construction described in the
// package doc: states are LDLf formulas reached from the seed formula
// <r*>Q(body) by following delta's prime implicants, explored through a
// worklist rather than any precomputed automaton.
func (ctx *Context) generalStar(r *syntax.StarRegex, body syntax.LDLf) (*dfa.DFA, error) {
	seed, err := ctx.M.Diamond(r, ctx.M.LDLfQ(body))
	if err != nil {
		return nil, err
	}

	out := dfa.New(ctx.BDD, ctx.VarNames)
	atomIdx := dfa.AtomIndex(ctx.VarNames)

	stateID := map[string]int{}
	var pending []syntax.LDLf

	getState := func(f syntax.LDLf) (int, error) {
		key := f.String()
		if id, ok := stateID[key]; ok {
			return id, nil
		}
		nullable, err := delta.Nullable(ctx.M, f)
		if err != nil {
			return 0, err
		}
		id := out.AddState(nullable)
		stateID[key] = id
		pending = append(pending, f)
		return id, nil
	}

	initID, err := getState(seed)
	if err != nil {
		return nil, err
	}
	out.SetInitial(initID)

	for i := 0; i < len(pending); i++ {
		f := pending[i]
		id := stateID[f.String()]

		d, err := delta.Delta(ctx.M, f, false)
		if err != nil {
			return nil, err
		}
		atoms := pl.Atoms(d)
		nodes := pl.AtomNodes(d)
		implicants := pl.PrimeImplicants(d, atoms)

		for _, imp := range implicants {
			var guardLits []syntax.PropFormula
			var targets []syntax.LDLf
			for name, val := range imp {
				node := nodes[name]
				if node.IsQuoted() {
					ldlfBody, ok := node.Quoted().Formula().(syntax.LDLf)
					if !ok {
						return nil, fmt.Errorf("star: quoted atom did not wrap an LDLf formula: %s", node.String())
					}
					if !val {
						// The implicant requires this continuation to not
						// hold, so the actual obligation it contributes is
						// the formula's own negation, not nothing.
						negBody, err := ctx.M.LDLfNot(ldlfBody)
						if err != nil {
							return nil, err
						}
						ldlfBody, err = normalize.NNF(ctx.M, negBody)
						if err != nil {
							return nil, err
						}
					}
					targets = append(targets, ldlfBody)
					continue
				}
				if val {
					guardLits = append(guardLits, node)
				} else {
					neg, err := ctx.M.Not(node)
					if err != nil {
						return nil, err
					}
					guardLits = append(guardLits, neg)
				}
			}

			var guard syntax.PropFormula
			if len(guardLits) == 0 {
				guard = ctx.M.True()
			} else {
				guard, err = ctx.M.And(guardLits...)
				if err != nil {
					return nil, err
				}
			}
			guardBDD := dfa.GuardToBDD(ctx.BDD, atomIdx, guard)

			var targetFormula syntax.LDLf
			switch len(targets) {
			case 0:
				targetFormula = ctx.M.LDLfTrue()
			case 1:
				targetFormula = targets[0]
			default:
				targetFormula, err = ctx.M.LDLfAnd(targets...)
				if err != nil {
					return nil, err
				}
			}
			targetID, err := getState(targetFormula)
			if err != nil {
				return nil, err
			}
			out.AddTransition(id, guardBDD, targetID)
		}
	}

	return dfa.Minimize(out), nil
}
