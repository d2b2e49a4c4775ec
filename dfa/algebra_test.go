package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whitemech/lydia-sub000/internal/bdd"
)

// atLeastOneA accepts any non-empty trace containing at least one true-a.
func atLeastOneA(mgr *bdd.Manager) *DFA {
	d := New(mgr, []string{"a"})
	notSeen := d.AddState(false)
	seen := d.AddState(true)
	d.SetInitial(notSeen)
	a := mgr.Var(0)
	notA := mgr.Not(a)
	d.AddTransition(notSeen, a, seen)
	d.AddTransition(notSeen, notA, notSeen)
	d.AddTransition(seen, mgr.One(), seen)
	return d
}

func Test_Product_And(t *testing.T) {
	mgr := bdd.NewManager()
	even := twoStateEvenA(mgr)
	atLeast1 := atLeastOneA(mgr)

	prod := Product(even, atLeast1, OpAnd)

	trace := []map[int]bool{{0: true}, {0: true}}
	assert.Equal(t, even.Accepts(trace) && atLeast1.Accepts(trace), prod.Accepts(trace))

	trace2 := []map[int]bool{{0: true}}
	assert.Equal(t, even.Accepts(trace2) && atLeast1.Accepts(trace2), prod.Accepts(trace2))

	assert.Equal(t, even.Accepts(nil) && atLeast1.Accepts(nil), prod.Accepts(nil))
}

func Test_Negation(t *testing.T) {
	mgr := bdd.NewManager()
	even := twoStateEvenA(mgr)
	neg := Negation(even)

	trace := []map[int]bool{{0: true}}
	assert.Equal(t, !even.Accepts(trace), neg.Accepts(trace))
	assert.Equal(t, !even.Accepts(nil), neg.Accepts(nil))
}

func Test_Minimize_PreservesLanguageAndShrinks(t *testing.T) {
	mgr := bdd.NewManager()
	d := New(mgr, []string{"a"})
	s0 := d.AddState(true)
	s1 := d.AddState(true) // equivalent to s0: both accepting, both loop
	unreachable := d.AddState(false)
	_ = unreachable
	d.SetInitial(s0)
	a := mgr.Var(0)
	notA := mgr.Not(a)
	d.AddTransition(s0, a, s1)
	d.AddTransition(s0, notA, s1)
	d.AddTransition(s1, a, s0)
	d.AddTransition(s1, notA, s0)

	min := Minimize(d)
	assert.Equal(t, 1, min.NStates())

	for _, trace := range [][]map[int]bool{
		nil,
		{{0: true}},
		{{0: true}, {0: false}},
	} {
		assert.Equal(t, d.Accepts(trace), min.Accepts(trace))
	}
}

func Test_Concatenate(t *testing.T) {
	mgr := bdd.NewManager()
	// a: accepts exactly one true-a then stop (one-shot).
	aOnce := New(mgr, []string{"a"})
	start := aOnce.AddState(false)
	done := aOnce.AddState(true)
	aOnce.SetInitial(start)
	aVar := mgr.Var(0)
	notA := mgr.Not(aVar)
	aOnce.AddTransition(start, aVar, done)
	aOnce.AddTransition(start, notA, start)

	// b: accepts empty or any-a trace immediately (positive sink-ish, one state).
	bAny := New(mgr, []string{"a"})
	only := bAny.AddState(true)
	bAny.SetInitial(only)
	bAny.AddTransition(only, mgr.One(), only)

	cat := Concatenate(aOnce, bAny)

	// "a" then nothing more: aOnce reaches done (accepting), b accepts empty,
	// so the concatenation should accept.
	assert.True(t, cat.Accepts([]map[int]bool{{0: true}}))
	// "a a": a once into done, then b (accepts anything) consumes the rest.
	assert.True(t, cat.Accepts([]map[int]bool{{0: true}, {0: true}}))
	// empty: aOnce doesn't accept empty, so neither should the concatenation.
	assert.False(t, cat.Accepts(nil))
}

func Test_Closure(t *testing.T) {
	mgr := bdd.NewManager()
	aOnce := New(mgr, []string{"a"})
	start := aOnce.AddState(false)
	done := aOnce.AddState(true)
	aOnce.SetInitial(start)
	aVar := mgr.Var(0)
	notA := mgr.Not(aVar)
	aOnce.AddTransition(start, aVar, done)
	aOnce.AddTransition(start, notA, start)

	star := Closure(aOnce)
	// one repetition
	assert.True(t, star.Accepts([]map[int]bool{{0: true}}))
	// two repetitions, looping back through the initial transitions
	assert.True(t, star.Accepts([]map[int]bool{{0: true}, {0: true}}))
	// a single "a" is required per repetition; "not a" alone never accepts
	assert.False(t, star.Accepts([]map[int]bool{{0: false}}))
}
