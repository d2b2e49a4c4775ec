package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whitemech/lydia-sub000/internal/bdd"
	"github.com/whitemech/lydia-sub000/syntax"
)

// twoStateEvenA builds a DFA over one variable "a" accepting traces with
// an even number of true-a instants (the classic mod-2 counter).
func twoStateEvenA(mgr *bdd.Manager) *DFA {
	d := New(mgr, []string{"a"})
	even := d.AddState(true)
	odd := d.AddState(false)
	d.SetInitial(even)
	a := mgr.Var(0)
	notA := mgr.Not(a)
	d.AddTransition(even, a, odd)
	d.AddTransition(even, notA, even)
	d.AddTransition(odd, a, even)
	d.AddTransition(odd, notA, odd)
	return d
}

func Test_DFA_AcceptsEvenCount(t *testing.T) {
	mgr := bdd.NewManager()
	d := twoStateEvenA(mgr)

	assert.True(t, d.Accepts(nil))
	assert.True(t, d.Accepts([]map[int]bool{{0: true}, {0: true}}))
	assert.False(t, d.Accepts([]map[int]bool{{0: true}}))
	assert.True(t, d.Accepts([]map[int]bool{{0: false}, {0: true}, {0: true}}))
}

func Test_GuardToBDD(t *testing.T) {
	mgr := bdd.NewManager()
	sm := syntax.NewManager()
	a := sm.Atom(sm.Symbol("a"))
	b := sm.Atom(sm.Symbol("b"))
	and, err := sm.And(a, b)
	assert.NoError(t, err)

	index := AtomIndex([]string{"a", "b"})
	guard := GuardToBDD(mgr, index, and)

	assert.Equal(t, 1, mgr.Eval(guard, map[int]bool{0: true, 1: true}))
	assert.Equal(t, 0, mgr.Eval(guard, map[int]bool{0: true, 1: false}))
}

func Test_SinkTests(t *testing.T) {
	mgr := bdd.NewManager()
	pos := New(mgr, nil)
	pos.AddState(true)
	pos.SetInitial(0)
	assert.True(t, pos.IsPositiveSink())
	assert.False(t, pos.IsNegativeSink())

	neg := New(mgr, nil)
	neg.AddState(false)
	neg.SetInitial(0)
	assert.True(t, neg.IsNegativeSink())
}
