package bdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_VarAndTerminalsHashCons(t *testing.T) {
	m := NewManager()
	a1 := m.Var(0)
	a2 := m.Var(0)
	assert.True(t, Equal(a1, a2))

	one1 := m.One()
	one2 := m.Terminal(1)
	assert.True(t, Equal(one1, one2))
}

func Test_AndOrNot(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	b := m.Var(1)

	and := m.And(a, b)
	assert.Equal(t, 1, m.Eval(and, map[int]bool{0: true, 1: true}))
	assert.Equal(t, 0, m.Eval(and, map[int]bool{0: true, 1: false}))

	or := m.Or(a, b)
	assert.Equal(t, 1, m.Eval(or, map[int]bool{0: false, 1: true}))
	assert.Equal(t, 0, m.Eval(or, map[int]bool{0: false, 1: false}))

	not := m.Not(a)
	assert.Equal(t, 0, m.Eval(not, map[int]bool{0: true}))
	assert.Equal(t, 1, m.Eval(not, map[int]bool{0: false}))
}

func Test_Reduction_RedundantNodeCollapses(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	// a AND (NOT a OR x) == a AND x; but a OR NOT a == 1, collapses to the
	// terminal regardless of a's value.
	tautology := m.Or(a, m.Not(a))
	assert.True(t, Equal(tautology, m.One()))
}

func Test_ExistAndForAll(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	b := m.Var(1)
	and := m.And(a, b)

	exists := m.Exist(and, 1)
	// exists b. (a ^ b) == a
	assert.True(t, Equal(exists, a))

	forall := m.ForAll(and, 1)
	// forall b. (a ^ b) == 0 (fails when b is false)
	assert.True(t, Equal(forall, m.Zero()))
}

func Test_CombineBuildsMultiTerminalTransition(t *testing.T) {
	m := NewManager()
	a := m.Var(0)

	// trans := if a then state 2 else state 1.
	trans := m.Combine(a, m.Terminal(2), m.Terminal(1))
	assert.Equal(t, 2, m.Eval(trans, map[int]bool{0: true}))
	assert.Equal(t, 1, m.Eval(trans, map[int]bool{0: false}))

	// overlay a second guard atop the first: if NOT a then state 3.
	trans2 := m.Combine(m.Not(a), m.Terminal(3), trans)
	assert.Equal(t, 2, m.Eval(trans2, map[int]bool{0: true}))
	assert.Equal(t, 3, m.Eval(trans2, map[int]bool{0: false}))
}

func Test_MapTerminals(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	trans := m.Combine(a, m.Terminal(5), m.Terminal(9))

	remapped := m.MapTerminals(trans, func(t int) int {
		if t == 5 {
			return 100
		}
		return 200
	})
	assert.Equal(t, 100, m.Eval(remapped, map[int]bool{0: true}))
	assert.Equal(t, 200, m.Eval(remapped, map[int]bool{0: false}))
}

func Test_Apply_ProductCombinesTwoTransitionFunctions(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	fTrans := m.Combine(a, m.Terminal(1), m.Terminal(0))
	gTrans := m.Combine(a, m.Terminal(20), m.Terminal(21))

	product := m.Apply("pair", fTrans, gTrans, func(x, y int) int {
		return x*100 + y
	})
	assert.Equal(t, 120, m.Eval(product, map[int]bool{0: true}))
	assert.Equal(t, 21, m.Eval(product, map[int]bool{0: false}))
}

func Test_Terminals(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	b := m.Var(1)
	trans := m.Combine(a, m.Terminal(1), m.Combine(b, m.Terminal(2), m.Terminal(1)))
	vals := m.Terminals(trans)
	assert.ElementsMatch(t, []int{1, 2}, vals)
}

func Test_Cofactor(t *testing.T) {
	m := NewManager()
	a := m.Var(0)
	b := m.Var(1)
	and := m.And(a, b)

	assert.True(t, Equal(m.Cofactor(and, 0, true), b))
	assert.True(t, Equal(m.Cofactor(and, 0, false), m.Zero()))
}
