package pl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whitemech/lydia-sub000/syntax"
)

func Test_Eval(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	and, err := m.And(a, b)
	assert.NoError(t, err)

	assert.True(t, Eval(and, Interpretation{"a": true, "b": true}))
	assert.False(t, Eval(and, Interpretation{"a": true, "b": false}))
	assert.False(t, Eval(and, Interpretation{}))

	not, err := m.Not(a)
	assert.NoError(t, err)
	assert.True(t, Eval(not, Interpretation{"a": false}))
}

func Test_Atoms(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	or, err := m.Or(a, b)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, Atoms(or))
}

func Test_NNF(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	and, err := m.And(a, b)
	assert.NoError(t, err)
	notAnd, err := m.Not(and)
	assert.NoError(t, err)

	n, err := NNF(m, notAnd)
	assert.NoError(t, err)
	assert.Equal(t, "(or (not a) (not b))", n.String())

	doubleNeg, err := m.Not(notAnd)
	assert.NoError(t, err)
	back, err := NNF(m, doubleNeg)
	assert.NoError(t, err)
	assert.Same(t, and, back)
}

func Test_CNF(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	c := m.Atom(m.Symbol("c"))

	bc, err := m.And(b, c)
	assert.NoError(t, err)
	or, err := m.Or(a, bc)
	assert.NoError(t, err)

	cnf, err := CNF(m, or)
	assert.NoError(t, err)

	atoms := Atoms(or)
	for _, model := range Models(or, atoms) {
		assert.Equal(t, Eval(or, model), Eval(cnf, model))
	}

	and, ok := cnf.(*syntax.PLAnd)
	assert.True(t, ok, "distributing Or over And should yield a top-level And")
	assert.Len(t, and.Children(), 2)
}

func Test_Models(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	xor, err := m.Or(
		mustAnd(t, m, a, mustNot(t, m, b)),
		mustAnd(t, m, mustNot(t, m, a), b),
	)
	assert.NoError(t, err)

	models := Models(xor, []string{"a", "b"})
	assert.Len(t, models, 2)

	assert.True(t, IsSatisfiable(xor))
	assert.False(t, IsValid(xor))
	assert.True(t, IsValid(m.True()))
}

func Test_PrimeImplicants(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	c := m.Atom(m.Symbol("c"))

	// (a and b) or c: "c" alone is a prime implicant, as is "a and b".
	ab, err := m.And(a, b)
	assert.NoError(t, err)
	f, err := m.Or(ab, c)
	assert.NoError(t, err)

	atoms := []string{"a", "b", "c"}
	primes := PrimeImplicants(f, atoms)

	var sawC, sawAB bool
	for _, p := range primes {
		if len(p) == 1 && p["c"] {
			sawC = true
		}
		if len(p) == 2 && p["a"] && p["b"] {
			sawAB = true
		}
		// every enumerated implicant must actually imply f
		assert.True(t, implies(f, atoms, p))
	}
	assert.True(t, sawC, "expected {c=true} among the prime implicants")
	assert.True(t, sawAB, "expected {a=true,b=true} among the prime implicants")
}

func mustAnd(t *testing.T, m *syntax.Manager, args ...syntax.PropFormula) syntax.PropFormula {
	t.Helper()
	f, err := m.And(args...)
	assert.NoError(t, err)
	return f
}

func mustNot(t *testing.T, m *syntax.Manager, arg syntax.PropFormula) syntax.PropFormula {
	t.Helper()
	f, err := m.Not(arg)
	assert.NoError(t, err)
	return f
}
