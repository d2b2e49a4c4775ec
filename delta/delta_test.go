package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/syntax"
)

func Test_Delta_TrueFalse(t *testing.T) {
	m := syntax.NewManager()

	d, err := Delta(m, m.LDLfTrue(), false)
	require.NoError(t, err)
	assert.Equal(t, m.True(), d)

	d, err = Delta(m, m.LDLfFalse(), false)
	require.NoError(t, err)
	assert.Equal(t, m.False(), d)
}

func Test_Delta_DiamondProp_EpsilonModeIsFalse(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	r, err := m.PropRegex(a)
	require.NoError(t, err)
	f, err := m.Diamond(r, m.LDLfTrue())
	require.NoError(t, err)

	d, err := Delta(m, f, true)
	require.NoError(t, err)
	assert.Equal(t, m.False(), d)
}

func Test_Delta_DiamondProp_QuotesContinuation(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	r, err := m.PropRegex(a)
	require.NoError(t, err)
	f, err := m.Diamond(r, m.LDLfTrue())
	require.NoError(t, err)

	d, err := Delta(m, f, false)
	require.NoError(t, err)

	and, ok := d.(*syntax.PLAnd)
	require.True(t, ok, "expected (and a quote(...)), got %s", d.String())
	assert.Len(t, and.Children(), 2)
}

func Test_Delta_Union(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)
	rb, err := m.PropRegex(b)
	require.NoError(t, err)
	u, err := m.Union(ra, rb)
	require.NoError(t, err)
	f, err := m.Diamond(u, m.LDLfTrue())
	require.NoError(t, err)

	d, err := Delta(m, f, false)
	require.NoError(t, err)
	_, ok := d.(*syntax.PLOr)
	assert.True(t, ok, "expected an Or combining both alternatives, got %s", d.String())
}

func Test_Delta_BoxIsNegatedDiamond(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	r, err := m.PropRegex(a)
	require.NoError(t, err)
	f, err := m.Box(r, m.LDLfFalse())
	require.NoError(t, err)

	d, err := Delta(m, f, false)
	require.NoError(t, err)
	_, ok := d.(*syntax.PLNot)
	assert.True(t, ok, "expected box's delta to be a negated diamond-delta, got %s", d.String())
}

func Test_ExpandPlaceholders_StripsFAndT(t *testing.T) {
	m := syntax.NewManager()
	f := m.LDLfF(m.LDLfTrue())
	expanded, err := ExpandPlaceholders(m, f)
	require.NoError(t, err)
	assert.Equal(t, m.LDLfTrue(), expanded)

	tWrapped := m.LDLfT(m.LDLfFalse())
	expanded, err = ExpandPlaceholders(m, tWrapped)
	require.NoError(t, err)
	assert.Equal(t, m.LDLfFalse(), expanded)
}

func Test_ExpandPlaceholders_PreservesQ(t *testing.T) {
	m := syntax.NewManager()
	q := m.LDLfQ(m.LDLfTrue())
	expanded, err := ExpandPlaceholders(m, q)
	require.NoError(t, err)
	_, ok := expanded.(*syntax.LDLfQ)
	assert.True(t, ok, "Q marker must survive expansion, got %s", expanded.String())
}
