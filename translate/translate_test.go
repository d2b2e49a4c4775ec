package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/syntax"
)

func trace(assigns ...map[int]bool) []map[int]bool { return assigns }

// endOf builds the standard LDLf "end of trace" formula, [true]ff: no
// matter what the next step's assignment is, false must hold - which is
// only vacuously satisfiable when there is no next step at all. Plugged
// in as a Diamond's continuation instead of tt, it makes a star formula
// actually discriminate on trace content, since <r>tt alone is satisfied
// by every trace regardless of r (the empty-prefix split always works).
func endOf(t *testing.T, m *syntax.Manager) syntax.LDLf {
	anyStep, err := m.PropRegex(m.True())
	require.NoError(t, err)
	end, err := m.Box(anyStep, m.LDLfFalse())
	require.NoError(t, err)
	return end
}

func Test_ToDFA_DiamondPropOnce(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	r, err := m.PropRegex(a)
	require.NoError(t, err)
	f, err := m.Diamond(r, m.LDLfTrue())
	require.NoError(t, err)

	d, err := ToDFA(m, f)
	require.NoError(t, err)

	assert.True(t, d.Accepts(trace(map[int]bool{0: true})))
	assert.False(t, d.Accepts(trace(map[int]bool{0: false})))
	assert.False(t, d.Accepts(nil))
}

func Test_ToDFA_BoxIsDualOfDiamond(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	r, err := m.PropRegex(a)
	require.NoError(t, err)
	f, err := m.Box(r, m.LDLfFalse())
	require.NoError(t, err)

	d, err := ToDFA(m, f)
	require.NoError(t, err)

	// [a]ff: any a-step must lead to false, so a single "a" instant must
	// be rejected, while an empty trace is vacuously accepted.
	assert.True(t, d.Accepts(nil))
	assert.False(t, d.Accepts(trace(map[int]bool{0: true})))
}

func Test_ToDFA_AndFold(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)
	rb, err := m.PropRegex(b)
	require.NoError(t, err)
	da, err := m.Diamond(ra, m.LDLfTrue())
	require.NoError(t, err)
	db, err := m.Diamond(rb, m.LDLfTrue())
	require.NoError(t, err)
	and, err := m.LDLfAnd(da, db)
	require.NoError(t, err)

	d, err := ToDFA(m, and)
	require.NoError(t, err)

	// and<a>tt<b>tt over one instant needs both a and b true simultaneously.
	assert.True(t, d.Accepts(trace(map[int]bool{0: true, 1: true})))
	assert.False(t, d.Accepts(trace(map[int]bool{0: true, 1: false})))
}

func Test_ToDFA_StarTestFree(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)
	star, err := m.Star(ra)
	require.NoError(t, err)
	f, err := m.Diamond(star, endOf(t, m))
	require.NoError(t, err)

	d, err := ToDFA(m, f)
	require.NoError(t, err)

	// <a*>end: the whole trace consists of zero or more a's.
	assert.True(t, d.Accepts(nil))
	assert.True(t, d.Accepts(trace(map[int]bool{0: true})))
	assert.True(t, d.Accepts(trace(map[int]bool{0: true}, map[int]bool{0: true})))
	// a non-a instant can't be consumed as part of a*, and the only other
	// split (zero repetitions) leaves a nonempty remainder, so end fails.
	assert.False(t, d.Accepts(trace(map[int]bool{0: false})))
}

func Test_ToDFA_StarWithTest(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)

	// (b?;a)*: zero or more instances of "b holds now, then a holds".
	rb, err := m.PropRegex(b)
	require.NoError(t, err)
	bHoldsNow, err := m.Diamond(rb, m.LDLfTrue())
	require.NoError(t, err)
	test, err := m.Test(bHoldsNow)
	require.NoError(t, err)
	seq, err := m.Seq(test, ra)
	require.NoError(t, err)
	starRe, err := m.Star(seq)
	require.NoError(t, err)
	f, err := m.Diamond(starRe, endOf(t, m))
	require.NoError(t, err)

	d, err := ToDFA(m, f)
	require.NoError(t, err)

	// <(b?;a)*>end: the whole trace is zero or more instances of
	// "b holds now, then a holds", with nothing left over.
	assert.True(t, d.Accepts(nil))
	assert.True(t, d.Accepts(trace(map[int]bool{0: true, 1: true})))
	// b false means the test fails at that instant, so the only split left
	// is zero repetitions, which leaves this nonempty trace unconsumed.
	assert.False(t, d.Accepts(trace(map[int]bool{0: true, 1: false})))
	// two repetitions back to back: b&a, then b&a again.
	assert.True(t, d.Accepts(trace(map[int]bool{0: true, 1: true}, map[int]bool{0: true, 1: true})))
}
