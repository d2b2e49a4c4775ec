package star

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/internal/bdd"
	"github.com/whitemech/lydia-sub000/syntax"
)

func trace(assigns ...map[int]bool) []map[int]bool { return assigns }

// endFormula builds [true]ff, the standard "no more steps" continuation:
// satisfied by the empty trace and by nothing else.
func endFormula(t *testing.T, m *syntax.Manager) syntax.LDLf {
	anyStep, err := m.PropRegex(m.True())
	require.NoError(t, err)
	end, err := m.Box(anyStep, m.LDLfFalse())
	require.NoError(t, err)
	return end
}

// Test_GeneralStar_GuardWithNoQuote exercises a prime implicant with no
// literals at all: <a*>tt, whose delta expansion collapses to the constant
// True regardless of the star's body, so the only transition out of the
// seed state is an unconditional one to a target built from zero targets
// and zero guard literals (star.go's two empty-fallback defaults).
func Test_GeneralStar_GuardWithNoQuote(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)
	starRe, err := m.Star(ra)
	require.NoError(t, err)

	ctx := &Context{M: m, BDD: bdd.NewManager(), VarNames: []string{"a"}}
	d, err := ctx.generalStar(starRe.(*syntax.StarRegex), m.LDLfTrue())
	require.NoError(t, err)

	// <a*>tt holds of every trace: tt is satisfied by any remaining
	// suffix, and the star always has a valid (possibly empty) split.
	assert.True(t, d.Accepts(nil))
	assert.True(t, d.Accepts(trace(map[int]bool{0: true})))
	assert.True(t, d.Accepts(trace(map[int]bool{0: false})))
	assert.True(t, d.Accepts(trace(map[int]bool{0: false}, map[int]bool{0: true})))
}

// Test_GeneralStar_NegativeQuoteOnlyImplicant reconstructs <(b?;a)*>end
// directly against generalStar. Its initial state's delta expansion has a
// prime implicant whose only literal is the negatively-assigned quoted
// atom for "b holds now", i.e. a quote-only implicant with no guard
// literal at all - the exact shape that used to vanish into an
// unconditional always-accepting transition instead of contributing the
// negation of that continuation as the real target.
func Test_GeneralStar_NegativeQuoteOnlyImplicant(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)
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

	ctx := &Context{M: m, BDD: bdd.NewManager(), VarNames: []string{"a", "b"}}
	d, err := ctx.generalStar(starRe.(*syntax.StarRegex), endFormula(t, m))
	require.NoError(t, err)

	// <(b?;a)*>end: the whole trace is zero or more repetitions of
	// "b holds now, then a holds", with nothing left over.
	assert.True(t, d.Accepts(nil))
	assert.True(t, d.Accepts(trace(map[int]bool{0: true, 1: true})))
	// b false fails the test, so the only split left (zero repetitions)
	// leaves this nonempty trace unconsumed: must reject, not fall
	// through to the always-accepting state the dropped quote used to
	// produce.
	assert.False(t, d.Accepts(trace(map[int]bool{0: true, 1: false})))
	assert.True(t, d.Accepts(trace(map[int]bool{0: true, 1: true}, map[int]bool{0: true, 1: true})))
}

// Test_GeneralStar_MultiQuoteImplicant forces a single prime implicant to
// carry two distinct quoted atoms at once, checking that generalStar's
// targets-merge branch (len(targets) > 1) conjoins both obligations
// instead of keeping only one of them.
//
// The star's continuation is "exists b next, tt" and-ed with "exists c
// next, end": stopping the star requires both a b-step and a c-step
// simultaneously, landing on a target formed from LDLfAnd(tt, end), which
// folds to end itself - a state that accepts once and then rejects any
// further step. A merge that silently dropped one of the two targets
// could just as well land on tt alone, which accepts forever instead.
func Test_GeneralStar_MultiQuoteImplicant(t *testing.T) {
	m := syntax.NewManager()
	a := m.Atom(m.Symbol("a"))
	b := m.Atom(m.Symbol("b"))
	c := m.Atom(m.Symbol("c"))
	ra, err := m.PropRegex(a)
	require.NoError(t, err)
	rb, err := m.PropRegex(b)
	require.NoError(t, err)
	rc, err := m.PropRegex(c)
	require.NoError(t, err)

	exitsOnB, err := m.Diamond(rb, m.LDLfTrue())
	require.NoError(t, err)
	exitsOnC, err := m.Diamond(rc, endFormula(t, m))
	require.NoError(t, err)
	body, err := m.LDLfAnd(exitsOnB, exitsOnC)
	require.NoError(t, err)

	starRe, err := m.Star(ra)
	require.NoError(t, err)

	ctx := &Context{M: m, BDD: bdd.NewManager(), VarNames: []string{"a", "b", "c"}}
	d, err := ctx.generalStar(starRe.(*syntax.StarRegex), body)
	require.NoError(t, err)

	assert.False(t, d.Accepts(nil))
	// a alone: one more star iteration, back to the same (non-accepting)
	// seed state.
	assert.False(t, d.Accepts(trace(map[int]bool{0: true, 1: false, 2: false})))
	// b and c together, with no a: satisfies both halves of the merged
	// continuation in one step, landing on the accepting "end" state.
	assert.True(t, d.Accepts(trace(map[int]bool{0: false, 1: true, 2: true})))
	// ... but end only accepts the trace stopping there; one more step
	// of anything must be rejected, which a merge that dropped the end
	// half and kept only tt would get wrong (tt accepts forever).
	assert.False(t, d.Accepts(trace(
		map[int]bool{0: false, 1: true, 2: true},
		map[int]bool{0: true, 1: false, 2: false},
	)))
}
