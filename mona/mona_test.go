package mona

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/internal/bdd"
)

// twoStateEvenA accepts traces with an even number of true-a instants,
// including the empty trace - the same shape used across the dfa package's
// own tests, reused here since Write needs a DFA whose transitions are
// total (even without the trap-state rewrite) to check that path too.
func twoStateEvenA(mgr *bdd.Manager) *dfa.DFA {
	d := dfa.New(mgr, []string{"a"})
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

// atLeastOneA accepts any trace containing at least one true-a; its
// initial state's transitions are the only ones defined for "a", leaving
// dfa.Sink reachable nowhere - still total, so this exercises the no-trap
// path alongside twoStateEvenA.
func atLeastOneA(mgr *bdd.Manager) *dfa.DFA {
	d := dfa.New(mgr, []string{"a", "b"})
	notSeen := d.AddState(false)
	seen := d.AddState(true)
	d.SetInitial(notSeen)
	a := mgr.Var(0)
	d.AddTransition(notSeen, a, seen)
	d.AddTransition(notSeen, mgr.Not(a), notSeen)
	d.AddTransition(seen, mgr.One(), seen)
	return d
}

// partialSingleA defines a transition only for a=true, leaving a=false
// undefined (dfa.Sink) - Write must synthesize a trap state for this one.
func partialSingleA(mgr *bdd.Manager) *dfa.DFA {
	d := dfa.New(mgr, []string{"a"})
	s0 := d.AddState(false)
	s1 := d.AddState(true)
	d.SetInitial(s0)
	d.AddTransition(s0, mgr.Var(0), s1)
	return d
}

func roundTrip(t *testing.T, d *dfa.DFA) *dfa.DFA {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	got, err := Read(&buf)
	require.NoError(t, err)
	return got
}

func Test_RoundTrip_PreservesAcceptance(t *testing.T) {
	cases := []struct {
		name   string
		build  func(*bdd.Manager) *dfa.DFA
		traces [][]map[int]bool
	}{
		{"evenA", twoStateEvenA, [][]map[int]bool{
			nil,
			{{0: true}},
			{{0: true}, {0: true}},
			{{0: false}, {0: true}, {0: false}},
		}},
		{"atLeastOneA", atLeastOneA, [][]map[int]bool{
			nil,
			{{0: false}},
			{{0: true}},
			{{0: false}, {0: true}, {0: false}},
		}},
		{"partialSingleA", partialSingleA, [][]map[int]bool{
			{{0: true}},
			{{0: false}},
			nil,
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mgr := bdd.NewManager()
			original := c.build(mgr)
			reloaded := roundTrip(t, original)

			assert.Equal(t, original.VarNames(), reloaded.VarNames())
			for _, trace := range c.traces {
				assert.Equal(t, original.Accepts(trace), reloaded.Accepts(trace))
			}
		})
	}
}

func Test_Write_AddsTrapStateOnlyWhenNeeded(t *testing.T) {
	mgr := bdd.NewManager()

	var totalBuf bytes.Buffer
	require.NoError(t, Write(&totalBuf, twoStateEvenA(mgr)))
	totalOut := totalBuf.String()
	assert.Equal(t, 2, countField(totalOut, "states"))

	mgr2 := bdd.NewManager()
	var partialBuf bytes.Buffer
	require.NoError(t, Write(&partialBuf, partialSingleA(mgr2)))
	partialOut := partialBuf.String()
	assert.Equal(t, 3, countField(partialOut, "states"))
}

// countField extracts the integer value following the given header keyword
// in a MONA text file, e.g. countField(out, "states") reads the "states K"
// line's K.
func countField(out, field string) int {
	idx := strings.Index(out, field+" ")
	if idx < 0 {
		return -1
	}
	rest := out[idx+len(field)+1:]
	end := strings.IndexAny(rest, " \n")
	if end < 0 {
		end = len(rest)
	}
	n := 0
	for _, c := range rest[:end] {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func Test_Read_RejectsMalformedHeader(t *testing.T) {
	_, err := Read(strings.NewReader("not a mona file at all"))
	require.Error(t, err)
}

func Test_Read_RejectsForwardNodeReference(t *testing.T) {
	bad := `number of variables 1
variables a
states 1
initial 0
bdd nodes 1
final 1
behaviour 0
bdd:
0 1 1
end
`
	_, err := Read(strings.NewReader(bad))
	require.Error(t, err)
}
