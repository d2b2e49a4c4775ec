// Package dfa is the symbolic DFA value type and algebra (component C4):
// states carry a transition function represented as a multi-terminal BDD
// (internal/bdd) over the propositional alphabet, so a state with a dense
// guard structure never needs its 2^n_vars transition table enumerated.
package dfa

import (
	"github.com/whitemech/lydia-sub000/internal/bdd"
	"github.com/whitemech/lydia-sub000/syntax"
)

// Sink is the terminal value meaning "no transition defined": a state
// whose MTBDD evaluates to Sink for some assignment has no successor
// there, equivalent to an implicit non-accepting dead state.
const Sink = -1

type state struct {
	accepting bool
	trans     bdd.BDD
}

// DFA is a symbolic deterministic finite automaton over a fixed,
// alphabetically-ordered set of propositional variables (§4.3/§4.4 step
// 2: the compositional translator assigns this order once, from the
// whole formula's atom set, before building any sub-DFA).
type DFA struct {
	mgr      *bdd.Manager
	varNames []string
	states   []state
	initial  int
}

// New builds an empty DFA over the given variable names, in index order.
func New(mgr *bdd.Manager, varNames []string) *DFA {
	return &DFA{mgr: mgr, varNames: append([]string(nil), varNames...)}
}

// Manager returns the BDD manager this DFA's transition functions are
// built in. Every DFA combined together (Product, Concatenate, ...) must
// share one.
func (d *DFA) Manager() *bdd.Manager { return d.mgr }

// VarNames returns the DFA's alphabet, in index order.
func (d *DFA) VarNames() []string { return d.varNames }

// NStates returns the number of states.
func (d *DFA) NStates() int { return len(d.states) }

// NVars returns the alphabet size.
func (d *DFA) NVars() int { return len(d.varNames) }

// Initial returns the initial state index.
func (d *DFA) Initial() int { return d.initial }

// IsFinal reports whether s is accepting.
func (d *DFA) IsFinal(s int) bool { return d.states[s].accepting }

// AddState appends a new state and returns its index. New states start
// with no defined transitions (every assignment lands on Sink).
func (d *DFA) AddState(accepting bool) int {
	idx := len(d.states)
	d.states = append(d.states, state{accepting: accepting, trans: d.mgr.Terminal(Sink)})
	return idx
}

// SetInitial designates s as the initial state.
func (d *DFA) SetInitial(s int) { d.initial = s }

// SetFinal changes whether s is accepting.
func (d *DFA) SetFinal(s int, accepting bool) {
	st := d.states[s]
	st.accepting = accepting
	d.states[s] = st
}

// AddTransition overlays "when guard holds, go to to" atop whatever
// transitions from already has; guard assignments not covered by any
// prior add_transition call fall through to the next overlay underneath,
// eventually reaching Sink if nothing matches (§4.3: missing variables
// are don't care).
func (d *DFA) AddTransition(from int, guard bdd.BDD, to int) {
	st := d.states[from]
	st.trans = d.mgr.Combine(guard, d.mgr.Terminal(to), st.trans)
	d.states[from] = st
}

// Transition returns the raw transition MTBDD for state s.
func (d *DFA) Transition(s int) bdd.BDD { return d.states[s].trans }

// SetTransition installs a precomputed transition MTBDD wholesale; used by
// the algebra functions below, which build a state's transitions via
// Apply/MapTerminals rather than one AddTransition call per guard.
func (d *DFA) SetTransition(s int, trans bdd.BDD) {
	st := d.states[s]
	st.trans = trans
	d.states[s] = st
}

// Successor returns the next state from s under a full or partial
// variable assignment (missing variables are treated as false), or Sink
// if no transition applies.
func (d *DFA) Successor(s int, assign map[int]bool) int {
	return d.mgr.Eval(d.states[s].trans, assign)
}

// Accepts runs the DFA over a trace of per-instant variable assignments
// and reports whether it ends in an accepting state.
func (d *DFA) Accepts(trace []map[int]bool) bool {
	s := d.initial
	for _, symbol := range trace {
		s = d.Successor(s, symbol)
		if s == Sink {
			return false
		}
	}
	return d.IsFinal(s)
}

// AtomIndex builds the alphabetical atom->variable-index map that §4.4
// step 2 requires, fixing the DFA's alphabet from a formula.
func AtomIndex(atoms []string) map[string]int {
	idx := make(map[string]int, len(atoms))
	for i, a := range atoms {
		idx[a] = i
	}
	return idx
}

// GuardToBDD compiles a propositional guard into a boolean MTBDD over the
// given atom->index mapping.
func GuardToBDD(mgr *bdd.Manager, index map[string]int, guard syntax.PropFormula) bdd.BDD {
	switch t := guard.(type) {
	case *syntax.PLTrue:
		return mgr.One()
	case *syntax.PLFalse:
		return mgr.Zero()
	case *syntax.PLAtom:
		return mgr.Var(index[atomName(t)])
	case *syntax.PLAnd:
		acc := mgr.One()
		for _, c := range t.Children() {
			acc = mgr.And(acc, GuardToBDD(mgr, index, c))
		}
		return acc
	case *syntax.PLOr:
		acc := mgr.Zero()
		for _, c := range t.Children() {
			acc = mgr.Or(acc, GuardToBDD(mgr, index, c))
		}
		return acc
	case *syntax.PLNot:
		return mgr.Not(GuardToBDD(mgr, index, t.Child()))
	default:
		panic("dfa.GuardToBDD: unreachable propositional term")
	}
}

func atomName(a *syntax.PLAtom) string {
	if a.IsQuoted() {
		return a.String()
	}
	return a.Symbol().Name()
}

// Sink tests (§4.3): a DFA is a positive sink if it has exactly one
// accepting state and the only state, a negative sink if its single state
// is non-accepting.
func (d *DFA) IsPositiveSink() bool {
	return len(d.states) == 1 && d.states[0].accepting
}

func (d *DFA) IsNegativeSink() bool {
	return len(d.states) == 1 && !d.states[0].accepting
}
