package dfa

import "github.com/whitemech/lydia-sub000/internal/bdd"

// Op is a boolean combinator for Product.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpImpl
)

func (op Op) combine(x, y bool) bool {
	switch op {
	case OpAnd:
		return x && y
	case OpOr:
		return x || y
	case OpImpl:
		return !x || y
	default:
		panic("dfa.Op: unreachable")
	}
}

// Product builds the synchronized product of a and b under op, reachable
// states only, by a worklist over state pairs. Each pair's combined
// transition function is built in one Apply call rather than by
// enumerating the alphabet (§4.3): a and b must share a and b's bdd
// Manager and alphabet.
func Product(a, b *DFA, op Op) *DFA {
	mgr := a.mgr
	out := New(mgr, a.varNames)

	idOf := make(map[[2]int]int)
	var queue [][2]int

	// A pair side may be Sink: that side has died and rejects from then on.
	finalIn := func(d *DFA, s int) bool { return s != Sink && d.IsFinal(s) }
	transIn := func(d *DFA, s int) bdd.BDD {
		if s == Sink {
			return mgr.Terminal(Sink)
		}
		return d.states[s].trans
	}

	idFor := func(pair [2]int) int {
		if id, ok := idOf[pair]; ok {
			return id
		}
		accepting := op.combine(finalIn(a, pair[0]), finalIn(b, pair[1]))
		id := out.AddState(accepting)
		idOf[pair] = id
		queue = append(queue, pair)
		return id
	}

	startID := idFor([2]int{a.initial, b.initial})
	out.SetInitial(startID)

	combineTerminals := func(x, y int) int {
		if (x == Sink && y == Sink && !op.combine(false, false)) || (op == OpAnd && (x == Sink || y == Sink)) {
			return Sink
		}
		return idFor([2]int{x, y})
	}

	// Apply's cache outlives this call, so its combine packs the target
	// pair into one terminal (a pure function); the per-call state ids are
	// assigned afterwards by MapTerminals.
	const pairShift = 20
	pack := func(x, y int) int { return (x+1)<<pairShift | (y + 1) }

	for i := 0; i < len(queue); i++ {
		pair := queue[i]
		id := idOf[pair]
		at := transIn(a, pair[0])
		bt := transIn(b, pair[1])
		packed := mgr.Apply("product-pair", at, bt, pack)
		combined := mgr.MapTerminals(packed, func(t int) int {
			return combineTerminals((t>>pairShift)-1, (t&(1<<pairShift-1))-1)
		})
		out.SetTransition(id, combined)
	}
	return out
}

// Negation flips every state's accept/reject status. Sink edges, which
// stand for a rejecting dead state, are redirected to one added accepting
// state that loops on every symbol; the transitions are otherwise kept.
func Negation(a *DFA) *DFA {
	out := New(a.mgr, a.varNames)
	for s := range a.states {
		out.AddState(!a.states[s].accepting)
	}
	dead := Sink
	for s := range a.states {
		out.SetTransition(s, a.mgr.MapTerminals(a.states[s].trans, func(t int) int {
			if t != Sink {
				return t
			}
			if dead == Sink {
				dead = out.AddState(true)
				out.SetTransition(dead, a.mgr.Terminal(dead))
			}
			return dead
		}))
	}
	out.SetInitial(a.initial)
	return out
}

// Project existentially quantifies variable varIdx out of every state's
// transition function: the resulting DFA no longer distinguishes that
// variable's value when deciding successors. Nothing in this module calls
// it.
func Project(a *DFA, varIdx int) *DFA {
	return remapTransitions(a, func(trans bdd.BDD) bdd.BDD {
		return a.mgr.Exist(trans, varIdx)
	})
}

// UniversalProject is Project's universal-quantification dual.
func UniversalProject(a *DFA, varIdx int) *DFA {
	return remapTransitions(a, func(trans bdd.BDD) bdd.BDD {
		return a.mgr.ForAll(trans, varIdx)
	})
}

func remapTransitions(a *DFA, f func(bdd.BDD) bdd.BDD) *DFA {
	out := New(a.mgr, a.varNames)
	for s := range a.states {
		out.AddState(a.states[s].accepting)
		out.SetTransition(s, f(a.states[s].trans))
	}
	out.SetInitial(a.initial)
	return out
}

// Concatenate returns a DFA accepting uv with u in L(a) and v in L(b).
//
// This is built as an explicit NFA-with-epsilon (the textbook automata
// construction: states = a's states plus a fresh copy of b's, with an
// epsilon edge from every a-accepting state to b's initial state) which
// is then determinized by subset construction. A trace is accepted iff
// SOME split point works, and an accepting a-state generally still has
// its own further transitions available too (e.g. mid-iteration of a
// star), so both "keep matching a" and "hand off to b now" have to be
// tracked as live possibilities simultaneously rather than one of them
// winning outright - that is what the subset construction gives us, via
// subsetAutomaton below.
func Concatenate(a, b *DFA) *DFA {
	return epsilonConcat(a, b)
}

// Closure returns a DFA accepting L(a)+ (one or more repetitions), via
// the same NFA-with-epsilon-then-determinize technique as Concatenate:
// an epsilon edge runs from every accepting state back to a's own
// initial state.
func Closure(a *DFA) *DFA {
	return epsilonLoop(a)
}

// epsilonConcat builds the NFA described in Concatenate's doc comment
// and determinizes it via subsetAutomaton. b's states are renumbered
// past a's.
func epsilonConcat(a, b *DFA) *DFA {
	mgr := a.mgr
	offset := a.NStates()
	n := offset + b.NStates()

	accepting := make([]bool, n)
	move := make([]bdd.BDD, n)
	for s := range a.states {
		accepting[s] = a.states[s].accepting
		move[s] = bitmaskTransition(mgr, a.states[s].trans, 0)
	}
	for s := range b.states {
		accepting[offset+s] = b.states[s].accepting
		move[offset+s] = bitmaskTransition(mgr, b.states[s].trans, offset)
	}

	epsilonTarget := offset + b.initial
	initialMask := 1 << uint(a.initial)
	return subsetAutomaton(mgr, a.varNames, n, move, accepting, epsilonTarget, initialMask)
}

// epsilonLoop builds the NFA described in Closure's doc comment and
// determinizes it via subsetAutomaton.
func epsilonLoop(a *DFA) *DFA {
	mgr := a.mgr
	n := a.NStates()

	accepting := make([]bool, n)
	move := make([]bdd.BDD, n)
	for s := range a.states {
		accepting[s] = a.states[s].accepting
		move[s] = bitmaskTransition(mgr, a.states[s].trans, 0)
	}

	epsilonTarget := a.initial
	initialMask := 1 << uint(a.initial)
	return subsetAutomaton(mgr, a.varNames, n, move, accepting, epsilonTarget, initialMask)
}

// bitmaskTransition rewrites a single deterministic transition function
// (terminal = target state index, or Sink) into one whose terminal is a
// bitmask with exactly one bit set (bit offset+target), or 0 for Sink -
// the per-source-state "move" function subsetAutomaton unions together
// for every state in a reachable subset.
func bitmaskTransition(mgr *bdd.Manager, trans bdd.BDD, offset int) bdd.BDD {
	return mgr.MapTerminals(trans, func(t int) int {
		if t == Sink {
			return 0
		}
		return 1 << uint(offset+t)
	})
}

// subsetAutomaton determinizes an n-state NFA (given as one "move" BDD
// per source state, each mapping an assignment to a bitmask of directly
// reachable target states) via subset construction, where reachable
// subsets are interned as bitmask ints and an epsilon edge runs from
// every state in acceptingOrig to the fixed epsilonTarget state. State
// sets are bounded to 63 original states by the int bitmask; the
// formula-sized automata this package composes never come close.
func subsetAutomaton(
	mgr *bdd.Manager,
	varNames []string,
	n int,
	move []bdd.BDD,
	acceptingOrig []bool,
	epsilonTarget int,
	initialMask int,
) *DFA {
	out := New(mgr, varNames)

	closeMask := func(mask int) int {
		for {
			trigger := false
			for s := 0; s < n; s++ {
				if mask&(1<<uint(s)) != 0 && acceptingOrig[s] {
					trigger = true
					break
				}
			}
			if !trigger {
				return mask
			}
			next := mask | (1 << uint(epsilonTarget))
			if next == mask {
				return mask
			}
			mask = next
		}
	}
	isAccepting := func(mask int) bool {
		for s := 0; s < n; s++ {
			if mask&(1<<uint(s)) != 0 && acceptingOrig[s] {
				return true
			}
		}
		return false
	}

	idOf := map[int]int{}
	var pending []int
	getID := func(rawMask int) int {
		mask := closeMask(rawMask)
		if id, ok := idOf[mask]; ok {
			return id
		}
		id := out.AddState(isAccepting(mask))
		idOf[mask] = id
		pending = append(pending, mask)
		return id
	}

	out.SetInitial(getID(initialMask))

	for i := 0; i < len(pending); i++ {
		mask := pending[i]
		id := idOf[mask]

		var combined bdd.BDD
		has := false
		for s := 0; s < n; s++ {
			if mask&(1<<uint(s)) == 0 {
				continue
			}
			if !has {
				combined = move[s]
				has = true
				continue
			}
			combined = mgr.Apply("nfa-union", combined, move[s], func(x, y int) int { return x | y })
		}
		if !has {
			combined = mgr.Terminal(0)
		}

		final := mgr.MapTerminals(combined, func(raw int) int {
			if raw == 0 {
				return Sink
			}
			return getID(raw)
		})
		out.SetTransition(id, final)
	}
	return out
}
