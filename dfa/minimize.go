package dfa

import "github.com/whitemech/lydia-sub000/internal/bdd"

// Minimize returns a language-equivalent DFA with the minimum reachable
// state count (§4.3). It first discards unreachable states (a worklist
// walk from the initial state, in the teacher automaton package's own
// reachability idiom) and then repeatedly refines a partition of the
// remaining states by equivalence class, stopping once a refinement pass
// produces no new classes — the standard fixpoint argument: each pass can
// only split classes, never merge them, so a pass that doesn't grow the
// class count has reached the coarsest stable partition.
func Minimize(a *DFA) *DFA {
	trimmed := trimUnreachable(a)
	return collapseEquivalentStates(trimmed)
}

func trimUnreachable(a *DFA) *DFA {
	n := a.NStates()
	seen := make([]bool, n)
	seen[a.initial] = true
	stack := []int{a.initial}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.mgr.Terminals(a.states[s].trans) {
			if t == Sink || seen[t] {
				continue
			}
			seen[t] = true
			stack = append(stack, t)
		}
	}

	newIndex := make([]int, n)
	next := 0
	for s := 0; s < n; s++ {
		if seen[s] {
			newIndex[s] = next
			next++
		} else {
			newIndex[s] = Sink
		}
	}

	out := New(a.mgr, a.varNames)
	for s := 0; s < n; s++ {
		if seen[s] {
			out.AddState(a.states[s].accepting)
		}
	}
	for s := 0; s < n; s++ {
		if !seen[s] {
			continue
		}
		trans := a.mgr.MapTerminals(a.states[s].trans, func(t int) int {
			if t == Sink {
				return Sink
			}
			return newIndex[t]
		})
		out.SetTransition(newIndex[s], trans)
	}
	out.SetInitial(newIndex[a.initial])
	return out
}

type classSig struct {
	class int
	trans bdd.BDD
}

func collapseEquivalentStates(a *DFA) *DFA {
	n := a.NStates()
	class := make([]int, n)
	for s := 0; s < n; s++ {
		if a.states[s].accepting {
			class[s] = 1
		} else {
			class[s] = 0
		}
	}

	for {
		remapped := make([]bdd.BDD, n)
		for s := 0; s < n; s++ {
			cl := class
			remapped[s] = a.mgr.MapTerminals(a.states[s].trans, func(t int) int {
				if t == Sink {
					return Sink
				}
				return cl[t]
			})
		}

		keys := make(map[classSig]int)
		newClass := make([]int, n)
		next := 0
		for s := 0; s < n; s++ {
			key := classSig{class[s], remapped[s]}
			id, ok := keys[key]
			if !ok {
				id = next
				next++
				keys[key] = id
			}
			newClass[s] = id
		}

		if next == countDistinct(class) {
			class = newClass
			break
		}
		class = newClass
	}

	numClasses := countDistinct(class)
	out := New(a.mgr, a.varNames)
	for c := 0; c < numClasses; c++ {
		rep := representative(class, c)
		out.AddState(a.states[rep].accepting)
	}
	for c := 0; c < numClasses; c++ {
		rep := representative(class, c)
		trans := a.mgr.MapTerminals(a.states[rep].trans, func(t int) int {
			if t == Sink {
				return Sink
			}
			return class[t]
		})
		out.SetTransition(c, trans)
	}
	out.SetInitial(class[a.initial])
	return out
}

func countDistinct(class []int) int {
	seen := map[int]bool{}
	for _, c := range class {
		seen[c] = true
	}
	return len(seen)
}

func representative(class []int, c int) int {
	for s, cl := range class {
		if cl == c {
			return s
		}
	}
	panic("dfa.representative: empty equivalence class")
}
