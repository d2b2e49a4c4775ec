// Package bdd implements a reduced, ordered, multi-terminal binary decision
// diagram (MTBDD): a node's two outgoing edges are keyed by a variable
// index, and its leaves carry arbitrary integer terminal values rather than
// being restricted to {0, 1}. The dfa package builds one MTBDD per state,
// whose terminal values are the index of the successor state, instead of
// encoding state identity itself into extra BDD variables — the simpler of
// the two standard MTBDD transition-relation encodings, and the one that
// maps directly onto this package's "terminal = target" reduction.
//
// No BDD/decision-diagram library appears anywhere in the retrieval pack,
// so this is a from-scratch component; see DESIGN.md for the scope
// rationale. Nodes are hash-consed the same way syntax.Term is: structural
// equality coincides with pointer identity, so every derived BDD's zero
// value is directly comparable with ==.
package bdd

// node is a decision node (v >= 0) or a terminal (v == -1, value in term).
type node struct {
	v        int
	term     int
	lo, hi   *node
}

// BDD is a handle to a hash-consed node. The zero value is not valid; use
// Manager.Terminal, Manager.Var or a combinator to build one.
type BDD struct {
	n *node
}

// IsTerminal reports whether b is a constant function, and if so its
// terminal value.
func (b BDD) IsTerminal() (int, bool) {
	if b.n.v == -1 {
		return b.n.term, true
	}
	return 0, false
}

// Var returns the decision variable tested at b's root. Panics if b is a
// terminal - callers must check IsTerminal first, the same convention the
// rest of this package uses (see Eval, apply).
func (b BDD) Var() int {
	if b.n.v == -1 {
		panic("bdd.BDD.Var: terminal node has no decision variable")
	}
	return b.n.v
}

// Lo and Hi return b's children when its decision variable is false or
// true respectively. Panics if b is a terminal. Used by mona to walk a
// diagram's own node structure rather than only its terminals, since the
// MONA file format shares one node table across every state's transition
// diagram.
func (b BDD) Lo() BDD {
	if b.n.v == -1 {
		panic("bdd.BDD.Lo: terminal node has no children")
	}
	return BDD{b.n.lo}
}

func (b BDD) Hi() BDD {
	if b.n.v == -1 {
		panic("bdd.BDD.Hi: terminal node has no children")
	}
	return BDD{b.n.hi}
}

type triple struct {
	v      int
	lo, hi *node
}

type pairKey struct {
	f, g *node
}

// Manager owns every hash-consed node and operation cache. Like
// syntax.Manager, it is not safe for concurrent use; the translator gives
// each goroutine its own Manager (§5).
type Manager struct {
	unique    map[triple]*node
	terminals map[int]*node
	iteCache  map[[3]*node]*node
	applyOps  map[string]map[pairKey]*node
}

// NewManager builds an empty BDD manager.
func NewManager() *Manager {
	return &Manager{
		unique:    make(map[triple]*node),
		terminals: make(map[int]*node),
		iteCache:  make(map[[3]*node]*node),
		applyOps:  make(map[string]map[pairKey]*node),
	}
}

// Terminal returns the constant function with value t.
func (m *Manager) Terminal(t int) BDD {
	return BDD{m.terminalNode(t)}
}

func (m *Manager) terminalNode(t int) *node {
	if n, ok := m.terminals[t]; ok {
		return n
	}
	n := &node{v: -1, term: t}
	m.terminals[t] = n
	return n
}

// Zero and One are the boolean terminals 0 and 1.
func (m *Manager) Zero() BDD { return m.Terminal(0) }
func (m *Manager) One() BDD  { return m.Terminal(1) }

// Var returns the boolean decision variable v: 0 when v is false, 1 when
// v is true.
func (m *Manager) Var(v int) BDD {
	return BDD{m.mk(v, m.terminalNode(0), m.terminalNode(1))}
}

// mk builds (or retrieves) the reduced node for (v, lo, hi), applying the
// standard BDD reduction rule: a node whose two children are identical is
// redundant and collapses to that child.
func (m *Manager) mk(v int, lo, hi *node) *node {
	if lo == hi {
		return lo
	}
	key := triple{v, lo, hi}
	if n, ok := m.unique[key]; ok {
		return n
	}
	n := &node{v: v, lo: lo, hi: hi}
	m.unique[key] = n
	return n
}

// Node builds the decision node that selects hi when v is true and lo when
// v is false. Unlike ITE, lo and hi need not be boolean — this is how a
// state's transition MTBDD is assembled one guarded target at a time.
func (m *Manager) Node(v int, lo, hi BDD) BDD {
	return BDD{m.mk(v, lo.n, hi.n)}
}

// Equal reports whether a and b are the same function (pointer identity,
// since nodes are hash-consed).
func Equal(a, b BDD) bool { return a.n == b.n }

// ITE is if-then-else: where guard is true, thenB; elsewhere, elseB. guard
// must be boolean-valued (its terminals, if any are reached without
// reading a decision variable, must be 0 or 1); thenB and elseB may carry
// arbitrary terminal values, making this the general MTBDD combinator that
// And/Or/Not/Combine all reduce to.
func (m *Manager) ITE(guard, thenB, elseB BDD) BDD {
	return BDD{m.ite(guard.n, thenB.n, elseB.n)}
}

func (m *Manager) ite(f, g, h *node) *node {
	if f.v == -1 {
		if f.term != 0 {
			return g
		}
		return h
	}
	if g == h {
		return g
	}
	key := [3]*node{f, g, h}
	if n, ok := m.iteCache[key]; ok {
		return n
	}
	v := topVar(f, g, h)
	f0, f1 := cofactorPair(f, v)
	g0, g1 := cofactorPair(g, v)
	h0, h1 := cofactorPair(h, v)
	lo := m.ite(f0, g0, h0)
	hi := m.ite(f1, g1, h1)
	res := m.mk(v, lo, hi)
	m.iteCache[key] = res
	return res
}

func topVar(ns ...*node) int {
	top := -1
	for _, n := range ns {
		if n.v == -1 {
			continue
		}
		if top == -1 || n.v < top {
			top = n.v
		}
	}
	return top
}

// cofactorPair splits n on variable v, returning (n|v=0, n|v=1). If n does
// not depend on v (a terminal, or an internal node whose own variable is
// not v), both cofactors are n itself.
func cofactorPair(n *node, v int) (lo, hi *node) {
	if n.v != v {
		return n, n
	}
	return n.lo, n.hi
}

// Combine is the general ternary MTBDD operator: wherever guard is true,
// the result takes thenB's value; elsewhere, elseB's. guard must be
// boolean. It is the primitive add_transition builds on: overlay a new
// guarded target atop whatever mapping already existed.
func (m *Manager) Combine(guard, thenB, elseB BDD) BDD {
	return m.ITE(guard, thenB, elseB)
}

// And, Or and Not treat their operands as boolean-valued (terminals 0/1).
func (m *Manager) And(f, g BDD) BDD { return m.ITE(f, g, m.Zero()) }
func (m *Manager) Or(f, g BDD) BDD  { return m.ITE(f, m.One(), g) }
func (m *Manager) Not(f BDD) BDD    { return m.ITE(f, m.Zero(), m.One()) }

// Cofactor restricts f by fixing variable v to val (Shannon expansion),
// recursing through the whole diagram rather than just its top node.
func (m *Manager) Cofactor(f BDD, v int, val bool) BDD {
	return BDD{m.cofactor(f.n, v, val)}
}

func (m *Manager) cofactor(n *node, v int, val bool) *node {
	if n.v == -1 || n.v > v {
		return n
	}
	if n.v == v {
		if val {
			return n.hi
		}
		return n.lo
	}
	lo := m.cofactor(n.lo, v, val)
	hi := m.cofactor(n.hi, v, val)
	return m.mk(n.v, lo, hi)
}

// Exist existentially quantifies f over v: the result is true wherever
// either cofactor of f on v is true. Used to project a variable out of the
// DFA alphabet (§4.3's project).
func (m *Manager) Exist(f BDD, v int) BDD {
	return m.Or(m.Cofactor(f, v, false), m.Cofactor(f, v, true))
}

// ForAll universally quantifies f over v (§4.3's universal_project).
func (m *Manager) ForAll(f BDD, v int) BDD {
	return m.And(m.Cofactor(f, v, false), m.Cofactor(f, v, true))
}

// ExistSet and ForAllSet quantify out every variable in vars.
func (m *Manager) ExistSet(f BDD, vars []int) BDD {
	for _, v := range vars {
		f = m.Exist(f, v)
	}
	return f
}

func (m *Manager) ForAllSet(f BDD, vars []int) BDD {
	for _, v := range vars {
		f = m.ForAll(f, v)
	}
	return f
}

// Eval walks f to a terminal under a total assignment, returning its value.
// Variables absent from assign are treated as false.
func (m *Manager) Eval(f BDD, assign map[int]bool) int {
	n := f.n
	for n.v != -1 {
		if assign[n.v] {
			n = n.hi
		} else {
			n = n.lo
		}
	}
	return n.term
}

// EvalBool is Eval for a boolean-valued f.
func (m *Manager) EvalBool(f BDD, assign map[int]bool) bool {
	return m.Eval(f, assign) != 0
}

// Terminals returns, in no particular order, every distinct terminal value
// reachable in f.
func (m *Manager) Terminals(f BDD) []int {
	seen := map[*node]bool{}
	var out []int
	var walk func(n *node)
	walk = func(n *node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if n.v == -1 {
			out = append(out, n.term)
			return
		}
		walk(n.lo)
		walk(n.hi)
	}
	walk(f.n)
	return out
}

// MapTerminals rebuilds f with every terminal value t replaced by
// remap(t), preserving sharing and reduction. Used by the dfa package's
// minimize to rewrite each state's transition function in terms of the
// current equivalence-class id of its targets.
func (m *Manager) MapTerminals(f BDD, remap func(int) int) BDD {
	cache := map[*node]*node{}
	var rec func(n *node) *node
	rec = func(n *node) *node {
		if n.v == -1 {
			return m.terminalNode(remap(n.term))
		}
		if r, ok := cache[n]; ok {
			return r
		}
		lo := rec(n.lo)
		hi := rec(n.hi)
		r := m.mk(n.v, lo, hi)
		cache[n] = r
		return r
	}
	return BDD{rec(f.n)}
}

// Apply combines f and g pointwise through an arbitrary terminal-level
// combine function, walking both diagrams in lockstep. This is how the
// dfa package builds a product-automaton transition directly as a single
// symbolic operation, instead of enumerating every assignment over the
// alphabet: op names the operation for cache partitioning (Apply results
// are cached per-op since combine closures aren't comparable).
func (m *Manager) Apply(op string, f, g BDD, combine func(x, y int) int) BDD {
	cache, ok := m.applyOps[op]
	if !ok {
		cache = make(map[pairKey]*node)
		m.applyOps[op] = cache
	}
	return BDD{m.apply(cache, f.n, g.n, combine)}
}

func (m *Manager) apply(cache map[pairKey]*node, f, g *node, combine func(x, y int) int) *node {
	if f.v == -1 && g.v == -1 {
		return m.terminalNode(combine(f.term, g.term))
	}
	key := pairKey{f, g}
	if n, ok := cache[key]; ok {
		return n
	}
	var v int
	var f0, f1, g0, g1 *node
	switch {
	case f.v == -1:
		v, f0, f1, g0, g1 = g.v, f, f, g.lo, g.hi
	case g.v == -1:
		v, f0, f1, g0, g1 = f.v, f.lo, f.hi, g, g
	case f.v == g.v:
		v, f0, f1, g0, g1 = f.v, f.lo, f.hi, g.lo, g.hi
	case f.v < g.v:
		v, f0, f1, g0, g1 = f.v, f.lo, f.hi, g, g
	default:
		v, f0, f1, g0, g1 = g.v, f, f, g.lo, g.hi
	}
	lo := m.apply(cache, f0, g0, combine)
	hi := m.apply(cache, f1, g1, combine)
	res := m.mk(v, lo, hi)
	cache[key] = res
	return res
}
