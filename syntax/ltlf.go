package syntax

import "strings"

// LTLf is a Linear Temporal Logic (finite-trace) formula. LTLf terms are
// never consumed by the DFA builder directly: every LTLf input is lowered
// to LDLf first (normalize.LTLfToLDLf, §4.2).
type LTLf interface {
	Term
	isLTLf()
}

type LTLfTrue struct{ hash uint64 }

func (t *LTLfTrue) Kind() Kind    { return KindLTLfTrue }
func (t *LTLfTrue) Hash() uint64  { return t.hash }
func (*LTLfTrue) String() string  { return "true" }
func (*LTLfTrue) isLTLf()         {}

type LTLfFalse struct{ hash uint64 }

func (f *LTLfFalse) Kind() Kind   { return KindLTLfFalse }
func (f *LTLfFalse) Hash() uint64 { return f.hash }
func (*LTLfFalse) String() string { return "false" }
func (*LTLfFalse) isLTLf()        {}

// LTLfAtom is an atomic proposition.
type LTLfAtom struct {
	symbol *Symbol
	hash   uint64
}

func (a *LTLfAtom) Kind() Kind     { return KindLTLfAtom }
func (a *LTLfAtom) Hash() uint64   { return a.hash }
func (a *LTLfAtom) String() string { return a.symbol.name }
func (*LTLfAtom) isLTLf()          {}
func (a *LTLfAtom) Symbol() *Symbol { return a.symbol }

type LTLfAnd struct {
	children []LTLf
	hash     uint64
}

func (a *LTLfAnd) Kind() Kind       { return KindLTLfAnd }
func (a *LTLfAnd) Hash() uint64     { return a.hash }
func (a *LTLfAnd) String() string   { return "(and " + joinLTLf(a.children) + ")" }
func (*LTLfAnd) isLTLf()            {}
func (a *LTLfAnd) Children() []LTLf { return a.children }

type LTLfOr struct {
	children []LTLf
	hash     uint64
}

func (o *LTLfOr) Kind() Kind       { return KindLTLfOr }
func (o *LTLfOr) Hash() uint64     { return o.hash }
func (o *LTLfOr) String() string   { return "(or " + joinLTLf(o.children) + ")" }
func (*LTLfOr) isLTLf()            {}
func (o *LTLfOr) Children() []LTLf { return o.children }

type LTLfNot struct {
	child LTLf
	hash  uint64
}

func (n *LTLfNot) Kind() Kind     { return KindLTLfNot }
func (n *LTLfNot) Hash() uint64   { return n.hash }
func (n *LTLfNot) String() string { return "(not " + n.child.String() + ")" }
func (*LTLfNot) isLTLf()          {}
func (n *LTLfNot) Child() LTLf    { return n.child }

// LTLfNext is the strong next operator Xphi: there is a next instant, and
// phi holds there.
type LTLfNext struct {
	body LTLf
	hash uint64
}

func (n *LTLfNext) Kind() Kind     { return KindLTLfNext }
func (n *LTLfNext) Hash() uint64   { return n.hash }
func (n *LTLfNext) String() string { return "(X " + n.body.String() + ")" }
func (*LTLfNext) isLTLf()          {}
func (n *LTLfNext) Body() LTLf     { return n.body }

// LTLfWeakNext is the weak next operator WXphi: if there is a next instant,
// phi holds there.
type LTLfWeakNext struct {
	body LTLf
	hash uint64
}

func (n *LTLfWeakNext) Kind() Kind     { return KindLTLfWeakNext }
func (n *LTLfWeakNext) Hash() uint64   { return n.hash }
func (n *LTLfWeakNext) String() string { return "(WX " + n.body.String() + ")" }
func (*LTLfWeakNext) isLTLf()          {}
func (n *LTLfWeakNext) Body() LTLf     { return n.body }

// LTLfUntil is alpha U beta. Per §4.1 it is never flattened, unlike And/Or.
type LTLfUntil struct {
	left, right LTLf
	hash        uint64
}

func (u *LTLfUntil) Kind() Kind   { return KindLTLfUntil }
func (u *LTLfUntil) Hash() uint64 { return u.hash }
func (u *LTLfUntil) String() string {
	return "(until " + u.left.String() + " " + u.right.String() + ")"
}
func (*LTLfUntil) isLTLf()       {}
func (u *LTLfUntil) Left() LTLf  { return u.left }
func (u *LTLfUntil) Right() LTLf { return u.right }

// LTLfRelease is alpha R beta, dual of Until. Never flattened.
type LTLfRelease struct {
	left, right LTLf
	hash        uint64
}

func (r *LTLfRelease) Kind() Kind   { return KindLTLfRelease }
func (r *LTLfRelease) Hash() uint64 { return r.hash }
func (r *LTLfRelease) String() string {
	return "(release " + r.left.String() + " " + r.right.String() + ")"
}
func (*LTLfRelease) isLTLf()       {}
func (r *LTLfRelease) Left() LTLf  { return r.left }
func (r *LTLfRelease) Right() LTLf { return r.right }

// LTLfEventually is Fphi.
type LTLfEventually struct {
	body LTLf
	hash uint64
}

func (e *LTLfEventually) Kind() Kind     { return KindLTLfEventually }
func (e *LTLfEventually) Hash() uint64   { return e.hash }
func (e *LTLfEventually) String() string { return "(F " + e.body.String() + ")" }
func (*LTLfEventually) isLTLf()          {}
func (e *LTLfEventually) Body() LTLf     { return e.body }

// LTLfAlways is Gphi.
type LTLfAlways struct {
	body LTLf
	hash uint64
}

func (g *LTLfAlways) Kind() Kind     { return KindLTLfAlways }
func (g *LTLfAlways) Hash() uint64   { return g.hash }
func (g *LTLfAlways) String() string { return "(G " + g.body.String() + ")" }
func (*LTLfAlways) isLTLf()          {}
func (g *LTLfAlways) Body() LTLf     { return g.body }

func joinLTLf(children []LTLf) string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.String()
	}
	return strings.Join(out, " ")
}
