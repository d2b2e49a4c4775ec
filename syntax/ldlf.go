package syntax

import "strings"

// LDLf is a Linear Dynamic Logic (finite-trace) formula: True, False, And,
// Or, Not, Diamond, Box, or one of the three delta-expansion placeholders
// F, T, Q (§4.6).
type LDLf interface {
	Term
	isLDLf()
}

type LDLfTrue struct{ hash uint64 }

func (t *LDLfTrue) Kind() Kind   { return KindLDLfTrue }
func (t *LDLfTrue) Hash() uint64 { return t.hash }
func (*LDLfTrue) String() string { return "tt" }
func (*LDLfTrue) isLDLf()        {}

type LDLfFalse struct{ hash uint64 }

func (f *LDLfFalse) Kind() Kind   { return KindLDLfFalse }
func (f *LDLfFalse) Hash() uint64 { return f.hash }
func (*LDLfFalse) String() string { return "ff" }
func (*LDLfFalse) isLDLf()        {}

// LDLfAnd is a canonicalized conjunction of at least two LDLf formulas.
type LDLfAnd struct {
	children []LDLf
	hash     uint64
}

func (a *LDLfAnd) Kind() Kind          { return KindLDLfAnd }
func (a *LDLfAnd) Hash() uint64        { return a.hash }
func (a *LDLfAnd) String() string      { return "(and " + joinLDLf(a.children) + ")" }
func (*LDLfAnd) isLDLf()               {}
func (a *LDLfAnd) Children() []LDLf    { return a.children }

// LDLfOr is a canonicalized disjunction of at least two LDLf formulas.
type LDLfOr struct {
	children []LDLf
	hash     uint64
}

func (o *LDLfOr) Kind() Kind       { return KindLDLfOr }
func (o *LDLfOr) Hash() uint64     { return o.hash }
func (o *LDLfOr) String() string   { return "(or " + joinLDLf(o.children) + ")" }
func (*LDLfOr) isLDLf()            {}
func (o *LDLfOr) Children() []LDLf { return o.children }

type LDLfNot struct {
	child LDLf
	hash  uint64
}

func (n *LDLfNot) Kind() Kind     { return KindLDLfNot }
func (n *LDLfNot) Hash() uint64   { return n.hash }
func (n *LDLfNot) String() string { return "(not " + n.child.String() + ")" }
func (*LDLfNot) isLDLf()          {}
func (n *LDLfNot) Child() LDLf    { return n.child }

// LDLfDiamond is the existential modality <r>phi: some r-path leads to a
// state where phi holds.
type LDLfDiamond struct {
	regex Regex
	body  LDLf
	hash  uint64
}

func (d *LDLfDiamond) Kind() Kind   { return KindLDLfDiamond }
func (d *LDLfDiamond) Hash() uint64 { return d.hash }
func (d *LDLfDiamond) String() string {
	return "(diamond " + d.regex.String() + " " + d.body.String() + ")"
}
func (*LDLfDiamond) isLDLf()        {}
func (d *LDLfDiamond) Regex() Regex { return d.regex }
func (d *LDLfDiamond) Body() LDLf   { return d.body }

// LDLfBox is the universal modality [r]phi: every r-path leads to a state
// where phi holds.
type LDLfBox struct {
	regex Regex
	body  LDLf
	hash  uint64
}

func (b *LDLfBox) Kind() Kind   { return KindLDLfBox }
func (b *LDLfBox) Hash() uint64 { return b.hash }
func (b *LDLfBox) String() string {
	return "(box " + b.regex.String() + " " + b.body.String() + ")"
}
func (*LDLfBox) isLDLf()        {}
func (b *LDLfBox) Regex() Regex { return b.regex }
func (b *LDLfBox) Body() LDLf   { return b.body }

// LDLfF is the "F" delta-expansion placeholder (§4.6): it marks a
// sub-formula whose delta-expansion has already been pushed one step and
// should not be expanded again. It appears only inside delta output.
type LDLfF struct {
	body LDLf
	hash uint64
}

func (f *LDLfF) Kind() Kind     { return KindLDLfF }
func (f *LDLfF) Hash() uint64   { return f.hash }
func (f *LDLfF) String() string { return "(F " + f.body.String() + ")" }
func (*LDLfF) isLDLf()          {}
func (f *LDLfF) Body() LDLf     { return f.body }

// LDLfT is the "T" delta-expansion placeholder, dual to LDLfF under
// negation.
type LDLfT struct {
	body LDLf
	hash uint64
}

func (t *LDLfT) Kind() Kind     { return KindLDLfT }
func (t *LDLfT) Hash() uint64   { return t.hash }
func (t *LDLfT) String() string { return "(T " + t.body.String() + ")" }
func (*LDLfT) isLDLf()          {}
func (t *LDLfT) Body() LDLf     { return t.body }

// LDLfQ is the "Q" delta-expansion placeholder used strictly by the star
// procedure (§4.5 step 6, §9 Open Question): it wraps the body of the
// star's loop formula ⟨r⟩Q(body), and delta expands it exactly as that
// body. It must not be used elsewhere.
type LDLfQ struct {
	body LDLf
	hash uint64
}

func (q *LDLfQ) Kind() Kind     { return KindLDLfQ }
func (q *LDLfQ) Hash() uint64   { return q.hash }
func (q *LDLfQ) String() string { return "(Q " + q.body.String() + ")" }
func (*LDLfQ) isLDLf()          {}
func (q *LDLfQ) Body() LDLf     { return q.body }

func joinLDLf(children []LDLf) string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.String()
	}
	return strings.Join(out, " ")
}
