package syntax

import "strings"

// Regex is a regular expression over propositional formulas with tests:
// PropRegex, Test, Seq, Union or Star.
type Regex interface {
	Term
	isRegex()
}

// PropRegex is a single-step regex guarded by a propositional formula.
type PropRegex struct {
	prop PropFormula
	hash uint64
}

func (r *PropRegex) Kind() Kind           { return KindRegexProp }
func (r *PropRegex) Hash() uint64         { return r.hash }
func (r *PropRegex) String() string       { return "(prop " + r.prop.String() + ")" }
func (*PropRegex) isRegex()               {}
func (r *PropRegex) Prop() PropFormula    { return r.prop }

// TestRegex is a regex test (ψ?) guarding continuation on an LDLf formula
// holding at the current instant.
type TestRegex struct {
	ldlf LDLf
	hash uint64
}

func (r *TestRegex) Kind() Kind     { return KindRegexTest }
func (r *TestRegex) Hash() uint64   { return r.hash }
func (r *TestRegex) String() string { return "(test " + r.ldlf.String() + ")" }
func (*TestRegex) isRegex()         {}
func (r *TestRegex) Formula() LDLf  { return r.ldlf }

// SeqRegex is an ordered concatenation of at least one regex. Order is
// significant, so unlike And/Or/Union it is stored as a vector, not a
// canonically ordered set.
type SeqRegex struct {
	parts []Regex
	hash  uint64
}

func (r *SeqRegex) Kind() Kind     { return KindRegexSeq }
func (r *SeqRegex) Hash() uint64   { return r.hash }
func (r *SeqRegex) String() string { return "(seq " + joinRegex(r.parts) + ")" }
func (*SeqRegex) isRegex()         {}
func (r *SeqRegex) Parts() []Regex { return r.parts }

// UnionRegex is a canonically ordered, deduplicated set of at least two
// alternative regexes.
type UnionRegex struct {
	alts []Regex
	hash uint64
}

func (r *UnionRegex) Kind() Kind     { return KindRegexUnion }
func (r *UnionRegex) Hash() uint64   { return r.hash }
func (r *UnionRegex) String() string { return "(union " + joinRegex(r.alts) + ")" }
func (*UnionRegex) isRegex()         {}
func (r *UnionRegex) Alternatives() []Regex { return r.alts }

// StarRegex is the Kleene closure of a regex.
type StarRegex struct {
	body Regex
	hash uint64
}

func (r *StarRegex) Kind() Kind     { return KindRegexStar }
func (r *StarRegex) Hash() uint64   { return r.hash }
func (r *StarRegex) String() string { return "(star " + r.body.String() + ")" }
func (*StarRegex) isRegex()         {}
func (r *StarRegex) Body() Regex    { return r.body }

func joinRegex(parts []Regex) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.String()
	}
	return strings.Join(out, " ")
}
