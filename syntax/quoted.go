package syntax

// QuotedFormula lifts any term (typically an LDLf formula in NNF) into an
// atomic propositional letter, so the delta function's symbolic mode can
// treat "has my sub-formula already been satisfied" as an ordinary
// proposition (§4.6). Its identity is the identity of the quoted term.
type QuotedFormula struct {
	inner Term
	hash  uint64
}

func (q *QuotedFormula) Kind() Kind     { return KindQuoted }
func (q *QuotedFormula) Hash() uint64   { return q.hash }
func (q *QuotedFormula) String() string { return "quote(" + q.inner.String() + ")" }
func (q *QuotedFormula) Formula() Term  { return q.inner }
