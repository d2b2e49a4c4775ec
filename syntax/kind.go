package syntax

// Kind is the type tag of a hash-consed term. It is part of the total order
// used to canonically sort set-valued children (type_tag, arity, child
// order) and is mixed into every term's cached hash.
type Kind uint8

const (
	KindSymbol Kind = iota

	KindPLTrue
	KindPLFalse
	KindPLAtom
	KindPLAnd
	KindPLOr
	KindPLNot

	KindRegexProp
	KindRegexTest
	KindRegexSeq
	KindRegexUnion
	KindRegexStar

	KindLDLfTrue
	KindLDLfFalse
	KindLDLfAnd
	KindLDLfOr
	KindLDLfNot
	KindLDLfDiamond
	KindLDLfBox
	KindLDLfF
	KindLDLfT
	KindLDLfQ

	KindLTLfTrue
	KindLTLfFalse
	KindLTLfAtom
	KindLTLfAnd
	KindLTLfOr
	KindLTLfNot
	KindLTLfNext
	KindLTLfWeakNext
	KindLTLfUntil
	KindLTLfRelease
	KindLTLfEventually
	KindLTLfAlways

	KindQuoted
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "Symbol"
	case KindPLTrue:
		return "PLTrue"
	case KindPLFalse:
		return "PLFalse"
	case KindPLAtom:
		return "PLAtom"
	case KindPLAnd:
		return "PLAnd"
	case KindPLOr:
		return "PLOr"
	case KindPLNot:
		return "PLNot"
	case KindRegexProp:
		return "RegexProp"
	case KindRegexTest:
		return "RegexTest"
	case KindRegexSeq:
		return "RegexSeq"
	case KindRegexUnion:
		return "RegexUnion"
	case KindRegexStar:
		return "RegexStar"
	case KindLDLfTrue:
		return "LDLfTrue"
	case KindLDLfFalse:
		return "LDLfFalse"
	case KindLDLfAnd:
		return "LDLfAnd"
	case KindLDLfOr:
		return "LDLfOr"
	case KindLDLfNot:
		return "LDLfNot"
	case KindLDLfDiamond:
		return "LDLfDiamond"
	case KindLDLfBox:
		return "LDLfBox"
	case KindLDLfF:
		return "LDLfF"
	case KindLDLfT:
		return "LDLfT"
	case KindLDLfQ:
		return "LDLfQ"
	case KindLTLfTrue:
		return "LTLfTrue"
	case KindLTLfFalse:
		return "LTLfFalse"
	case KindLTLfAtom:
		return "LTLfAtom"
	case KindLTLfAnd:
		return "LTLfAnd"
	case KindLTLfOr:
		return "LTLfOr"
	case KindLTLfNot:
		return "LTLfNot"
	case KindLTLfNext:
		return "LTLfNext"
	case KindLTLfWeakNext:
		return "LTLfWeakNext"
	case KindLTLfUntil:
		return "LTLfUntil"
	case KindLTLfRelease:
		return "LTLfRelease"
	case KindLTLfEventually:
		return "LTLfEventually"
	case KindLTLfAlways:
		return "LTLfAlways"
	case KindQuoted:
		return "Quoted"
	default:
		return "Unknown"
	}
}
