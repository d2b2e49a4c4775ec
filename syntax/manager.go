package syntax

import "github.com/whitemech/lydia-sub000/errs"

// Manager owns every hash-consed term. It must outlive every term it built.
// A Manager is not safe for concurrent use (§5): translating formulas in
// parallel requires one Manager per goroutine.
type Manager struct {
	symbols map[string]*Symbol
	prop    map[string]PropFormula
	regex   map[string]Regex
	ldlf    map[string]LDLf
	ltlf    map[string]LTLf
	quoted  map[string]*QuotedFormula

	plTrue, plFalse     PropFormula
	ldlfTrue, ldlfFalse LDLf
	ltlfTrue, ltlfFalse LTLf
}

// NewManager builds an empty Manager with its constant singletons
// pre-interned.
func NewManager() *Manager {
	m := &Manager{
		symbols: make(map[string]*Symbol),
		prop:    make(map[string]PropFormula),
		regex:   make(map[string]Regex),
		ldlf:    make(map[string]LDLf),
		ltlf:    make(map[string]LTLf),
		quoted:  make(map[string]*QuotedFormula),
	}
	m.plTrue = &PLTrue{hash: combineHash(KindPLTrue)}
	m.plFalse = &PLFalse{hash: combineHash(KindPLFalse)}
	m.ldlfTrue = &LDLfTrue{hash: combineHash(KindLDLfTrue)}
	m.ldlfFalse = &LDLfFalse{hash: combineHash(KindLDLfFalse)}
	m.ltlfTrue = &LTLfTrue{hash: combineHash(KindLTLfTrue)}
	m.ltlfFalse = &LTLfFalse{hash: combineHash(KindLTLfFalse)}
	return m
}

func intern[T any](table map[string]T, key string, build func() T) T {
	if v, ok := table[key]; ok {
		return v
	}
	v := build()
	table[key] = v
	return v
}

func hashesOf[T Term](items []T) []uint64 {
	out := make([]uint64, len(items))
	for i, it := range items {
		out[i] = it.Hash()
	}
	return out
}

// canonicalizeAndOr flattens same-kind children, discards the operator's
// identity element, and reports whether the absorbing element was found
// anywhere in the (flattened) arguments. On return, result is deduplicated
// and canonically ordered (§4.1).
func canonicalizeAndOr[T Term](
	args []T,
	isIdentity func(T) bool,
	isAbsorbing func(T) bool,
	sameKindChildren func(T) ([]T, bool),
) (result []T, absorbingHit bool) {
	var flat []T
	var walk func([]T)
	walk = func(items []T) {
		for _, it := range items {
			if kids, ok := sameKindChildren(it); ok {
				walk(kids)
				continue
			}
			if isIdentity(it) {
				continue
			}
			flat = append(flat, it)
		}
	}
	walk(args)
	for _, it := range flat {
		if isAbsorbing(it) {
			return nil, true
		}
	}
	return canonicalSet(flat), false
}

// Symbol builds or retrieves the named Symbol.
func (m *Manager) Symbol(name string) *Symbol {
	return intern(m.symbols, name, func() *Symbol {
		return &Symbol{name: name, hash: fnv64a(name)}
	})
}

// Quote lifts t into a QuotedFormula.
func (m *Manager) Quote(t Term) *QuotedFormula {
	key := "quote(" + t.String() + ")"
	return intern(m.quoted, key, func() *QuotedFormula {
		return &QuotedFormula{inner: t, hash: combineHash(KindQuoted, t.Hash())}
	})
}

// ---- propositional logic ----

func (m *Manager) True() PropFormula  { return m.plTrue }
func (m *Manager) False() PropFormula { return m.plFalse }

// Atom builds a propositional atom wrapping a symbol.
func (m *Manager) Atom(sym *Symbol) PropFormula {
	return intern(m.prop, sym.name, func() PropFormula {
		return &PLAtom{symbol: sym, hash: combineHash(KindPLAtom, sym.Hash())}
	})
}

// QuotedAtom builds a propositional atom wrapping a quoted formula.
func (m *Manager) QuotedAtom(q *QuotedFormula) PropFormula {
	key := "'" + q.String() + "'"
	return intern(m.prop, key, func() PropFormula {
		return &PLAtom{quoted: q, hash: combineHash(KindPLAtom, q.Hash())}
	})
}

func isPLTrue(t PropFormula) bool  { _, ok := t.(*PLTrue); return ok }
func isPLFalse(t PropFormula) bool { _, ok := t.(*PLFalse); return ok }

// And builds a canonicalized conjunction (§4.1).
func (m *Manager) And(args ...PropFormula) (PropFormula, error) {
	flat, absorb := canonicalizeAndOr(args, isPLTrue, isPLFalse,
		func(t PropFormula) ([]PropFormula, bool) {
			a, ok := t.(*PLAnd)
			if !ok {
				return nil, false
			}
			return a.children, true
		})
	if absorb {
		return m.False(), nil
	}
	if len(flat) == 0 {
		return m.True(), nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(and " + joinProp(flat) + ")"
	return intern(m.prop, key, func() PropFormula {
		return &PLAnd{children: flat, hash: combineHash(KindPLAnd, hashesOf(flat)...)}
	}), nil
}

// Or builds a canonicalized disjunction.
func (m *Manager) Or(args ...PropFormula) (PropFormula, error) {
	flat, absorb := canonicalizeAndOr(args, isPLFalse, isPLTrue,
		func(t PropFormula) ([]PropFormula, bool) {
			o, ok := t.(*PLOr)
			if !ok {
				return nil, false
			}
			return o.children, true
		})
	if absorb {
		return m.True(), nil
	}
	if len(flat) == 0 {
		return m.False(), nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(or " + joinProp(flat) + ")"
	return intern(m.prop, key, func() PropFormula {
		return &PLOr{children: flat, hash: combineHash(KindPLOr, hashesOf(flat)...)}
	}), nil
}

// Not builds a propositional negation.
func (m *Manager) Not(arg PropFormula) (PropFormula, error) {
	if arg == nil {
		return nil, errs.Contract("Not: nil argument")
	}
	key := "(not " + arg.String() + ")"
	return intern(m.prop, key, func() PropFormula {
		return &PLNot{child: arg, hash: combineHash(KindPLNot, arg.Hash())}
	}), nil
}

// ---- regular expressions ----

// PropRegex builds a single-step regex guarded by a propositional formula.
func (m *Manager) PropRegex(p PropFormula) (Regex, error) {
	if p == nil {
		return nil, errs.Contract("PropRegex: nil propositional guard")
	}
	key := "(prop " + p.String() + ")"
	return intern(m.regex, key, func() Regex {
		return &PropRegex{prop: p, hash: combineHash(KindRegexProp, p.Hash())}
	}), nil
}

// Test builds a regex test.
func (m *Manager) Test(f LDLf) (Regex, error) {
	if f == nil {
		return nil, errs.Contract("Test: nil formula")
	}
	key := "(test " + f.String() + ")"
	return intern(m.regex, key, func() Regex {
		return &TestRegex{ldlf: f, hash: combineHash(KindRegexTest, f.Hash())}
	}), nil
}

// Seq builds an ordered concatenation of at least one regex.
func (m *Manager) Seq(parts ...Regex) (Regex, error) {
	if len(parts) == 0 {
		return nil, errs.Contract("Seq: requires at least one regex")
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	key := "(seq " + joinRegex(parts) + ")"
	return intern(m.regex, key, func() Regex {
		cp := append([]Regex(nil), parts...)
		return &SeqRegex{parts: cp, hash: combineHash(KindRegexSeq, hashesOf(parts)...)}
	}), nil
}

// Union builds a canonically ordered, deduplicated set of at least one
// alternative regex (collapsing to the single element if only one is
// distinct after dedup).
func (m *Manager) Union(alts ...Regex) (Regex, error) {
	if len(alts) == 0 {
		return nil, errs.Contract("Union: requires at least one regex")
	}
	flat := canonicalSet(alts)
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(union " + joinRegex(flat) + ")"
	return intern(m.regex, key, func() Regex {
		return &UnionRegex{alts: flat, hash: combineHash(KindRegexUnion, hashesOf(flat)...)}
	}), nil
}

// Star builds the Kleene closure of a regex.
func (m *Manager) Star(body Regex) (Regex, error) {
	if body == nil {
		return nil, errs.Contract("Star: nil body")
	}
	key := "(star " + body.String() + ")"
	return intern(m.regex, key, func() Regex {
		return &StarRegex{body: body, hash: combineHash(KindRegexStar, body.Hash())}
	}), nil
}

// ---- LDLf ----

func (m *Manager) LDLfTrue() LDLf  { return m.ldlfTrue }
func (m *Manager) LDLfFalse() LDLf { return m.ldlfFalse }

func isLDLfTrue(t LDLf) bool  { _, ok := t.(*LDLfTrue); return ok }
func isLDLfFalse(t LDLf) bool { _, ok := t.(*LDLfFalse); return ok }

// LDLfAnd builds a canonicalized LDLf conjunction.
func (m *Manager) LDLfAnd(args ...LDLf) (LDLf, error) {
	flat, absorb := canonicalizeAndOr(args, isLDLfTrue, isLDLfFalse,
		func(t LDLf) ([]LDLf, bool) {
			a, ok := t.(*LDLfAnd)
			if !ok {
				return nil, false
			}
			return a.children, true
		})
	if absorb {
		return m.LDLfFalse(), nil
	}
	if len(flat) == 0 {
		return m.LDLfTrue(), nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(and " + joinLDLf(flat) + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfAnd{children: flat, hash: combineHash(KindLDLfAnd, hashesOf(flat)...)}
	}), nil
}

// LDLfOr builds a canonicalized LDLf disjunction.
func (m *Manager) LDLfOr(args ...LDLf) (LDLf, error) {
	flat, absorb := canonicalizeAndOr(args, isLDLfFalse, isLDLfTrue,
		func(t LDLf) ([]LDLf, bool) {
			o, ok := t.(*LDLfOr)
			if !ok {
				return nil, false
			}
			return o.children, true
		})
	if absorb {
		return m.LDLfTrue(), nil
	}
	if len(flat) == 0 {
		return m.LDLfFalse(), nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(or " + joinLDLf(flat) + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfOr{children: flat, hash: combineHash(KindLDLfOr, hashesOf(flat)...)}
	}), nil
}

// LDLfNot builds an LDLf negation.
func (m *Manager) LDLfNot(arg LDLf) (LDLf, error) {
	if arg == nil {
		return nil, errs.Contract("LDLfNot: nil argument")
	}
	key := "(not " + arg.String() + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfNot{child: arg, hash: combineHash(KindLDLfNot, arg.Hash())}
	}), nil
}

// Diamond builds the existential modality <r>phi.
func (m *Manager) Diamond(r Regex, body LDLf) (LDLf, error) {
	if r == nil || body == nil {
		return nil, errs.Contract("Diamond: nil regex or body")
	}
	key := "(diamond " + r.String() + " " + body.String() + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfDiamond{regex: r, body: body, hash: combineHash(KindLDLfDiamond, r.Hash(), body.Hash())}
	}), nil
}

// Box builds the universal modality [r]phi.
func (m *Manager) Box(r Regex, body LDLf) (LDLf, error) {
	if r == nil || body == nil {
		return nil, errs.Contract("Box: nil regex or body")
	}
	key := "(box " + r.String() + " " + body.String() + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfBox{regex: r, body: body, hash: combineHash(KindLDLfBox, r.Hash(), body.Hash())}
	}), nil
}

// LDLfF builds the F delta-expansion placeholder.
func (m *Manager) LDLfF(body LDLf) LDLf {
	key := "(F " + body.String() + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfF{body: body, hash: combineHash(KindLDLfF, body.Hash())}
	})
}

// LDLfT builds the T delta-expansion placeholder.
func (m *Manager) LDLfT(body LDLf) LDLf {
	key := "(T " + body.String() + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfT{body: body, hash: combineHash(KindLDLfT, body.Hash())}
	})
}

// LDLfQ builds the Q delta-expansion placeholder. Used strictly by the star
// procedure; do not use it elsewhere (§9).
func (m *Manager) LDLfQ(body LDLf) LDLf {
	key := "(Q " + body.String() + ")"
	return intern(m.ldlf, key, func() LDLf {
		return &LDLfQ{body: body, hash: combineHash(KindLDLfQ, body.Hash())}
	})
}

// ---- LTLf ----

func (m *Manager) LTLfTrue() LTLf  { return m.ltlfTrue }
func (m *Manager) LTLfFalse() LTLf { return m.ltlfFalse }

func isLTLfTrue(t LTLf) bool  { _, ok := t.(*LTLfTrue); return ok }
func isLTLfFalse(t LTLf) bool { _, ok := t.(*LTLfFalse); return ok }

// LTLfAtom builds an LTLf atomic proposition.
func (m *Manager) LTLfAtom(sym *Symbol) LTLf {
	key := sym.name
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfAtom{symbol: sym, hash: combineHash(KindLTLfAtom, sym.Hash())}
	})
}

// LTLfAnd builds a canonicalized LTLf conjunction.
func (m *Manager) LTLfAnd(args ...LTLf) (LTLf, error) {
	flat, absorb := canonicalizeAndOr(args, isLTLfTrue, isLTLfFalse,
		func(t LTLf) ([]LTLf, bool) {
			a, ok := t.(*LTLfAnd)
			if !ok {
				return nil, false
			}
			return a.children, true
		})
	if absorb {
		return m.LTLfFalse(), nil
	}
	if len(flat) == 0 {
		return m.LTLfTrue(), nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(and " + joinLTLf(flat) + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfAnd{children: flat, hash: combineHash(KindLTLfAnd, hashesOf(flat)...)}
	}), nil
}

// LTLfOr builds a canonicalized LTLf disjunction.
func (m *Manager) LTLfOr(args ...LTLf) (LTLf, error) {
	flat, absorb := canonicalizeAndOr(args, isLTLfFalse, isLTLfTrue,
		func(t LTLf) ([]LTLf, bool) {
			o, ok := t.(*LTLfOr)
			if !ok {
				return nil, false
			}
			return o.children, true
		})
	if absorb {
		return m.LTLfTrue(), nil
	}
	if len(flat) == 0 {
		return m.LTLfFalse(), nil
	}
	if len(flat) == 1 {
		return flat[0], nil
	}
	key := "(or " + joinLTLf(flat) + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfOr{children: flat, hash: combineHash(KindLTLfOr, hashesOf(flat)...)}
	}), nil
}

// LTLfNot builds an LTLf negation.
func (m *Manager) LTLfNot(arg LTLf) (LTLf, error) {
	if arg == nil {
		return nil, errs.Contract("LTLfNot: nil argument")
	}
	key := "(not " + arg.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfNot{child: arg, hash: combineHash(KindLTLfNot, arg.Hash())}
	}), nil
}

func (m *Manager) LTLfNext(body LTLf) (LTLf, error) {
	if body == nil {
		return nil, errs.Contract("Next: nil body")
	}
	key := "(X " + body.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfNext{body: body, hash: combineHash(KindLTLfNext, body.Hash())}
	}), nil
}

func (m *Manager) LTLfWeakNext(body LTLf) (LTLf, error) {
	if body == nil {
		return nil, errs.Contract("WeakNext: nil body")
	}
	key := "(WX " + body.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfWeakNext{body: body, hash: combineHash(KindLTLfWeakNext, body.Hash())}
	}), nil
}

func (m *Manager) LTLfUntil(left, right LTLf) (LTLf, error) {
	if left == nil || right == nil {
		return nil, errs.Contract("Until: nil operand")
	}
	key := "(until " + left.String() + " " + right.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfUntil{left: left, right: right, hash: combineHash(KindLTLfUntil, left.Hash(), right.Hash())}
	}), nil
}

func (m *Manager) LTLfRelease(left, right LTLf) (LTLf, error) {
	if left == nil || right == nil {
		return nil, errs.Contract("Release: nil operand")
	}
	key := "(release " + left.String() + " " + right.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfRelease{left: left, right: right, hash: combineHash(KindLTLfRelease, left.Hash(), right.Hash())}
	}), nil
}

func (m *Manager) LTLfEventually(body LTLf) (LTLf, error) {
	if body == nil {
		return nil, errs.Contract("Eventually: nil body")
	}
	key := "(F " + body.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfEventually{body: body, hash: combineHash(KindLTLfEventually, body.Hash())}
	}), nil
}

func (m *Manager) LTLfAlways(body LTLf) (LTLf, error) {
	if body == nil {
		return nil, errs.Contract("Always: nil body")
	}
	key := "(G " + body.String() + ")"
	return intern(m.ltlf, key, func() LTLf {
		return &LTLfAlways{body: body, hash: combineHash(KindLTLfAlways, body.Hash())}
	}), nil
}
