// Package pl is the propositional core (component C2): evaluation, negation
// normal form and CNF over PropFormula, model enumeration and
// prime-implicant enumeration. It depends only on the syntax package, never
// on the bdd/dfa layers, since those are downstream consumers of it (the
// star procedure's delta expansion, §4.5-4.6, calls straight into this
// package on small propositional formulas before any BDD is built).
package pl

import (
	"sort"

	"github.com/whitemech/lydia-sub000/syntax"
)

// Interpretation maps atom names (symbol names, or the canonical String()
// of a quoted atom) to truth values. Atoms missing from the map are false.
type Interpretation map[string]bool

// Atoms collects, in alphabetical order, the names of every atom appearing
// in f.
func Atoms(f syntax.PropFormula) []string {
	seen := map[string]bool{}
	var walk func(syntax.PropFormula)
	walk = func(f syntax.PropFormula) {
		switch t := f.(type) {
		case *syntax.PLAtom:
			seen[atomKey(t)] = true
		case *syntax.PLAnd:
			for _, c := range t.Children() {
				walk(c)
			}
		case *syntax.PLOr:
			for _, c := range t.Children() {
				walk(c)
			}
		case *syntax.PLNot:
			walk(t.Child())
		}
	}
	walk(f)
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func atomKey(a *syntax.PLAtom) string {
	if a.IsQuoted() {
		return a.String()
	}
	return a.Symbol().Name()
}

// AtomNodes collects, keyed by the same names Atoms returns, the actual
// *syntax.PLAtom node for each distinct atom appearing in f. The star
// procedure needs the nodes themselves (not just names) to recover the
// quoted LDLf continuation behind a quoted atom once it knows, from a
// prime implicant, that atom is true.
func AtomNodes(f syntax.PropFormula) map[string]*syntax.PLAtom {
	out := map[string]*syntax.PLAtom{}
	var walk func(syntax.PropFormula)
	walk = func(f syntax.PropFormula) {
		switch t := f.(type) {
		case *syntax.PLAtom:
			out[atomKey(t)] = t
		case *syntax.PLAnd:
			for _, c := range t.Children() {
				walk(c)
			}
		case *syntax.PLOr:
			for _, c := range t.Children() {
				walk(c)
			}
		case *syntax.PLNot:
			walk(t.Child())
		}
	}
	walk(f)
	return out
}
