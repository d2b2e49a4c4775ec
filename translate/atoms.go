package translate

import (
	"sort"

	"github.com/whitemech/lydia-sub000/pl"
	"github.com/whitemech/lydia-sub000/syntax"
)

// atoms collects, in alphabetical order, every propositional atom
// reachable from f: the compositional translator's first step (§4.4 step
// 2) fixes the DFA alphabet once, from the whole formula, before any
// sub-DFA is built, so every Product call downstream shares one
// variable ordering.
func atoms(f syntax.LDLf) []string {
	seen := map[string]bool{}
	var walkLDLf func(syntax.LDLf)
	var walkRegex func(syntax.Regex)

	walkLDLf = func(f syntax.LDLf) {
		switch t := f.(type) {
		case *syntax.LDLfTrue, *syntax.LDLfFalse:
		case *syntax.LDLfAnd:
			for _, c := range t.Children() {
				walkLDLf(c)
			}
		case *syntax.LDLfOr:
			for _, c := range t.Children() {
				walkLDLf(c)
			}
		case *syntax.LDLfNot:
			walkLDLf(t.Child())
		case *syntax.LDLfDiamond:
			walkRegex(t.Regex())
			walkLDLf(t.Body())
		case *syntax.LDLfBox:
			walkRegex(t.Regex())
			walkLDLf(t.Body())
		case *syntax.LDLfF:
			walkLDLf(t.Body())
		case *syntax.LDLfT:
			walkLDLf(t.Body())
		case *syntax.LDLfQ:
			walkLDLf(t.Body())
		}
	}

	walkRegex = func(r syntax.Regex) {
		switch re := r.(type) {
		case *syntax.PropRegex:
			for _, a := range pl.Atoms(re.Prop()) {
				seen[a] = true
			}
		case *syntax.TestRegex:
			walkLDLf(re.Formula())
		case *syntax.SeqRegex:
			for _, p := range re.Parts() {
				walkRegex(p)
			}
		case *syntax.UnionRegex:
			for _, a := range re.Alternatives() {
				walkRegex(a)
			}
		case *syntax.StarRegex:
			walkRegex(re.Body())
		}
	}

	walkLDLf(f)
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
