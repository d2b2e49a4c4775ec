package syntax

import "sort"

// canonicalSet sorts terms by their canonical String() representation and
// drops duplicates (by that same representation). Because terms are
// hash-consed, two terms with equal String() are the same pointer, so this
// is both the "canonical order" and the deduplication step the manager's
// And/Or/Union factories require (§4.1: "drop duplicates by the structural
// order"). This mirrors the teacher's StringOrdered() idiom (automaton/
// util.OrderedKeys): order is derived from the canonical text form rather
// than a hand-rolled (tag, arity, child) tuple comparator — equivalent in
// effect, since String() is itself built from (tag, children) recursively.
func canonicalSet[T Term](items []T) []T {
	seen := make(map[string]T, len(items))
	keys := make([]string, 0, len(items))
	for _, it := range items {
		k := it.String()
		if _, ok := seen[k]; !ok {
			seen[k] = it
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]T, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}
