package pl

import "github.com/whitemech/lydia-sub000/syntax"

// Models enumerates, by brute-force truth-table search over the given
// atoms, every interpretation that satisfies f. It underlies
// PrimeImplicants below.
func Models(f syntax.PropFormula, atoms []string) []Interpretation {
	n := len(atoms)
	if n > 20 {
		// Guards this large never arise from a single delta expansion or
		// transition formula in practice; enumerating 2^20+ rows would be
		// a symptom of a caller passing the wrong atom set, not a case
		// this brute-force search is meant to serve.
		panic("pl.Models: refusing to enumerate over more than 20 atoms")
	}
	var out []Interpretation
	total := 1 << n
	for mask := 0; mask < total; mask++ {
		i := assignmentFromMask(atoms, mask)
		if Eval(f, i) {
			out = append(out, i)
		}
	}
	return out
}

func assignmentFromMask(atoms []string, mask int) Interpretation {
	i := make(Interpretation, len(atoms))
	for idx, a := range atoms {
		i[a] = mask&(1<<uint(idx)) != 0
	}
	return i
}

// IsSatisfiable reports whether f has at least one model over its own atom
// set.
func IsSatisfiable(f syntax.PropFormula) bool {
	return len(Models(f, Atoms(f))) > 0
}

// IsValid reports whether every interpretation over f's atom set satisfies
// f.
func IsValid(f syntax.PropFormula) bool {
	atoms := Atoms(f)
	return len(Models(f, atoms)) == 1<<uint(len(atoms))
}
