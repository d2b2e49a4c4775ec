package pl

import "github.com/whitemech/lydia-sub000/syntax"

// Implicant is a partial assignment: a subset of atoms each fixed to a
// truth value. It implies a formula f when every total extension of the
// assignment over f's remaining atoms satisfies f.
type Implicant map[string]bool

// PrimeImplicants enumerates the prime implicants of f over the given
// atoms: minimal implicants, none a subset of another. The general star
// procedure (§4.6) calls this on a delta expansion as is, in place of
// CUDD's Cudd_FirstPrime/Cudd_NextPrime walk over a BDD, since this
// package intentionally has no BDD dependency of its own (bdd is built
// later, downstream of pl). The brute-force shrink-and-check below is
// quadratic in the number of atoms per model and exponential in the
// number of free atoms per shrink step; every caller in this module feeds
// it small per-transition guards, never a whole formula's global atom set.
func PrimeImplicants(f syntax.PropFormula, atoms []string) []Implicant {
	models := Models(f, atoms)
	seen := map[string]bool{}
	var primes []Implicant
	for _, model := range models {
		full := make(Implicant, len(atoms))
		for _, a := range atoms {
			full[a] = model[a]
		}
		imp := shrink(f, atoms, full)
		key := implicantKey(atoms, imp)
		if !seen[key] {
			seen[key] = true
			primes = append(primes, imp)
		}
	}
	return removeSubsumed(primes)
}

// shrink drops literals from imp one at a time, keeping the drop whenever
// the result still implies f, until no further literal can be removed.
func shrink(f syntax.PropFormula, atoms []string, imp Implicant) Implicant {
	for _, a := range atoms {
		if _, fixed := imp[a]; !fixed {
			continue
		}
		trial := make(Implicant, len(imp))
		for k, v := range imp {
			if k != a {
				trial[k] = v
			}
		}
		if implies(f, atoms, trial) {
			imp = trial
		}
	}
	return imp
}

// implies reports whether every total extension of imp over atoms
// satisfies f.
func implies(f syntax.PropFormula, atoms []string, imp Implicant) bool {
	var free []string
	for _, a := range atoms {
		if _, fixed := imp[a]; !fixed {
			free = append(free, a)
		}
	}
	total := 1 << uint(len(free))
	for mask := 0; mask < total; mask++ {
		assign := make(Interpretation, len(atoms))
		for k, v := range imp {
			assign[k] = v
		}
		for idx, a := range free {
			assign[a] = mask&(1<<uint(idx)) != 0
		}
		if !Eval(f, assign) {
			return false
		}
	}
	return true
}

func implicantKey(atoms []string, imp Implicant) string {
	key := make([]byte, 0, len(atoms))
	for _, a := range atoms {
		v, fixed := imp[a]
		switch {
		case !fixed:
			key = append(key, '.')
		case v:
			key = append(key, '1')
		default:
			key = append(key, '0')
		}
	}
	return string(key)
}

func removeSubsumed(primes []Implicant) []Implicant {
	var out []Implicant
	for i, p := range primes {
		minimal := true
		for j, q := range primes {
			if i == j || len(q) >= len(p) {
				continue
			}
			if isSubsetImplicant(q, p) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, p)
		}
	}
	return out
}

func isSubsetImplicant(small, big Implicant) bool {
	for k, v := range small {
		if bv, ok := big[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
