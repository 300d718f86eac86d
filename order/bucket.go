// Copyright (c) 2024 The bddkit authors
//
// MIT License

package order

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/bddkit/bddkit/bdd"
	"github.com/bddkit/bddkit/cnf"
)

// ErrNoPairs is reported by Eliminate when the pivot occurs with only one
// polarity in the bucket, so no resolution step is possible. An expected
// outcome; the driver moves on.
var ErrNoPairs = errors.New("no resolvable pairs")

// Bucket groups the clauses whose best-ranked variable is Pivot.
type Bucket struct {
	Pivot   int
	Clauses []cnf.Clause
}

// pivotOf returns the best-ranked variable of the clause.
func pivotOf(c cnf.Clause, ord *bdd.Ordering) int {
	best := c[0].Var()
	for _, l := range c[1:] {
		if ord.Rank(l.Var()) < ord.Rank(best) {
			best = l.Var()
		}
	}
	return best
}

// Partition cuts the clause list into buckets keyed by pivot, sorted by the
// pivot's rank so the bucket nearest the root comes first. Empty clauses
// must not reach Partition; the parser and Propagate reject them earlier.
func Partition(clauses []cnf.Clause, ord *bdd.Ordering) []Bucket {
	byPivot := make(map[int][]cnf.Clause)
	for _, c := range clauses {
		p := pivotOf(c, ord)
		byPivot[p] = append(byPivot[p], c)
	}
	buckets := make([]Bucket, 0, len(byPivot))
	for p, cs := range byPivot {
		buckets = append(buckets, Bucket{Pivot: p, Clauses: cs})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return ord.Rank(buckets[i].Pivot) < ord.Rank(buckets[j].Pivot)
	})
	return buckets
}

// Eliminate resolves every positive occurrence of the pivot against every
// negative one and returns the deduplicated resolvents. Tautological
// resolvents are dropped. Eliminate returns ErrNoPairs when one polarity is
// missing and cnf.ErrEmptyClause when a resolution empties out; both are
// recoverable outcomes for the driver.
func (b Bucket) Eliminate() ([]cnf.Clause, error) {
	var pos, neg []cnf.Clause
	for _, c := range b.Clauses {
		if c.Contains(cnf.Lit(b.Pivot)) {
			pos = append(pos, c)
		} else if c.Contains(cnf.Lit(-b.Pivot)) {
			neg = append(neg, c)
		}
	}
	if len(pos) == 0 || len(neg) == 0 {
		return nil, errors.Wrapf(ErrNoPairs, "pivot %d", b.Pivot)
	}

	var resolvents []cnf.Clause
	for _, p := range pos {
		for _, n := range neg {
			r, err := p.Resolve(n, b.Pivot)
			if err != nil {
				return nil, errors.Wrapf(err, "pivot %d", b.Pivot)
			}
			if tautology(r) || containsClause(resolvents, r) {
				continue
			}
			resolvents = append(resolvents, r)
		}
	}
	return resolvents, nil
}

// Vars returns the variable ids mentioned in the bucket, in increasing
// order. This is the sifting scope when a fold outgrows its node budget.
func (b Bucket) Vars() []int {
	seen := make(map[int]bool)
	for _, c := range b.Clauses {
		for _, l := range c {
			seen[l.Var()] = true
		}
	}
	vars := make([]int, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

func tautology(c cnf.Clause) bool {
	for i := 1; i < len(c); i++ {
		if c[i].Var() == c[i-1].Var() {
			return true
		}
	}
	return false
}

func containsClause(cs []cnf.Clause, c cnf.Clause) bool {
	for _, x := range cs {
		if x.Equal(c) {
			return true
		}
	}
	return false
}
