// Copyright (c) 2024 The bddkit authors
//
// MIT License

// Package order turns a parsed CNF instance into a variable ordering, cuts
// the clause list into pivot buckets, and drives the diagram construction
// that mines learned clauses along the way.
package order

import (
	"sort"

	"github.com/bddkit/bddkit/bdd"
	"github.com/bddkit/bddkit/cnf"
)

// VarOrdering couples the instance's variable table with the live diagram
// ordering. Ord is replaced, never mutated, when sifting improves it.
type VarOrdering struct {
	Vars    map[int]bdd.Var
	Clauses []cnf.Clause
	Ord     *bdd.Ordering
}

// New builds the initial ordering for an instance: variables are ranked by
// descending score, ties broken by ascending id, so the most constrained
// variables sit nearest the diagram root. Instances without a score table
// get one computed from the clause list.
func New(ins *cnf.Instance) *VarOrdering {
	scores := ins.Scores
	if scores == nil {
		scores = Scores(ins.Clauses)
	}

	ids := make([]int, 0, len(ins.VarMap))
	for id := range ins.VarMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	rank := make(map[int]int, len(ids))
	vars := make(map[int]bdd.Var, len(ids))
	for i, id := range ids {
		rank[id] = i
		vars[id] = bdd.Var{ID: id, Score: scores[id]}
	}
	return &VarOrdering{
		Vars:    vars,
		Clauses: ins.Clauses,
		Ord:     bdd.NewOrdering(rank),
	}
}

// rerank redistributes the bucket's variables over the rank slots they
// already occupy, ordered by scores restricted to the bucket's clauses.
// Variables outside the bucket keep their ranks, so the result is a total
// ordering derived from the current one. The second result reports whether
// any rank moved.
func (vo *VarOrdering) rerank(bk Bucket) (*bdd.Ordering, bool) {
	vars := bk.Vars()
	if len(vars) < 2 {
		return vo.Ord, false
	}
	scores := Scores(bk.Clauses)

	slots := make([]int, 0, len(vars))
	for _, v := range vars {
		slots = append(slots, vo.Ord.Rank(v))
	}
	sort.Ints(slots)

	sorted := append([]int(nil), vars...)
	sort.Slice(sorted, func(i, j int) bool {
		if scores[sorted[i]] != scores[sorted[j]] {
			return scores[sorted[i]] > scores[sorted[j]]
		}
		return sorted[i] < sorted[j]
	})

	table := make(map[int]int, vo.Ord.Len())
	for _, v := range vo.Ord.Vars() {
		table[v] = vo.Ord.Rank(v)
	}
	moved := false
	for i, v := range sorted {
		if table[v] != slots[i] {
			moved = true
		}
		table[v] = slots[i]
	}
	if !moved {
		return vo.Ord, false
	}
	return vo.Ord.Derive(table), true
}

// Scores computes the ordering score of every variable in the clause list:
// the number of clauses mentioning it divided by the mean arity of those
// clauses. Frequent variables in short clauses score highest.
func Scores(clauses []cnf.Clause) map[int]float64 {
	count := make(map[int]int)
	arity := make(map[int]int)
	for _, c := range clauses {
		for _, l := range c {
			count[l.Var()]++
			arity[l.Var()] += len(c)
		}
	}
	scores := make(map[int]float64, len(count))
	for v, n := range count {
		mean := float64(arity[v]) / float64(n)
		scores[v] = float64(n) / mean
	}
	return scores
}
