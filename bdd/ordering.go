// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

import "math"

// Ordering is a total mapping from variable id to rank, 0 being the rank
// nearest the diagram root. Orderings are versioned values: the mutating
// operations return a fresh Ordering with a bumped version, so that work in
// flight keeps reading the version it was handed. A rank lookup for an
// unknown variable never fails; it yields the lowest possible priority so
// that merges stay total over diagrams built against partially known
// orderings.
type Ordering struct {
	rank    map[int]int
	version uint64
}

// NewOrdering builds the first version of an ordering from an id-to-rank
// table. The terminal sentinel is ranked after every real variable.
func NewOrdering(rank map[int]int) *Ordering {
	r := make(map[int]int, len(rank)+1)
	worst := -1
	for id, k := range rank {
		r[id] = k
		if k > worst {
			worst = k
		}
	}
	r[TermID] = worst + 1
	return &Ordering{rank: r, version: 1}
}

// Rank returns the rank of the variable id, or the lowest possible priority
// when the id is not part of the ordering.
func (o *Ordering) Rank(id int) int {
	if k, ok := o.rank[id]; ok {
		return k
	}
	return math.MaxInt
}

// known reports the rank only for variables the ordering actually maps.
func (o *Ordering) known(id int) (int, bool) {
	k, ok := o.rank[id]
	return k, ok
}

// Version identifies this value of the ordering.
func (o *Ordering) Version() uint64 { return o.version }

// Len returns the number of ranked variables, the terminal sentinel
// included.
func (o *Ordering) Len() int { return len(o.rank) }

// Vars returns the ranked variable ids, the terminal sentinel excluded, in
// unspecified order.
func (o *Ordering) Vars() []int {
	vars := make([]int, 0, len(o.rank)-1)
	for id := range o.rank {
		if id != TermID {
			vars = append(vars, id)
		}
	}
	return vars
}

// Swap returns a new ordering version with the ranks of a and b exchanged.
func (o *Ordering) Swap(a, b int) *Ordering {
	next := o.clone()
	next.rank[a], next.rank[b] = o.rank[b], o.rank[a]
	return next
}

// Derive returns a new ordering version built from a fresh id-to-rank
// table, keeping the version lineage of o.
func (o *Ordering) Derive(rank map[int]int) *Ordering {
	next := NewOrdering(rank)
	next.version = o.version + 1
	return next
}

func (o *Ordering) clone() *Ordering {
	r := make(map[int]int, len(o.rank))
	for id, k := range o.rank {
		r[id] = k
	}
	return &Ordering{rank: r, version: o.version + 1}
}
