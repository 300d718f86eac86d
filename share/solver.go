// Copyright (c) 2024 The bddkit authors
//
// MIT License

// Package share forwards learned clauses to a CDCL solver, deduplicating
// them with a pair of membership filters so the solver is never flooded
// with clauses it has already seen.
package share

import "sync"

// Solver is the boundary a sharing layer pushes learned clauses across.
// Add receives one literal at a time in the DIMACS convention, with 0
// terminating a clause. Value reports the solver's current assignment of a
// literal, when it has one.
type Solver interface {
	Add(lit int)
	Value(lit int) bool
}

// Wire renders a clause in the wire convention: its literals followed by
// the 0 terminator.
func Wire(c []int) []int {
	out := make([]int, 0, len(c)+1)
	out = append(out, c...)
	return append(out, 0)
}

// AddClause pushes one clause to the solver, terminator included.
func AddClause(s Solver, c []int) {
	for _, l := range Wire(c) {
		s.Add(l)
	}
}

// Recorder is a Solver that keeps every clause it receives. It backs the
// CLI output and the package tests.
type Recorder struct {
	mu      sync.Mutex
	partial []int
	clauses [][]int
}

func (r *Recorder) Add(lit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lit != 0 {
		r.partial = append(r.partial, lit)
		return
	}
	done := make([]int, len(r.partial))
	copy(done, r.partial)
	r.clauses = append(r.clauses, done)
	r.partial = r.partial[:0]
}

func (r *Recorder) Value(lit int) bool { return false }

// Clauses returns the clauses received so far.
func (r *Recorder) Clauses() [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]int, len(r.clauses))
	copy(out, r.clauses)
	return out
}
