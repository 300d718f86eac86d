// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

import "github.com/pkg/errors"

// ErrUnsat reports that a diagram is the constant false function, so no
// satisfying assignment exists. This is an expected outcome, not a failure
// of the extraction.
var ErrUnsat = errors.New("unsatisfiable")

// Solve extracts one satisfying assignment from the diagram by walking the
// arena upward from the True terminal: whenever a node's branch reaches the
// current accumulator, the node's variable is fixed to that branch and the
// node becomes the new accumulator. Variables absent from the result are
// don't-cares. A constant-false diagram yields ErrUnsat.
func (b *Bdd) Solve() (map[int]bool, error) {
	if b.IsFalse() {
		return nil, ErrUnsat
	}
	assignment := make(map[int]bool)
	acc := True
	for i := 2; i < len(b.nodes); i++ {
		p := Pointer(i)
		if b.Low(p) == acc {
			assignment[b.VarOf(p).ID] = false
			acc = p
		}
		if b.High(p) == acc {
			assignment[b.VarOf(p).ID] = true
			acc = p
		}
	}
	return assignment, nil
}
