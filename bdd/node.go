// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

import "math"

// TermID is the variable id reserved for the two terminal nodes. It ranks
// last under every ordering so that the apply engine always decomposes real
// variables before reaching a terminal. No real variable may use it.
const TermID = math.MaxInt32

// Var is a decision variable: a unique id plus the heuristic score derived
// from clause statistics. Vars are immutable once created; node identity
// ignores the score.
type Var struct {
	ID    int
	Score float64
}

// TermVar returns the sentinel variable carried by terminal nodes.
func TermVar() Var { return Var{ID: TermID} }

// Pointer is an index into a diagram's node array. Index 0 is the False
// terminal and index 1 the True terminal; pointers are only meaningful
// within the arena that produced them, except for the two terminal indices.
type Pointer int32

const (
	// False is the pointer to the canonical false terminal.
	False Pointer = 0
	// True is the pointer to the canonical true terminal.
	True Pointer = 1
)

// IsTerminal reports whether p denotes one of the two terminal nodes.
func (p Pointer) IsTerminal() bool { return p < 2 }

// IsFalse reports whether p is the false terminal.
func (p Pointer) IsFalse() bool { return p == False }

// IsTrue reports whether p is the true terminal.
func (p Pointer) IsTrue() bool { return p == True }

// flipTerminal exchanges the two terminal pointers and leaves internal
// pointers untouched. Used by Negate.
func (p Pointer) flipTerminal() Pointer {
	switch p {
	case False:
		return True
	case True:
		return False
	}
	return p
}

// Node is one vertex of a diagram: the decision variable and the Shannon
// cofactors for the variable being false (Low) and true (High). The
// invariant Low != High holds for every node built by the apply engine.
type Node struct {
	Var  Var
	Low  Pointer
	High Pointer
}

// nodeKey is the structural identity of a node, used by the hash-consing
// table and by diagram equality. The score does not take part.
type nodeKey struct {
	id        int
	low, high Pointer
}

func (n Node) key() nodeKey { return nodeKey{n.Var.ID, n.Low, n.High} }

func terminalNodes() []Node {
	return []Node{
		{Var: TermVar(), Low: False, High: False},
		{Var: TermVar(), Low: True, High: True},
	}
}
