// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

import (
	"github.com/pkg/errors"

	"github.com/bddkit/bddkit/cnf"
)

// ErrUnknownVar signals a structural misuse: a diagram was requested for a
// variable id absent from the variable table. The construction is aborted.
var ErrUnknownVar = errors.New("unknown variable")

// Bdd is a reduced ordered binary decision diagram owning its node arena.
// The two terminal nodes sit at the fixed indices 0 (False) and 1 (True);
// the root is the last appended node. Two degenerate shapes exist: an arena
// of length 1 is the constant false function and an arena of length 2 the
// constant true function.
//
// A diagram also owns a computed-result cache for merge operations. The
// cache is transparent: clearing it at any point affects performance only.
type Bdd struct {
	nodes []Node
	cache map[task]Pointer
}

// task identifies one apply sub-problem: a pointer into the left diagram
// paired with a pointer into the right one.
type task struct {
	left, right Pointer
}

// New returns a diagram holding only the two terminal slots, ready for
// nodes to be appended. Structurally this is the constant true function
// until a node is pushed.
func New() *Bdd {
	return &Bdd{nodes: terminalNodes()}
}

func newWithCapacity(capacity int) *Bdd {
	nodes := make([]Node, 0, capacity+2)
	return &Bdd{nodes: append(nodes, terminalNodes()...)}
}

// Constant returns the diagram of a constant boolean function: a one-node
// arena for false, a two-node arena for true.
func Constant(value bool) *Bdd {
	b := New()
	if !value {
		b.nodes = b.nodes[:1]
	}
	return b
}

// FromVar returns the diagram of the single positive variable v.
func FromVar(v Var) *Bdd {
	b := New()
	b.push(Node{Var: v, Low: False, High: True})
	return b
}

// FromNotVar returns the diagram of the single negated variable v.
func FromNotVar(v Var) *Bdd {
	b := New()
	b.push(Node{Var: v, Low: True, High: False})
	return b
}

// FromClause builds the diagram of a disjunction of literals, folding the
// single-literal diagrams with OR under the given ordering. A literal whose
// variable is missing from vars aborts with ErrUnknownVar.
func FromClause(c cnf.Clause, vars map[int]Var, ord *Ordering) (*Bdd, error) {
	if len(c) == 0 {
		return Constant(false), nil
	}
	lit := func(l cnf.Lit) (*Bdd, error) {
		v, ok := vars[l.Var()]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownVar, "literal %d", l)
		}
		if l.Pos() {
			return FromVar(v), nil
		}
		return FromNotVar(v), nil
	}
	res, err := lit(c[0])
	if err != nil {
		return nil, err
	}
	for _, l := range c[1:] {
		next, err := lit(l)
		if err != nil {
			return nil, err
		}
		res = res.Or(next, ord)
	}
	return res, nil
}

func (b *Bdd) push(n Node) Pointer {
	b.nodes = append(b.nodes, n)
	return Pointer(len(b.nodes) - 1)
}

// Size returns the number of nodes in the arena, terminals included.
func (b *Bdd) Size() int { return len(b.nodes) }

// IsFalse reports whether the diagram is exactly the constant false.
func (b *Bdd) IsFalse() bool { return len(b.nodes) == 1 }

// IsTrue reports whether the diagram is exactly the constant true.
func (b *Bdd) IsTrue() bool { return len(b.nodes) == 2 }

// Root returns the pointer to the root node: the last appended node, or the
// matching terminal for the two degenerate shapes.
func (b *Bdd) Root() Pointer {
	switch {
	case b.IsFalse():
		return False
	case b.IsTrue():
		return True
	}
	return Pointer(len(b.nodes) - 1)
}

// VarOf returns the variable of the node at p.
func (b *Bdd) VarOf(p Pointer) Var { return b.nodes[p].Var }

// Low returns the false-branch cofactor of the node at p.
func (b *Bdd) Low(p Pointer) Pointer { return b.nodes[p].Low }

// High returns the true-branch cofactor of the node at p.
func (b *Bdd) High(p Pointer) Pointer { return b.nodes[p].High }

// Negate returns the complement diagram. Constants are complemented in
// O(1) by returning the opposite constant; a structural pass would find no
// internal node to rewrite. Otherwise every reference to a terminal is
// flipped in a single O(n) sweep over the arena.
func (b *Bdd) Negate() *Bdd {
	if b.IsFalse() {
		return Constant(true)
	}
	if b.IsTrue() {
		return Constant(false)
	}
	res := &Bdd{nodes: make([]Node, len(b.nodes))}
	copy(res.nodes, b.nodes)
	for i := 2; i < len(res.nodes); i++ {
		res.nodes[i].Low = res.nodes[i].Low.flipTerminal()
		res.nodes[i].High = res.nodes[i].High.flipTerminal()
	}
	return res
}

// Eq reports node-set equality: the two arenas hold the same multiset of
// (variable, low, high) triples, independently of array order.
func (b *Bdd) Eq(other *Bdd) bool {
	if len(b.nodes) != len(other.nodes) {
		return false
	}
	count := make(map[nodeKey]int, len(b.nodes))
	for _, n := range b.nodes {
		count[n.key()]++
	}
	for _, n := range other.nodes {
		count[n.key()]--
		if count[n.key()] < 0 {
			return false
		}
	}
	return true
}

// RemoveNode drops the node at p, redirecting every reference to it to the
// replacement pointer and renumbering every pointer beyond p by -1. Used
// when collapsing degenerate structure. The renumbering walk makes removal
// quadratic in the worst case; a known cost, not a correctness issue.
func (b *Bdd) RemoveNode(p Pointer, replacement Pointer) {
	if p.IsTerminal() {
		return
	}
	b.nodes = append(b.nodes[:p], b.nodes[p+1:]...)
	renumber := func(q Pointer) Pointer {
		if q == p {
			q = replacement
		}
		if q > p {
			q--
		}
		return q
	}
	for i := range b.nodes {
		if i < 2 {
			continue
		}
		b.nodes[i].Low = renumber(b.nodes[i].Low)
		b.nodes[i].High = renumber(b.nodes[i].High)
	}
}
