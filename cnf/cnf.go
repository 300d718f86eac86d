// Copyright (c) 2024 The bddkit authors
//
// MIT License

// Package cnf holds the clause-level model of a CNF instance: literals in
// the DIMACS signed-integer convention, clauses as sorted literal sets, and
// the parsed instance shape consumed by the ordering and construction
// layers.
package cnf

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrEmptyClause is reported when a simplification or resolution step
// produces the empty clause. It witnesses a falsifiable sub-formula; callers
// decide whether the evidence is global.
var ErrEmptyClause = errors.New("empty clause generated")

// Lit is a literal in the DIMACS convention: a non-zero signed integer whose
// absolute value is the variable id and whose sign is the polarity.
type Lit int

// Var returns the variable id of the literal.
func (l Lit) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Pos reports whether the literal is positive.
func (l Lit) Pos() bool { return l > 0 }

// Neg returns the opposite literal.
func (l Lit) Neg() Lit { return -l }

// Clause is a set of literals, kept sorted by variable id (positive literal
// first on ties) so that equal clauses compare equal element-wise.
type Clause []Lit

// NewClause builds a normalized clause from raw DIMACS literals. Duplicate
// literals are dropped.
func NewClause(lits ...int) Clause {
	c := make(Clause, 0, len(lits))
	for _, l := range lits {
		c = append(c, Lit(l))
	}
	return c.normalize()
}

func (c Clause) normalize() Clause {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Var() != c[j].Var() {
			return c[i].Var() < c[j].Var()
		}
		return c[i] > c[j]
	})
	res := c[:0]
	for i, l := range c {
		if i == 0 || c[i-1] != l {
			res = append(res, l)
		}
	}
	return res
}

// Contains reports whether the clause contains the exact literal l.
func (c Clause) Contains(l Lit) bool {
	for _, m := range c {
		if m == l {
			return true
		}
	}
	return false
}

// ContainsVar reports whether the clause mentions the variable v with either
// polarity.
func (c Clause) ContainsVar(v int) bool {
	for _, m := range c {
		if m.Var() == v {
			return true
		}
	}
	return false
}

// Unit reports whether the clause has exactly one literal.
func (c Clause) Unit() bool { return len(c) == 1 }

// Equal reports element-wise equality between two normalized clauses.
func (c Clause) Equal(other Clause) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Resolve computes the propositional resolvent of c and other on the pivot
// variable: the union of both clauses minus the pivot in either polarity. The
// caller is responsible for choosing a pivot that occurs positively in one
// clause and negatively in the other. Resolve returns ErrEmptyClause when
// nothing is left.
func (c Clause) Resolve(other Clause, pivot int) (Clause, error) {
	res := make(Clause, 0, len(c)+len(other))
	for _, l := range c {
		if l.Var() != pivot {
			res = append(res, l)
		}
	}
	for _, l := range other {
		if l.Var() != pivot && !res.Contains(l) {
			res = append(res, l)
		}
	}
	if len(res) == 0 {
		return nil, ErrEmptyClause
	}
	return res.normalize(), nil
}

// Instance is the parsed shape of a DIMACS CNF problem: the declared counts,
// a table from variable id to its positive literal, the per-variable
// ordering scores, and the clause list in input order.
type Instance struct {
	NumVars    int
	NumClauses int
	VarMap     map[int]Lit
	Scores     map[int]float64
	Clauses    []Clause
}

// Vars returns the variable ids of the instance in increasing order.
func (ins *Instance) Vars() []int {
	vars := make([]int, 0, len(ins.VarMap))
	for v := range ins.VarMap {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

// Propagate applies unit propagation to the clause list: for every unit
// clause {l}, clauses containing l are dropped and the literal ¬l is removed
// from the remaining clauses. The process runs to a fixpoint since removing
// ¬l can expose new unit clauses. Propagate returns ErrEmptyClause if some
// clause loses all its literals, which witnesses unsatisfiability of the
// simplified set.
func Propagate(clauses []Clause) ([]Clause, error) {
	work := make([]Clause, len(clauses))
	copy(work, clauses)
	seen := make(map[Lit]bool)
	for {
		var unit Lit
		found := false
		for _, c := range work {
			if c.Unit() && !seen[c[0]] {
				unit, found = c[0], true
				break
			}
		}
		if !found {
			return work, nil
		}
		seen[unit] = true
		next := work[:0]
		for _, c := range work {
			switch {
			case c.Unit() && c[0] == unit:
				next = append(next, c)
			case c.Contains(unit):
				// satisfied, drop it
			case c.Contains(unit.Neg()):
				reduced := make(Clause, 0, len(c)-1)
				for _, l := range c {
					if l != unit.Neg() {
						reduced = append(reduced, l)
					}
				}
				if len(reduced) == 0 {
					return nil, errors.Wrapf(ErrEmptyClause, "propagating unit %d", unit)
				}
				next = append(next, reduced)
			default:
				next = append(next, c)
			}
		}
		work = next
	}
}
