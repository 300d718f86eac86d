// Copyright (c) 2024 The bddkit authors
//
// MIT License

/*
Package bdd implements reduced ordered Binary Decision Diagrams tailored to
clause learning: diagrams are built from CNF clauses, merged with an
iterative apply engine, and mined for the root-to-false paths that a CDCL
solver can consume as learned clauses.

# Basics

A diagram owns an append-only arena of nodes addressed by Pointer values.
The two constant functions sit at fixed addresses, 0 for False and 1 for
True, and the root of a diagram is always its last node. Two degenerate
arena shapes represent the constants themselves: a single node is the
constant false function, two nodes the constant true.

Variables are external identifiers paired with an ordering score; the
position of a variable in a diagram is decided by an Ordering, a versioned
value mapping identifiers to ranks. Rank 0 sits nearest the root. Orderings
are never mutated in place, so concurrent readers keep a coherent view
while sifting derives improved versions.

# Construction and mining

Diagrams for single clauses come from FromClause; larger functions are
folded with And and Or, both built on Apply. Apply keeps its pending work
on an explicit stack rather than in call frames, which makes the depth of
the merge independent of the Go stack.

LearnedClauses enumerates every path from the root to the False terminal
and renders each as a DIMACS clause, the raw material of the sharing layer.
Solve extracts one satisfying assignment, and Sift with PartialReorder
improves the ordering of a diagram that has grown past its budget.
*/
package bdd
