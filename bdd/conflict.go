// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

// Step is one edge of a root-to-conflict path: the node the decision is
// taken at and the branch that was followed (High true for the high
// branch).
type Step struct {
	High bool
	Ptr  Pointer
}

// conflictEdges lists every internal node with a direct edge to the False
// terminal, once per offending branch.
func (b *Bdd) conflictEdges() []Step {
	var edges []Step
	for i := 2; i < len(b.nodes); i++ {
		p := Pointer(i)
		if b.Low(p) == False {
			edges = append(edges, Step{High: false, Ptr: p})
		}
		if b.High(p) == False {
			edges = append(edges, Step{High: true, Ptr: p})
		}
	}
	return edges
}

// parentIndex builds a transient child-to-parents table so the upward walk
// does not rescan the arena at every step. The index lives only for one
// extraction.
func (b *Bdd) parentIndex() map[Pointer][]Step {
	parents := make(map[Pointer][]Step, len(b.nodes))
	for i := 2; i < len(b.nodes); i++ {
		p := Pointer(i)
		if low := b.Low(p); !low.IsTerminal() {
			parents[low] = append(parents[low], Step{High: false, Ptr: p})
		}
		if high := b.High(p); !high.IsTerminal() {
			parents[high] = append(parents[high], Step{High: true, Ptr: p})
		}
	}
	return parents
}

// ConflictPaths enumerates every path from the root to the False terminal.
// Each path is returned root-first; a walk that dead-ends before reaching
// the root is discarded.
func (b *Bdd) ConflictPaths() [][]Step {
	if b.Size() <= 2 {
		return nil
	}
	parents := b.parentIndex()
	root := b.Root()
	var paths [][]Step

	var walk func(cur Pointer, path []Step)
	walk = func(cur Pointer, path []Step) {
		if cur == root {
			complete := make([]Step, len(path))
			for i, s := range path {
				complete[len(path)-1-i] = s
			}
			paths = append(paths, complete)
			return
		}
		for _, up := range parents[cur] {
			walk(up.Ptr, append(path, up))
		}
	}
	for _, edge := range b.conflictEdges() {
		walk(edge.Ptr, []Step{edge})
	}
	return paths
}

// LearnedClauses turns every conflict path into a clause in the DIMACS
// literal convention: a low step contributes the negated variable, a high
// step the variable itself. Clauses may repeat across paths; deduplication
// is the sharing layer's concern.
func (b *Bdd) LearnedClauses() [][]int {
	paths := b.ConflictPaths()
	clauses := make([][]int, 0, len(paths))
	for _, path := range paths {
		clause := make([]int, 0, len(path))
		for _, s := range path {
			v := b.VarOf(s.Ptr).ID
			if s.High {
				clause = append(clause, v)
			} else {
				clause = append(clause, -v)
			}
		}
		clauses = append(clauses, clause)
	}
	return clauses
}
