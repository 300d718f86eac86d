// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

import "sort"

// NECScore evaluates a candidate ordering against the diagram: every node
// contributes its variable's rank weighted by the number of nodes first
// reached through it. The shared visited set across roots counts each node
// once, so shared sub-graphs are not double counted. Lower is better.
func (b *Bdd) NECScore(ord *Ordering) float64 {
	visited := make(map[Pointer]bool, len(b.nodes))
	score := 0.0
	for i := range b.nodes {
		p := Pointer(i)
		edges := b.countEdges(p, visited)
		if rank, ok := ord.known(b.nodes[i].Var.ID); ok {
			score += float64(rank) * float64(edges)
		}
	}
	return score
}

func (b *Bdd) countEdges(p Pointer, visited map[Pointer]bool) int {
	if visited[p] {
		return 0
	}
	visited[p] = true
	if p.IsTerminal() {
		return 1
	}
	return 1 + b.countEdges(b.Low(p), visited) + b.countEdges(b.High(p), visited)
}

// Sift performs pairwise sifting over the given variable ids: every swap of
// two ranks is evaluated with NECScore and a strictly improving swap is
// committed at once, rewriting the diagram in place to match the new
// ordering. Sift returns the ordering version in effect afterwards and
// whether any swap was committed.
func (b *Bdd) Sift(ord *Ordering, vars []int) (*Ordering, bool) {
	current := b.NECScore(ord)
	changed := false
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			trial := ord.Swap(vars[i], vars[j])
			if score := b.NECScore(trial); score < current {
				current = score
				ord = trial
				b.PartialReorder(ord)
				changed = true
			}
		}
	}
	return ord, changed
}

// PartialReorder rewrites the arena so node order matches the given
// ordering: internal nodes are re-sorted by rank, leaf-most first so the
// root stays the last node, and every pointer field is remapped to the new
// positions in the same pass. The rewrite is the only operation allowed to
// mutate a diagram after construction; remapping all pointers together is
// what keeps the diagram consistent. The represented function is unchanged.
func (b *Bdd) PartialReorder(ord *Ordering) {
	if b.Size() <= 2 {
		return
	}
	b.ClearCache()

	type placed struct {
		old  Pointer
		node Node
	}
	root := b.Root()
	internal := make([]placed, 0, len(b.nodes)-2)
	for i := 2; i < len(b.nodes); i++ {
		internal = append(internal, placed{old: Pointer(i), node: b.nodes[i]})
	}
	// leaf-most ranks first; the root is pinned to the last slot because the
	// arena's root is, by definition, its last node
	sort.SliceStable(internal, func(i, j int) bool {
		if internal[i].old == root {
			return false
		}
		if internal[j].old == root {
			return true
		}
		return ord.Rank(internal[i].node.Var.ID) > ord.Rank(internal[j].node.Var.ID)
	})

	remap := make(map[Pointer]Pointer, len(b.nodes))
	remap[False] = False
	remap[True] = True
	for i, pl := range internal {
		remap[pl.old] = Pointer(i + 2)
	}
	next := terminalNodes()
	for _, pl := range internal {
		next = append(next, Node{
			Var:  pl.node.Var,
			Low:  remap[pl.node.Low],
			High: remap[pl.node.High],
		})
	}
	b.nodes = next
}
