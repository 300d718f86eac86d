// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

import "math"

// And returns the diagram of the conjunction of b and other under ord.
func (b *Bdd) And(other *Bdd, ord *Ordering) *Bdd {
	return b.Apply(other, OpAnd, ord)
}

// Or returns the diagram of the disjunction of b and other under ord.
func (b *Bdd) Or(other *Bdd, ord *Ordering) *Bdd {
	return b.Apply(other, OpOr, ord)
}

// Apply merges b and other with the binary operator op into one reduced
// diagram over the given ordering. The merge is iterative: recursion depth
// over the pair graph is unbounded for large instances, so sub-problems are
// kept on an explicit worklist. Each (left,right) pointer pair is solved at
// most once, which bounds the run by the product of the two arena sizes.
//
// Results are recorded in the computed cache owned by b. Cached entries
// describe the output arena of the current run, so the cache is reset when
// a new run starts; within one run it doubles as the finished-task table
// consulted before any decomposition.
func (b *Bdd) Apply(other *Bdd, op Op, ord *Ordering) *Bdd {
	out := newWithCapacity(max(b.Size(), other.Size()))

	// hash-consing table of the output arena, pre-seeded with the two
	// terminal triples so that terminal results intern to the fixed slots.
	cons := make(map[nodeKey]Pointer, max(b.Size(), other.Size()))
	for i, n := range out.nodes {
		cons[n.key()] = Pointer(i)
	}

	b.ClearCache()
	finished := b.cache

	stack := []task{{left: b.Root(), right: other.Root()}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		if _, done := finished[cur]; done {
			stack = stack[:len(stack)-1]
			continue
		}
		if res, ok := op.shortcut(cur.left, cur.right); ok {
			finished[cur] = res
			stack = stack[:len(stack)-1]
			continue
		}

		// The governing variable is the better-ranked of the two sides; that
		// side is decomposed into its cofactors while the other is held
		// fixed. Only the same variable on both sides decomposes both at
		// once; a rank tie between distinct variables, as happens when
		// neither is ranked, breaks by id so the merge stays correct and
		// deterministic.
		lvar := b.VarOf(cur.left)
		rvar := other.VarOf(cur.right)
		lrank, rrank := ord.Rank(lvar.ID), ord.Rank(rvar.ID)
		// a terminal never governs, even against an unranked variable
		if cur.left.IsTerminal() {
			lrank = math.MaxInt
		}
		if cur.right.IsTerminal() {
			rrank = math.MaxInt
		}
		decLeft := lrank < rrank || (lrank == rrank && lvar.ID <= rvar.ID)
		decRight := rrank < lrank || (lrank == rrank && rvar.ID <= lvar.ID)
		gov := lvar
		if !decLeft {
			gov = rvar
		}
		lLow, lHigh := cur.left, cur.left
		if decLeft {
			lLow, lHigh = b.Low(cur.left), b.High(cur.left)
		}
		rLow, rHigh := cur.right, cur.right
		if decRight {
			rLow, rHigh = other.Low(cur.right), other.High(cur.right)
		}

		subLow := task{left: lLow, right: rLow}
		subHigh := task{left: lHigh, right: rHigh}

		low, lowOK := op.shortcut(subLow.left, subLow.right)
		if !lowOK {
			low, lowOK = finished[subLow]
		}
		high, highOK := op.shortcut(subHigh.left, subHigh.right)
		if !highOK {
			high, highOK = finished[subHigh]
		}

		if !lowOK || !highOK {
			if !lowOK {
				stack = append(stack, subLow)
			}
			if !highOK {
				stack = append(stack, subHigh)
			}
			continue
		}

		var res Pointer
		if low == high {
			// the governing variable is redundant here; reuse the shared
			// cofactor so the output stays reduced
			res = low
		} else {
			k := nodeKey{id: gov.ID, low: low, high: high}
			if p, ok := cons[k]; ok {
				res = p
			} else {
				res = out.push(Node{Var: gov, Low: low, High: high})
				cons[k] = res
			}
		}
		finished[cur] = res
		stack = stack[:len(stack)-1]
	}

	if root := finished[task{left: b.Root(), right: other.Root()}]; root.IsTerminal() {
		return Constant(root.IsTrue())
	}
	return out
}

// ClearCache drops the computed-result cache. Correctness is unaffected.
func (b *Bdd) ClearCache() {
	b.cache = make(map[task]Pointer)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
