// Copyright (c) 2024 The bddkit authors
//
// MIT License

package order

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bddkit/bddkit/bdd"
	"github.com/bddkit/bddkit/cnf"
	"github.com/bddkit/bddkit/share"
)

// DefaultMaxNodes is the node budget a bucket fold may reach before the
// driver resifts the ordering and re-partitions the remaining clauses.
const DefaultMaxNodes = 1 << 14

// Config tunes the construction driver.
type Config struct {
	// MaxNodes is the diagram size that triggers a resift; 0 selects
	// DefaultMaxNodes.
	MaxNodes int
	// Propagate runs unit propagation over the clause list before
	// bucketing.
	Propagate bool
}

func (cfg Config) withDefaults() Config {
	if cfg.MaxNodes == 0 {
		cfg.MaxNodes = DefaultMaxNodes
	}
	return cfg
}

// Build folds the instance into one diagram bucket by bucket, mining every
// intermediate diagram for learned clauses and handing them to mgr. Each
// bucket is eliminated first, its resolvents filed into the lower buckets
// still in the queue; the bucket's own clauses are then folded with AND.
// While clause n is turned into a diagram, the previous fold result is
// mined concurrently; the two branches join before the next conjunction.
//
// A fold that collapses to the constant false proves the instance
// unsatisfiable and Build stops with bdd.ErrUnsat. A fold that outgrows
// cfg.MaxNodes re-ranks the bucket's variables from statistics restricted
// to the bucket and then sifts; when the ordering changes, the unfolded
// remainder of the bucket is re-partitioned under the new ordering.
func (vo *VarOrdering) Build(mgr *share.Manager, cfg Config) (*bdd.Bdd, error) {
	cfg = cfg.withDefaults()
	log := logrus.WithField("pkg", "order")

	clauses := vo.Clauses
	if cfg.Propagate {
		simplified, err := cnf.Propagate(clauses)
		if err != nil {
			// unit propagation over the full clause list is sound, so an
			// empty clause here is a proof
			return bdd.Constant(false), errors.Wrap(bdd.ErrUnsat, err.Error())
		}
		log.WithFields(logrus.Fields{"before": len(clauses), "after": len(simplified)}).
			Debug("unit propagation")
		clauses = simplified
	}

	queue := Partition(clauses, vo.Ord)
	var cur *bdd.Bdd

	for len(queue) > 0 {
		bk := queue[0]
		queue = queue[1:]

		resolvents, err := bk.Eliminate()
		switch {
		case errors.Is(err, ErrNoPairs):
			// single-polarity pivot, nothing to resolve
		case errors.Is(err, cnf.ErrEmptyClause):
			// an empty resolvent witnesses a falsifiable sub-formula; the
			// fold decides whether the whole instance is
			log.WithField("pivot", bk.Pivot).Debug("empty resolvent, resolvents discarded")
		case err != nil:
			return nil, err
		default:
			queue = fileResolvents(queue, resolvents, vo.Ord)
		}

		for i, c := range bk.Clauses {
			next, err := vo.foldStep(mgr, cur, c)
			if err != nil {
				return nil, err
			}
			cur = next
			if cur.IsFalse() {
				return cur, errors.Wrap(bdd.ErrUnsat, "fold collapsed to false")
			}
			if cur.Size() > cfg.MaxNodes {
				// re-rank from statistics restricted to the bucket, then let
				// sifting refine the result
				changed := false
				if next, moved := vo.rerank(bk); moved {
					cur.PartialReorder(next)
					vo.Ord = next
					changed = true
				}
				sifted, improved := cur.Sift(vo.Ord, bk.Vars())
				vo.Ord = sifted
				changed = changed || improved
				log.WithFields(logrus.Fields{
					"pivot":   bk.Pivot,
					"size":    cur.Size(),
					"changed": changed,
					"version": vo.Ord.Version(),
				}).Debug("node budget exceeded")
				if changed && i+1 < len(bk.Clauses) {
					queue = append(Partition(bk.Clauses[i+1:], vo.Ord), queue...)
					break
				}
			}
		}
	}

	if cur == nil {
		return bdd.Constant(true), nil
	}
	mgr.Share(cur.LearnedClauses())
	return cur, nil
}

// foldStep conjoins one clause into the running diagram. The clause diagram
// is built on one branch while the previous result, which is immutable from
// the miner's point of view, is mined and shared on the other.
func (vo *VarOrdering) foldStep(mgr *share.Manager, prev *bdd.Bdd, c cnf.Clause) (*bdd.Bdd, error) {
	ord := vo.Ord
	var next *bdd.Bdd

	var g errgroup.Group
	g.Go(func() error {
		b, err := bdd.FromClause(c, vo.Vars, ord)
		if err != nil {
			return err
		}
		next = b
		return nil
	})
	g.Go(func() error {
		if prev != nil {
			mgr.Share(prev.LearnedClauses())
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if prev == nil {
		return next, nil
	}
	return prev.And(next, ord), nil
}

// fileResolvents places every resolvent into the queued bucket matching its
// pivot, creating rank-ordered buckets for pivots not yet queued. Duplicates
// already present in the target bucket are dropped.
func fileResolvents(queue []Bucket, resolvents []cnf.Clause, ord *bdd.Ordering) []Bucket {
	for _, c := range resolvents {
		p := pivotOf(c, ord)
		placed := false
		for i := range queue {
			if queue[i].Pivot == p {
				if !containsClause(queue[i].Clauses, c) {
					queue[i].Clauses = append(queue[i].Clauses, c)
				}
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		at := len(queue)
		for i := range queue {
			if ord.Rank(p) < ord.Rank(queue[i].Pivot) {
				at = i
				break
			}
		}
		queue = append(queue, Bucket{})
		copy(queue[at+1:], queue[at:])
		queue[at] = Bucket{Pivot: p, Clauses: []cnf.Clause{c}}
	}
	return queue
}
