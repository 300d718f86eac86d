// Copyright (c) 2024 The bddkit authors
//
// MIT License

package order

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bddkit/bddkit/bdd"
	"github.com/bddkit/bddkit/cnf"
)

func instance(clauses ...cnf.Clause) *cnf.Instance {
	vars := make(map[int]cnf.Lit)
	for _, c := range clauses {
		for _, l := range c {
			vars[l.Var()] = cnf.Lit(l.Var())
		}
	}
	return &cnf.Instance{
		NumVars:    len(vars),
		NumClauses: len(clauses),
		VarMap:     vars,
		Clauses:    clauses,
	}
}

func TestScores(t *testing.T) {
	s := Scores([]cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(-2, 3),
		cnf.NewClause(2),
	})
	assert.InDelta(t, 0.5, s[1], 1e-9)
	assert.InDelta(t, 1.8, s[2], 1e-9)
	assert.InDelta(t, 0.5, s[3], 1e-9)
}

func TestNewRanksByScore(t *testing.T) {
	vo := New(instance(
		cnf.NewClause(1, 2),
		cnf.NewClause(-2, 3),
		cnf.NewClause(2),
	))

	// variable 2 scores highest; 1 and 3 tie and fall back to id order
	assert.Equal(t, 0, vo.Ord.Rank(2))
	assert.Equal(t, 1, vo.Ord.Rank(1))
	assert.Equal(t, 2, vo.Ord.Rank(3))
	assert.Equal(t, 2, vo.Vars[2].ID)
	assert.InDelta(t, 1.8, vo.Vars[2].Score, 1e-9)
}

func TestRerank(t *testing.T) {
	vo := New(instance(
		cnf.NewClause(1, 2),
		cnf.NewClause(-2, 3),
		cnf.NewClause(2),
	))
	// global ranks: 2 -> 0, 1 -> 1, 3 -> 2
	require.Equal(t, 0, vo.Ord.Rank(2))

	// restricted to this bucket, 2 and 3 tie and 1 trails; the bucket's
	// variables trade ranks among the slots {0, 1, 2} they already hold
	bk := Bucket{Pivot: 2, Clauses: []cnf.Clause{
		cnf.NewClause(2, 3),
		cnf.NewClause(-2, 3),
		cnf.NewClause(2, 3, 1),
	}}
	ord, moved := vo.rerank(bk)
	assert.True(t, moved)
	assert.Equal(t, 0, ord.Rank(2))
	assert.Equal(t, 1, ord.Rank(3))
	assert.Equal(t, 2, ord.Rank(1))
	assert.Greater(t, ord.Version(), vo.Ord.Version())
	assert.Equal(t, 1, vo.Ord.Rank(1), "rerank must not mutate the current ordering")
}

func TestRerankStable(t *testing.T) {
	vo := New(instance(
		cnf.NewClause(1, 2),
		cnf.NewClause(-2, 3),
		cnf.NewClause(2),
	))
	// bucket statistics agree with the global ranks, nothing moves
	bk := Bucket{Pivot: 2, Clauses: []cnf.Clause{
		cnf.NewClause(2, 1),
		cnf.NewClause(-2, 1),
		cnf.NewClause(2),
	}}
	ord, moved := vo.rerank(bk)
	assert.False(t, moved)
	assert.Equal(t, vo.Ord.Version(), ord.Version())
}

func TestPartition(t *testing.T) {
	ord := bdd.NewOrdering(map[int]int{1: 0, 2: 1, 3: 2})
	buckets := Partition([]cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(-2, 3),
		cnf.NewClause(3),
		cnf.NewClause(-1, 3),
	}, ord)

	require.Len(t, buckets, 3)
	assert.Equal(t, 1, buckets[0].Pivot)
	assert.Equal(t, []cnf.Clause{cnf.NewClause(1, 2), cnf.NewClause(-1, 3)}, buckets[0].Clauses)
	assert.Equal(t, 2, buckets[1].Pivot)
	assert.Equal(t, 3, buckets[2].Pivot)
}

func TestEliminate(t *testing.T) {
	b := Bucket{Pivot: 1, Clauses: []cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(-1, 3),
	}}
	got, err := b.Eliminate()
	require.NoError(t, err)
	assert.Equal(t, []cnf.Clause{cnf.NewClause(2, 3)}, got)
}

func TestEliminateNoPairs(t *testing.T) {
	b := Bucket{Pivot: 1, Clauses: []cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(1, 3),
	}}
	_, err := b.Eliminate()
	assert.True(t, errors.Is(err, ErrNoPairs))
}

func TestEliminateEmptyClause(t *testing.T) {
	b := Bucket{Pivot: 1, Clauses: []cnf.Clause{
		cnf.NewClause(1),
		cnf.NewClause(-1),
	}}
	_, err := b.Eliminate()
	assert.True(t, errors.Is(err, cnf.ErrEmptyClause))
}

func TestEliminateDropsTautologies(t *testing.T) {
	b := Bucket{Pivot: 1, Clauses: []cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(-1, -2),
	}}
	got, err := b.Eliminate()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEliminateDedupes(t *testing.T) {
	b := Bucket{Pivot: 1, Clauses: []cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(1, 2, 3),
		cnf.NewClause(-1, 2),
	}}
	got, err := b.Eliminate()
	require.NoError(t, err)
	assert.Equal(t, []cnf.Clause{cnf.NewClause(2), cnf.NewClause(2, 3)}, got)
}

func TestBucketVars(t *testing.T) {
	b := Bucket{Pivot: 1, Clauses: []cnf.Clause{
		cnf.NewClause(1, 4),
		cnf.NewClause(-1, 2),
	}}
	assert.Equal(t, []int{1, 2, 4}, b.Vars())
}

func TestFileResolvents(t *testing.T) {
	ord := bdd.NewOrdering(map[int]int{1: 0, 2: 1, 3: 2})
	queue := []Bucket{
		{Pivot: 2, Clauses: []cnf.Clause{cnf.NewClause(-2, 3)}},
	}
	queue = fileResolvents(queue, []cnf.Clause{
		cnf.NewClause(2, 3),  // joins the existing bucket
		cnf.NewClause(-2, 3), // duplicate of a queued clause, dropped
		cnf.NewClause(3),     // opens a lower bucket
		cnf.NewClause(1, 3),  // opens a bucket ahead of everything
	}, ord)

	require.Len(t, queue, 3)
	assert.Equal(t, 1, queue[0].Pivot)
	assert.Equal(t, 2, queue[1].Pivot)
	assert.Equal(t, []cnf.Clause{cnf.NewClause(-2, 3), cnf.NewClause(2, 3)}, queue[1].Clauses)
	assert.Equal(t, 3, queue[2].Pivot)
}
