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
	"github.com/bddkit/bddkit/share"
)

func TestBuildSatisfiable(t *testing.T) {
	clauses := []cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(-2, 3),
	}
	vo := New(instance(clauses...))
	rec := &share.Recorder{}
	mgr := share.NewManager(rec, share.Config{})

	diagram, err := vo.Build(mgr, Config{})
	require.NoError(t, err)
	require.False(t, diagram.IsFalse())

	assign, err := diagram.Solve()
	require.NoError(t, err)
	for _, c := range clauses {
		sat := false
		for _, l := range c {
			if assign[l.Var()] == l.Pos() {
				sat = true
			}
		}
		assert.True(t, sat, "clause %v unsatisfied by %v", c, assign)
	}

	// every falsifying path is shared exactly once across the rounds
	assert.Equal(t, [][]int{{-2, -1}, {2, -3}}, rec.Clauses())
}

func TestBuildThreeClauseConflicts(t *testing.T) {
	clauses := []cnf.Clause{
		cnf.NewClause(1, 2, 3),
		cnf.NewClause(-1, 2, 3),
		cnf.NewClause(-1),
	}
	vo := New(instance(clauses...))
	// clause statistics rank variable 1 ahead of 2 and 3
	require.Equal(t, 0, vo.Ord.Rank(1))

	rec := &share.Recorder{}
	diagram, err := vo.Build(share.NewManager(rec, share.Config{}), Config{})
	require.NoError(t, err)

	// every terminal-0 edge of the fold surfaces exactly once: the full
	// chain from the first clause diagram, the shortened chain once the
	// resolvent collapses variable 1 away, and the unit from the final fold
	assert.Equal(t, [][]int{{-1, -2, -3}, {-2, -3}, {1}}, rec.Clauses())

	assign, err := diagram.Solve()
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: false, 2: false, 3: true}, assign)
}

func TestBuildUnsatisfiable(t *testing.T) {
	vo := New(instance(cnf.NewClause(1), cnf.NewClause(-1)))
	rec := &share.Recorder{}
	mgr := share.NewManager(rec, share.Config{})

	diagram, err := vo.Build(mgr, Config{})
	assert.True(t, errors.Is(err, bdd.ErrUnsat))
	assert.True(t, diagram.IsFalse())
	assert.Equal(t, [][]int{{-1}}, rec.Clauses())
}

func TestBuildPropagateUnsatisfiable(t *testing.T) {
	vo := New(instance(cnf.NewClause(1), cnf.NewClause(-1)))
	mgr := share.NewManager(&share.Recorder{}, share.Config{})

	diagram, err := vo.Build(mgr, Config{Propagate: true})
	assert.True(t, errors.Is(err, bdd.ErrUnsat))
	assert.True(t, diagram.IsFalse())
}

func TestBuildEmptyInstance(t *testing.T) {
	vo := New(instance())
	mgr := share.NewManager(&share.Recorder{}, share.Config{})

	diagram, err := vo.Build(mgr, Config{})
	require.NoError(t, err)
	assert.True(t, diagram.IsTrue())
}

func TestBuildTinyBudgetStaysCorrect(t *testing.T) {
	clauses := []cnf.Clause{
		cnf.NewClause(1, 2),
		cnf.NewClause(-1, 3),
		cnf.NewClause(-2, -3),
		cnf.NewClause(2, 3),
	}
	vo := New(instance(clauses...))
	mgr := share.NewManager(&share.Recorder{}, share.Config{})

	// a budget of 3 forces a sift attempt after nearly every fold
	diagram, err := vo.Build(mgr, Config{MaxNodes: 3})
	require.NoError(t, err)

	assign, err := diagram.Solve()
	require.NoError(t, err)
	for _, c := range clauses {
		sat := false
		for _, l := range c {
			if assign[l.Var()] == l.Pos() {
				sat = true
			}
		}
		assert.True(t, sat, "clause %v unsatisfied by %v", c, assign)
	}
}
