// Copyright (c) 2024 The bddkit authors
//
// MIT License

package cnf

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClauseNormalizes(t *testing.T) {
	assert.Equal(t, Clause{-1, 2, 3}, NewClause(3, -1, 2, 3))
	assert.Equal(t, Clause{2, -2}, NewClause(-2, 2), "positive literal first on a variable tie")
	assert.Equal(t, Clause{5}, NewClause(5, 5, 5))
}

func TestLit(t *testing.T) {
	assert.Equal(t, 4, Lit(-4).Var())
	assert.Equal(t, 4, Lit(4).Var())
	assert.True(t, Lit(4).Pos())
	assert.False(t, Lit(-4).Pos())
	assert.Equal(t, Lit(4), Lit(-4).Neg())
}

func TestClausePredicates(t *testing.T) {
	c := NewClause(1, -2, 3)
	assert.True(t, c.Contains(-2))
	assert.False(t, c.Contains(2))
	assert.True(t, c.ContainsVar(2))
	assert.False(t, c.ContainsVar(4))
	assert.False(t, c.Unit())
	assert.True(t, NewClause(7).Unit())
	assert.True(t, c.Equal(NewClause(3, 1, -2)))
	assert.False(t, c.Equal(NewClause(1, 2, 3)))
}

func TestResolve(t *testing.T) {
	r, err := NewClause(1, 2).Resolve(NewClause(-2, 3), 2)
	require.NoError(t, err)
	assert.Equal(t, NewClause(1, 3), r)

	// shared literals appear once in the resolvent
	r, err = NewClause(1, 2).Resolve(NewClause(-2, 1), 2)
	require.NoError(t, err)
	assert.Equal(t, NewClause(1), r)

	_, err = NewClause(1).Resolve(NewClause(-1), 1)
	assert.True(t, errors.Is(err, ErrEmptyClause))
}

func TestPropagate(t *testing.T) {
	got, err := Propagate([]Clause{
		NewClause(1),
		NewClause(-1, 2),
		NewClause(-2, 3),
		NewClause(1, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, []Clause{NewClause(1), NewClause(2), NewClause(3)}, got)
}

func TestPropagateNoUnits(t *testing.T) {
	in := []Clause{NewClause(1, 2), NewClause(-1, 3)}
	got, err := Propagate(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestPropagateConflict(t *testing.T) {
	_, err := Propagate([]Clause{NewClause(1), NewClause(-1)})
	assert.True(t, errors.Is(err, ErrEmptyClause))
}
