// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package jdd_test

import (
	"testing"

	"github.com/dalzilio/jdd"
	"github.com/dalzilio/jdd/internal/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nqueens returns the number of solutions of the N-queens problem, after a
// consistency check of the node table.
func nqueens(N int, options ...jdd.Option) (float64, error) {
	bdd, queen, err := problems.Queens(nil, N, options...)
	if err != nil {
		return 0, err
	}
	if err := bdd.Check(); err != nil {
		return 0, err
	}
	return bdd.Satcount(queen), nil
}

func TestNQueens(t *testing.T) {
	var nqueensTests = []struct {
		N        int
		expected float64
	}{
		{1, 1},
		{2, 0},
		{3, 0},
		{4, 2},
		{5, 10},
		{6, 4},
		{8, 92},
		{9, 352},
	}
	for _, tt := range nqueensTests {
		if testing.Short() && tt.N > 8 {
			continue
		}
		actual, err := nqueens(tt.N)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, actual, "NQueens(%d)", tt.N)
		assert.Equal(t, problems.KnownQueens[tt.N], actual)
	}
}

func TestNQueensSmallTable(t *testing.T) {
	// a small table forces many collections and resizes during the
	// computation
	actual, err := nqueens(6, jdd.Nodesize(50), jdd.Mingrowth(50), jdd.Maxgrowth(100))
	require.NoError(t, err)
	assert.Equal(t, float64(4), actual)
}

func TestNQueensSolution(t *testing.T) {
	bdd, queen, err := problems.Queens(nil, 4)
	require.NoError(t, err)
	// queens on squares 1, 7, 8 and 14
	board := make([]bool, 16)
	for _, k := range []int{1, 7, 8, 14} {
		board[k] = true
	}
	assert.True(t, bdd.Evaluate(queen, board))
	board[14], board[13] = false, true
	assert.False(t, bdd.Evaluate(queen, board))
}

func BenchmarkNQueens(b *testing.B) {
	for n := 0; n < b.N; n++ {
		if _, err := nqueens(10); err != nil {
			b.Fatal(err)
		}
	}
}
