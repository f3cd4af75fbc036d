// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package problems

import (
	"log/slog"

	"github.com/dalzilio/jdd"
)

// KnownQueens lists the number of solutions of the N-queens problem, for N
// from 0 to 13.
var KnownQueens = []float64{1, 1, 0, 0, 2, 10, 4, 40, 92, 352, 724, 2680, 14200, 73712}

// Queens returns a BDD with NxN variables and a referenced node encoding the
// placements of N queens that do not attack each other. Variable i*N+j stands
// for a queen on the square at row i and column j, so that for N=4 the board
// is numbered like:
//
//	0  1  2  3
//	4  5  6  7
//	8  9 10 11
//	12 13 14 15
//
// The initial node table has N*N*256 slots, unless options set another size.
func Queens(log *slog.Logger, N int, options ...jdd.Option) (*jdd.BDD, jdd.Node, error) {
	log = orDiscard(log)
	b, err := jdd.New(N*N, append([]jdd.Option{jdd.Nodesize(N * N * 256)}, options...)...)
	if err != nil {
		return nil, jdd.Invalid, err
	}
	// conj adds n to the referenced conjunction acc
	conj := func(acc, n jdd.Node) jdd.Node {
		return b.UpdateWith(b.And(acc, n), acc)
	}
	// a queen in each row
	queen := b.True()
	for i := 0; i < N; i++ {
		row := b.False()
		for j := 0; j < N; j++ {
			row = b.UpdateWith(b.Or(row, b.Ithvar(i*N+j)), row)
		}
		queen = conj(queen, row)
		b.DelRef(row)
	}
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			log.Debug("adding constraints", "row", i, "column", j)
			cell := b.Ithvar(i*N + j)
			acc := b.True()
			for k := 0; k < N; k++ {
				// same row, same column and both diagonals
				if k != j {
					acc = conj(acc, b.Imp(cell, b.NIthvar(i*N+k)))
				}
				if k == i {
					continue
				}
				acc = conj(acc, b.Imp(cell, b.NIthvar(k*N+j)))
				if ll := k - i + j; ll >= 0 && ll < N {
					acc = conj(acc, b.Imp(cell, b.NIthvar(k*N+ll)))
				}
				if ll := i + j - k; ll >= 0 && ll < N {
					acc = conj(acc, b.Imp(cell, b.NIthvar(k*N+ll)))
				}
			}
			queen = conj(queen, acc)
			b.DelRef(acc)
		}
	}
	if b.Errored() {
		return nil, jdd.Invalid, b.Err()
	}
	return b, queen, nil
}
