// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"strconv"
	"time"

	"github.com/dalzilio/jdd/internal/problems"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func init() {
	rootCmd.AddCommand(newQueensCmd())
}

func newQueensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queens <N>",
		Short: "Count the solutions of the N-queens problem",
		Long: `The queens command builds a BDD with NxN variables, one for each square
of the chess board, encoding the placements of N queens that do not attack
each other, and prints the number of solutions.

Example:
  jddbench queens 8
  jddbench queens 10 --nodesize 1000000 -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return xerrors.Errorf("bad board size %q", args[0])
			}
			start := time.Now()
			b, queen, err := problems.Queens(logger, n, options()...)
			if err != nil {
				return err
			}
			res := result{
				Problem: "queens",
				Size:    n,
				Count:   b.Satcount(queen),
				Nodes:   b.NodeCount(queen),
				Elapsed: time.Since(start),
			}
			if n < len(problems.KnownQueens) {
				res.Expected = problems.KnownQueens[n]
			}
			return report(cmd.OutOrStdout(), b, res)
		},
	}
	return cmd
}
