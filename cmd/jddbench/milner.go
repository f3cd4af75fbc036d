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

var milnerSlow bool

func init() {
	cmd := newMilnerCmd()
	cmd.Flags().BoolVar(&milnerSlow, "slow", false, "Compute images with Exist over a conjunction instead of AndExist")
	rootCmd.AddCommand(cmd)
}

func newMilnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milner <N>",
		Short: "Compute the reachable states of Milner's scheduler",
		Long: `The milner command computes the reachable states of a system of N
cyclers, as in Milner's scheduler, using a monolithic transition relation.
The number of reachable states, over the 6N variables of the system, is
N*2^(4N+1).

Example:
  jddbench milner 50
  jddbench milner 11 --slow --nodesize 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 2 {
				return xerrors.Errorf("bad number of cyclers %q", args[0])
			}
			start := time.Now()
			b, states, err := problems.Milner(logger, n, !milnerSlow, options()...)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), b, result{
				Problem:  "milner",
				Size:     n,
				Count:    b.Satcount(states),
				Nodes:    b.NodeCount(states),
				Elapsed:  time.Since(start),
				Expected: problems.MilnerStates(n),
			})
		},
	}
	return cmd
}
