// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dalzilio/jdd"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

var (
	randomVars int
	randomOps  int
	randomSeed int64
	randomRuns int
	randomJobs int
)

func init() {
	cmd := newRandomCmd()
	cmd.Flags().IntVar(&randomVars, "vars", 20, "Number of variables")
	cmd.Flags().IntVar(&randomOps, "ops", 10000, "Number of operations in each run")
	cmd.Flags().Int64Var(&randomSeed, "seed", 1, "Seed of the first run")
	cmd.Flags().IntVar(&randomRuns, "runs", 1, "Number of runs, each one with its own BDD and seed")
	cmd.Flags().IntVarP(&randomJobs, "jobs", "j", 4, "Number of runs executed concurrently")
	rootCmd.AddCommand(cmd)
}

func newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Stress test the BDD with random operations",
		Long: `The random command applies random operations on a pool of BDDs and
checks the consistency of the node table, and some algebraic laws, along the
way. Runs are independent and use distinct BDDs, so they can be executed
concurrently.

Example:
  jddbench random --vars 30 --ops 100000
  jddbench random --runs 16 --jobs 8 --nodesize 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if randomVars < 1 || randomOps < 0 || randomRuns < 1 || randomJobs < 1 {
				return xerrors.New("bad parameters for random runs")
			}
			start := time.Now()
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(randomJobs)
			for k := 0; k < randomRuns; k++ {
				seed := randomSeed + int64(k)
				g.Go(func() error {
					return randomRun(ctx, seed)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "random: %d runs of %d operations on %d variables, %s\n",
				randomRuns, randomOps, randomVars, time.Since(start))
			return err
		},
	}
	return cmd
}

// randomRun applies randomOps random operations on a pool of referenced
// nodes.
func randomRun(ctx context.Context, seed int64) error {
	rnd := rand.New(rand.NewSource(seed))
	b, err := jdd.New(randomVars, options()...)
	if err != nil {
		return err
	}
	full := math.Ldexp(1, randomVars)
	pool := []jdd.Node{b.True(), b.False()}
	for k := 0; k < randomVars; k++ {
		pool = append(pool, b.Ithvar(k))
	}
	base := len(pool)
	pick := func() jdd.Node { return pool[rnd.Intn(len(pool))] }
	for op := 0; op < randomOps; op++ {
		if op%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		var res jdd.Node
		switch rnd.Intn(9) {
		case 0:
			res = b.And(pick(), pick())
		case 1:
			res = b.Or(pick(), pick())
		case 2:
			res = b.Xor(pick(), pick())
		case 3:
			res = b.Imp(pick(), pick())
		case 4:
			res = b.Not(pick())
		case 5:
			res = b.Ite(pick(), pick(), pick())
		case 6:
			res = b.Exist(pick(), b.Makeset([]int{rnd.Intn(randomVars), rnd.Intn(randomVars)}))
		case 7:
			if randomVars < 4 {
				continue
			}
			perm := rnd.Perm(randomVars)
			replacer, err := b.NewReplacer(perm[:2], perm[2:4])
			if err != nil {
				return err
			}
			res = b.Compose(pick(), replacer)
		default:
			res = b.Restrict(pick(), []int{rnd.Intn(randomVars)}, []bool{rnd.Intn(2) == 0})
		}
		if res == jdd.Invalid {
			return xerrors.Errorf("seed %d, operation %d: %w", seed, op, b.Err())
		}
		pool = append(pool, b.AddRef(res))
		if sum := b.Satcount(res) + b.Satcount(b.Not(res)); sum != full {
			return xerrors.Errorf("seed %d, operation %d: wrong satcount for node %d and its negation (%g)", seed, op, res, sum)
		}
		if len(pool) > base+64 {
			k := base + rnd.Intn(len(pool)-base)
			b.DelRef(pool[k])
			pool[k] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		}
		if op%500 == 499 {
			free := b.GC()
			if err := b.Check(); err != nil {
				return xerrors.Errorf("seed %d, operation %d: %w", seed, op, err)
			}
			logger.Debug("collection", "seed", seed, "operation", op, "free", free)
		}
	}
	if verbose {
		logger.Debug(fmt.Sprintf("statistics for seed %d\n%s", seed, b.Stats()))
	}
	return nil
}
