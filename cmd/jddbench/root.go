// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dalzilio/jdd"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	jsonOut     bool
	nodesize    int
	maxnodesize int
	configFile  string

	// engine holds the options read from the configuration file, if any
	engine = &engineConfig{}

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "jddbench",
	Short: "Run benchmarks on Binary Decision Diagrams",
	Long: `jddbench builds classic BDD problems with the jdd package and reports
the result of the computation together with statistics on the node table and
the operation caches.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		engine = &engineConfig{}
		if configFile == "" {
			return nil
		}
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", "file", configFile)
		engine = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print statistics on the BDD")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().IntVar(&nodesize, "nodesize", 0, "Initial size of the node table (0 for the default)")
	rootCmd.PersistentFlags().IntVar(&maxnodesize, "maxnodesize", 0, "Maximal size of the node table (0 for no limit)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML file with the options of the BDD")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options returns the configuration of the BDD built from the configuration
// file and the global flags, the latter taking precedence.
func options() []jdd.Option {
	res := engine.options()
	if nodesize > 0 {
		res = append(res, jdd.Nodesize(nodesize))
	}
	if maxnodesize > 0 {
		res = append(res, jdd.Maxnodesize(maxnodesize))
	}
	return res
}

// result is the outcome of a benchmark.
type result struct {
	Problem  string        `json:"problem"`
	Size     int           `json:"size"`
	Count    float64       `json:"count"`
	Nodes    int           `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
	Expected float64       `json:"expected,omitempty"`
}

// report prints the result of a benchmark on w and, in verbose mode, the
// statistics of the BDD.
func report(w io.Writer, b *jdd.BDD, res result) error {
	if verbose {
		logger.Debug("bdd statistics\n" + b.Stats())
	}
	if res.Expected != 0 && res.Expected != res.Count {
		logger.Warn("unexpected result", "problem", res.Problem, "expected", res.Expected, "actual", res.Count)
	}
	if jsonOut {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res)
	}
	_, err := fmt.Fprintf(w, "%s(%d): %.0f solutions, %d nodes, %s\n", res.Problem, res.Size, res.Count, res.Nodes, res.Elapsed)
	return err
}
