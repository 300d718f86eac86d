// Copyright (c) 2024 The bddkit authors
//
// MIT License

// Command bddkit reads a DIMACS CNF formula, folds it into a decision
// diagram and prints the learned clauses mined along the way, one
// 0-terminated clause per line. A satisfying assignment or an
// unsatisfiability verdict is printed when the fold settles the instance.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bddkit/bddkit/bdd"
	"github.com/bddkit/bddkit/cnf"
	"github.com/bddkit/bddkit/order"
	"github.com/bddkit/bddkit/share"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bddkit:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		maxNodes  int
		propagate bool
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:           "bddkit FILE.cnf",
		Short:         "mine learned clauses from a CNF formula with decision diagrams",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return run(cmd, args[0], order.Config{MaxNodes: maxNodes, Propagate: propagate})
		},
	}
	cmd.Flags().IntVar(&maxNodes, "max-nodes", order.DefaultMaxNodes,
		"node budget before the ordering is resifted")
	cmd.Flags().BoolVar(&propagate, "propagate", false,
		"run unit propagation before bucketing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func run(cmd *cobra.Command, path string, cfg order.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer f.Close()

	ins, err := cnf.Parse(f)
	if err != nil {
		return err
	}

	vo := order.New(ins)
	rec := &share.Recorder{}
	mgr := share.NewManager(rec, share.Config{})

	diagram, err := vo.Build(mgr, cfg)
	unsat := errors.Is(err, bdd.ErrUnsat)
	if err != nil && !unsat {
		return err
	}

	out := cmd.OutOrStdout()
	learned := rec.Clauses()
	fmt.Fprintf(out, "c %d learned clauses\n", len(learned))
	for _, c := range learned {
		fmt.Fprintln(out, joinInts(share.Wire(c)))
	}

	if unsat {
		fmt.Fprintln(out, "s UNSATISFIABLE")
		return nil
	}
	assign, err := diagram.Solve()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "s SATISFIABLE")
	fmt.Fprintln(out, "v "+joinInts(modelLits(assign)))
	return nil
}

// modelLits renders an assignment as sorted DIMACS literals with the 0
// terminator. Don't-care variables are omitted.
func modelLits(assign map[int]bool) []int {
	vars := make([]int, 0, len(assign))
	for v := range assign {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	lits := make([]int, 0, len(vars)+1)
	for _, v := range vars {
		if assign[v] {
			lits = append(lits, v)
		} else {
			lits = append(lits, -v)
		}
	}
	return append(lits, 0)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
