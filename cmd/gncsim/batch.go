package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/gncsim/internal/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func runBatch(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sess, err := newSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, sess.close(context.Background())) }()
	cfg := sess.cfg

	build := func(seed int64) (*sim.Simulator, error) {
		sc := cfg.SimConfig()
		sc.Seed = seed
		return sess.newSimulator(sc, sim.WithProgress(io.Discard))
	}

	sess.log.Info("batch started",
		zap.String("scenario", sess.scenario.Name),
		zap.Int("runs", numRuns),
		zap.Int64("first_seed", cfg.Seed),
	)
	results, err := sim.NewEnsemble(build, numRuns, cfg.Seed).Run(ctx, cfg.Steps)
	if err != nil {
		return err
	}
	banner(cmd, fmt.Sprintf("%s  %d runs  seeds %d..%d  %d steps",
		sess.scenario.Name, numRuns, cfg.Seed, cfg.Seed+int64(numRuns)-1, cfg.Steps))
	return writeBatchSummary(cmd.OutOrStdout(), results)
}

// writeBatchSummary prints the mean, standard deviation and range of every
// metric across results, plus the final distance from the origin.
func writeBatchSummary(out io.Writer, results []*sim.Result) error {
	samples := make(map[string][]float64)
	for _, res := range results {
		for name, v := range res.Metrics {
			samples[name] = append(samples[name], v)
		}
		samples["final_distance"] = append(samples["final_distance"], res.FinalPosition.Norm())
	}

	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX\t")
	for _, name := range names {
		xs := samples[name]
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 {
			std = 0
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t\n", name, mean, std, floats.Min(xs), floats.Max(xs))
	}
	return w.Flush()
}
