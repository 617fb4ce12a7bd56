package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/infra/bench"
	"github.com/gridops/switchsched/infra/instance"
	"github.com/gridops/switchsched/infra/logger"
)

var benchFlags struct {
	file          string
	algorithms    []string
	replications  int
	baseSeed      int64
	perRunTimeout float64
	output        string

	// Random instance used when no file is given.
	switches     int
	teams        int
	instanceSeed int64
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark algorithms over seeded replications",
	RunE:  runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVarP(&benchFlags.file, "file", "f", "", "instance file (omit to benchmark a generated instance)")
	f.StringSliceVarP(&benchFlags.algorithms, "algorithms", "a", []string{"greedy", "neh", "ils"}, "algorithms to compare")
	f.IntVarP(&benchFlags.replications, "replications", "r", 10, "replications per algorithm")
	f.Int64Var(&benchFlags.baseSeed, "base-seed", 0, "seed of the first replication")
	f.Float64Var(&benchFlags.perRunTimeout, "per-run-timeout", 0, "timeout per replication in seconds (0 = none)")
	f.StringVarP(&benchFlags.output, "output", "o", "", "CSV file for the aggregated results")
	f.IntVar(&benchFlags.switches, "switches", 50, "switches of the generated instance")
	f.IntVar(&benchFlags.teams, "teams", 3, "teams of the generated instance")
	f.Int64Var(&benchFlags.instanceSeed, "instance-seed", 0, "seed of the generated instance")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.NewWithLevel("bench", cfg.Logging.Level)

	sink, err := setupMetrics(ctx, cfg, log)
	if err != nil {
		return err
	}

	var p *model.Problem
	name := benchFlags.file
	if name != "" {
		if p, err = instance.LoadFile(name); err != nil {
			return fmt.Errorf("load instance: %w", err)
		}
	} else {
		params := instance.DefaultParams(benchFlags.switches, benchFlags.teams)
		if p, err = instance.Generate(params, rand.New(rand.NewSource(benchFlags.instanceSeed))); err != nil {
			return fmt.Errorf("generate instance: %w", err)
		}
		name = fmt.Sprintf("random-%d-%d-%d", benchFlags.switches, benchFlags.teams, benchFlags.instanceSeed)
	}

	runner := bench.Runner{
		Replications:  benchFlags.replications,
		BaseSeed:      benchFlags.baseSeed,
		PerRunTimeout: time.Duration(benchFlags.perRunTimeout * float64(time.Second)),
		Sink:          sink,
		Log:           log,
	}

	records := make([]bench.Record, 0, len(benchFlags.algorithms))
	for _, algorithm := range benchFlags.algorithms {
		log.Infof("benchmarking %s on %s (%d replications)", algorithm, name, benchFlags.replications)
		rec, err := runner.Run(ctx, p, algorithm, name, cfg.Solver.Options(false))
		if err != nil {
			return fmt.Errorf("%s: %w", algorithm, err)
		}
		records = append(records, rec)
		fmt.Printf("%-8s makespan best=%.3f mean=%.3f std=%.3f | runtime mean=%.4fs\n",
			rec.Algorithm, rec.Makespan.Min, rec.Makespan.Mean, rec.Makespan.Std, rec.RuntimeS.Mean)
	}

	if benchFlags.output != "" {
		if err := bench.WriteCSV(benchFlags.output, records); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Infof("results written to %s", benchFlags.output)
	}
	return nil
}
