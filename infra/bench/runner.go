// Package bench runs seeded replications of a solver over an instance and
// aggregates solution quality and runtime statistics.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gridops/switchsched/core/logger"
	"github.com/gridops/switchsched/core/metrics"
	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/core/solver"
)

// Runner executes R replications of one algorithm, each with its own seed
// (BaseSeed, BaseSeed+1, ...).
type Runner struct {
	Replications  int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	Sink          metrics.Sink
	Log           logger.Logger
}

// Record aggregates the replications of one (algorithm, instance) pair.
type Record struct {
	Algorithm string
	Instance  string
	N, M      int
	Runs      int

	Makespan Summary
	RuntimeS Summary
}

// Run solves the instance r.Replications times and aggregates the results.
// Replications that produce an infeasible schedule fail the whole run: the
// algorithms are expected to always return feasible solutions.
func (r Runner) Run(ctx context.Context, p *model.Problem, algorithm, instanceName string, opts solver.Options) (Record, error) {
	log := r.Log
	if log == nil {
		log = logger.Nop{}
	}
	sink := r.Sink
	if sink == nil {
		sink = metrics.NopSink{}
	}

	makespans := make([]float64, 0, r.Replications)
	runtimes := make([]float64, 0, r.Replications)

	for i := 0; i < r.Replications; i++ {
		runOpts := opts
		runOpts.Seed = r.BaseSeed + int64(i)

		algo, err := solver.New(algorithm, runOpts, log)
		if err != nil {
			return Record{}, err
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		began := time.Now()
		res, err := algo.Solve(runCtx, p)
		elapsed := time.Since(began)
		cancel()

		if err != nil {
			return Record{}, fmt.Errorf("replication %d: %w", i, err)
		}
		feasible, msg := p.IsFeasible(res.Schedule)
		if !feasible {
			return Record{}, fmt.Errorf("replication %d: infeasible solution: %s", i, msg)
		}

		if err := sink.RecordSolve(metrics.SolveRecord{
			Algorithm:  algorithm,
			Instance:   instanceName,
			RunID:      res.Report.RunID,
			Seed:       runOpts.Seed,
			Makespan:   res.Makespan,
			Feasible:   true,
			Iterations: res.Report.Iterations,
			Runtime:    elapsed,
		}); err != nil {
			log.Warnf("metrics sink: %v", err)
		}

		log.Debugf("replication %d: makespan=%.3f runtime=%.3fs", i, res.Makespan, elapsed.Seconds())
		makespans = append(makespans, res.Makespan)
		runtimes = append(runtimes, elapsed.Seconds())
	}

	return Record{
		Algorithm: algorithm,
		Instance:  instanceName,
		N:         p.N,
		M:         p.M,
		Runs:      r.Replications,
		Makespan:  Summarize(makespans),
		RuntimeS:  Summarize(runtimes),
	}, nil
}

// WriteCSV saves the aggregated records to a CSV file, creating the parent
// directory when needed.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algorithm", "instance", "n", "m", "runs",
		"makespan_best", "makespan_mean", "makespan_std", "makespan_worst",
		"runtime_best_s", "runtime_mean_s", "runtime_std_s", "runtime_worst_s",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	ftoa := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, r := range records {
		row := []string{
			r.Algorithm,
			r.Instance,
			strconv.Itoa(r.N),
			strconv.Itoa(r.M),
			strconv.Itoa(r.Runs),
			ftoa(r.Makespan.Min), ftoa(r.Makespan.Mean), ftoa(r.Makespan.Std), ftoa(r.Makespan.Max),
			ftoa(r.RuntimeS.Min), ftoa(r.RuntimeS.Mean), ftoa(r.RuntimeS.Std), ftoa(r.RuntimeS.Max),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
