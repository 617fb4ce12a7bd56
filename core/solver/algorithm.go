// Package solver implements the solution algorithms for the maneuver
// scheduling problem: the greedy and NEH construction heuristics and the
// iterated local search metaheuristic.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/gridops/switchsched/core/logger"
	"github.com/gridops/switchsched/core/model"
)

// Local search methods accepted by Options.LocalSearchMethod.
const (
	LocalSearchVND  = "vnd"
	LocalSearchRVND = "rvnd"
)

// Options tunes the randomized algorithms. The zero value of a limit field
// means "no limit", except PerturbationPassesLimit where zero genuinely
// disables the perturbation loop.
type Options struct {
	// Verbose enables per-iteration progress logging.
	Verbose bool
	// Seed initializes the random number generator. Runs with the same
	// problem and seed are fully reproducible.
	Seed int64
	// TimeLimit bounds the wall time of the main loop. Zero or negative
	// means unlimited. The check is cooperative: a running evaluation is
	// never interrupted.
	TimeLimit time.Duration
	// IterationsLimit bounds the number of outer iterations. Zero or
	// negative means unlimited.
	IterationsLimit int64
	// PerturbationPassesLimit is the highest perturbation strength the ILS
	// tries before giving up. Zero stops the ILS right after the initial
	// local search.
	PerturbationPassesLimit int
	// LocalSearchMethod selects between "vnd" and "rvnd".
	LocalSearchMethod string
}

// DefaultOptions returns the options used when a caller has no opinion.
func DefaultOptions() Options {
	return Options{
		PerturbationPassesLimit: 5,
		LocalSearchMethod:       LocalSearchVND,
	}
}

// Validate checks option values that have a closed domain.
func (o Options) Validate() error {
	if o.LocalSearchMethod != LocalSearchVND && o.LocalSearchMethod != LocalSearchRVND {
		return fmt.Errorf("unknown local search method %q", o.LocalSearchMethod)
	}
	if o.PerturbationPassesLimit < 0 {
		return fmt.Errorf("perturbation passes limit must be >= 0 (got %d)", o.PerturbationPassesLimit)
	}
	return nil
}

// Field is one diagnostic entry of a Report.
type Field struct {
	Key   string
	Value any
}

// Report carries diagnostics about a finished run. The typed fields cover
// the counters every algorithm reports; Append adds free-form entries.
type Report struct {
	RunID           string
	Algorithm       string
	StartMakespan   float64
	Iterations      int64
	LastImprovement int64
	Runtime         time.Duration

	extras []Field
}

// Append adds a free-form diagnostic entry.
func (r *Report) Append(key string, value any) {
	r.extras = append(r.extras, Field{Key: key, Value: value})
}

// Fields lists every diagnostic as key/value pairs, typed entries first.
func (r *Report) Fields() []Field {
	fields := []Field{
		{Key: "Iterations", Value: r.Iterations},
		{Key: "Runtime (s)", Value: r.Runtime.Seconds()},
		{Key: "Start solution", Value: r.StartMakespan},
		{Key: "Iteration of last improvement", Value: r.LastImprovement},
	}
	return append(fields, r.extras...)
}

// Result is the outcome of a solver run. StartTimes exposes the simulator
// output for the final schedule so callers can print annotated solutions or
// warm-start an exact backend.
type Result struct {
	Schedule   model.Schedule
	Makespan   float64
	StartTimes []float64
	Report     Report
}

// Algorithm is implemented by every solution method.
type Algorithm interface {
	Name() string
	Solve(ctx context.Context, p *model.Problem) (Result, error)
}

// New builds the algorithm registered under the given name.
func New(name string, opts Options, log logger.Logger) (Algorithm, error) {
	switch name {
	case "greedy":
		return Greedy{}, nil
	case "neh":
		return NEH{}, nil
	case "ils":
		return NewILS(opts, log)
	default:
		return nil, fmt.Errorf("unknown algorithm %q", name)
	}
}
