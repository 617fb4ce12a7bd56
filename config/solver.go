package config

import (
	"fmt"
	"time"

	"github.com/gridops/switchsched/core/solver"
)

// SolverConfig defines the default tuning of the solution algorithms. Command
// line flags override these values per run.
type SolverConfig struct {
	// Algorithm is the method used when none is given: "greedy", "neh" or "ils".
	Algorithm string `json:"algorithm"`
	// Seed initializes the random number generator.
	Seed int64 `json:"seed"`
	// TimeLimitSeconds bounds the wall time of a run. Zero means unlimited.
	TimeLimitSeconds float64 `json:"time_limit_seconds"`
	// IterationsLimit bounds the outer iterations. Zero means unlimited.
	IterationsLimit int64 `json:"iterations_limit"`
	// PerturbationPassesLimit is the highest perturbation strength tried.
	PerturbationPassesLimit int `json:"perturbation_passes_limit"`
	// LocalSearchMethod selects between "vnd" and "rvnd".
	LocalSearchMethod string `json:"local_search_method"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = "ils"
	}
	if c.PerturbationPassesLimit == 0 {
		c.PerturbationPassesLimit = solver.DefaultOptions().PerturbationPassesLimit
	}
	if c.LocalSearchMethod == "" {
		c.LocalSearchMethod = solver.DefaultOptions().LocalSearchMethod
	}
}

// Validate checks the closed-domain fields.
func (c SolverConfig) Validate() error {
	switch c.Algorithm {
	case "greedy", "neh", "ils":
	default:
		return fmt.Errorf("unknown algorithm %s", c.Algorithm)
	}
	return c.Options(false).Validate()
}

// Options converts the configuration to solver options.
func (c SolverConfig) Options(verbose bool) solver.Options {
	return solver.Options{
		Verbose:                 verbose,
		Seed:                    c.Seed,
		TimeLimit:               time.Duration(c.TimeLimitSeconds * float64(time.Second)),
		IterationsLimit:         c.IterationsLimit,
		PerturbationPassesLimit: c.PerturbationPassesLimit,
		LocalSearchMethod:       c.LocalSearchMethod,
	}
}
