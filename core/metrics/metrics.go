// Package metrics defines the observability surface of the solver. Sinks
// receive completed run records; implementations live under infra/metrics.
package metrics

import "time"

// SolveRecord captures one completed solver run.
type SolveRecord struct {
	Algorithm  string
	Instance   string
	RunID      string
	Seed       int64
	Makespan   float64
	Feasible   bool
	Iterations int64
	Runtime    time.Duration
}

// Sink records solver runs for observability purposes.
type Sink interface {
	RecordSolve(rec SolveRecord) error
}

// NopSink discards every record. It is the default when metrics are disabled.
type NopSink struct{}

func (NopSink) RecordSolve(SolveRecord) error { return nil }
