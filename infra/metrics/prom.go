package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridops/switchsched/core/metrics"
)

// PromSink records solver runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	runtime  *prometheus.HistogramVec
	makespan *prometheus.GaugeVec
}

// NewPromSink registers the solver metrics on the default Prometheus
// registerer. The metrics server is started separately with StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_runs_total",
		Help: "Total number of solver runs",
	}, []string{"algorithm", "feasible"})
	runtime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_runtime_seconds",
		Help:    "Wall time of a solver run",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"algorithm"})
	makespan := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solver_best_makespan",
		Help: "Makespan of the last solution found per instance",
	}, []string{"algorithm", "instance"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runtime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runtime = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(makespan); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			makespan = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, runtime: runtime, makespan: makespan}, nil
}

// RecordSolve updates the run counter, runtime histogram and makespan gauge.
func (s *PromSink) RecordSolve(rec coremetrics.SolveRecord) error {
	s.runs.WithLabelValues(rec.Algorithm, strconv.FormatBool(rec.Feasible)).Inc()
	s.runtime.WithLabelValues(rec.Algorithm).Observe(rec.Runtime.Seconds())
	if rec.Feasible {
		s.makespan.WithLabelValues(rec.Algorithm, rec.Instance).Set(rec.Makespan)
	}
	return nil
}
