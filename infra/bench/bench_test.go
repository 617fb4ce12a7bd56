package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridops/switchsched/core/metrics"
	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/core/solver"
)

type captureSink struct {
	records []metrics.SolveRecord
}

func (c *captureSink) RecordSolve(rec metrics.SolveRecord) error {
	c.records = append(c.records, rec)
	return nil
}

func benchProblem(t *testing.T) *model.Problem {
	t.Helper()
	n, m := 4, 2
	tech := make([]model.Technology, n+1)
	proc := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		tech[i] = model.TechManual
		proc[i] = float64(i)
	}
	setup := make([][][]float64, n+1)
	for i := range setup {
		setup[i] = make([][]float64, n+1)
		for j := range setup[i] {
			setup[i][j] = make([]float64, m+1)
			if i != j {
				setup[i][j][1] = 2
				setup[i][j][2] = 3
			}
		}
	}
	p, err := model.NewProblem(n, m, tech, proc, setup, make([][]int, n+1))
	require.NoError(t, err)
	return p
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 2, 6})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 6.0, s.Max)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Std, 1e-9)

	single := Summarize([]float64{5})
	assert.Equal(t, 0.0, single.Std)
	assert.Equal(t, 5.0, single.Mean)

	assert.Zero(t, Summarize(nil).N)
}

func TestRunnerAggregatesReplications(t *testing.T) {
	p := benchProblem(t)
	sink := &captureSink{}

	r := Runner{Replications: 3, BaseSeed: 10, Sink: sink}
	rec, err := r.Run(context.Background(), p, "ils", "bench-4-2", solver.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "ils", rec.Algorithm)
	assert.Equal(t, 3, rec.Runs)
	assert.Equal(t, 3, rec.Makespan.N)
	assert.Greater(t, rec.Makespan.Min, 0.0)
	assert.LessOrEqual(t, rec.Makespan.Min, rec.Makespan.Max)

	require.Len(t, sink.records, 3)
	assert.Equal(t, int64(10), sink.records[0].Seed)
	assert.Equal(t, int64(12), sink.records[2].Seed)
	for _, sr := range sink.records {
		assert.True(t, sr.Feasible)
		assert.NotEmpty(t, sr.RunID)
	}
}

func TestRunnerDeterministicSeeds(t *testing.T) {
	p := benchProblem(t)

	r := Runner{Replications: 2, BaseSeed: 42}
	a, err := r.Run(context.Background(), p, "ils", "x", solver.DefaultOptions())
	require.NoError(t, err)
	b, err := r.Run(context.Background(), p, "ils", "x", solver.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Makespan.Min, b.Makespan.Min)
	assert.Equal(t, a.Makespan.Mean, b.Makespan.Mean)
}

func TestRunnerUnknownAlgorithm(t *testing.T) {
	p := benchProblem(t)

	r := Runner{Replications: 1}
	_, err := r.Run(context.Background(), p, "branch-and-bound", "x", solver.DefaultOptions())
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "results.csv")

	records := []Record{{
		Algorithm: "greedy",
		Instance:  "inst",
		N:         4, M: 2, Runs: 1,
		Makespan: Summary{N: 1, Min: 12, Max: 12, Mean: 12},
		RuntimeS: Summary{N: 1, Min: 0.01, Max: 0.01, Mean: 0.01},
	}}
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "algorithm", rows[0][0])
	assert.Equal(t, "greedy", rows[1][0])
	assert.Equal(t, "12.000000", rows[1][5])
}
