package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridops/switchsched/core/logger"
	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/core/neighborhood"
	"github.com/gridops/switchsched/core/search"
)

func zeroSetup(n, m int) [][][]float64 {
	setup := make([][][]float64, n+1)
	for i := range setup {
		setup[i] = make([][]float64, n+1)
		for j := range setup[i] {
			setup[i][j] = make([]float64, m+1)
		}
	}
	return setup
}

func newProblem(t *testing.T, n, m int, tech []model.Technology, proc []float64, preds map[int][]int, setup [][][]float64) *model.Problem {
	t.Helper()
	techs := make([]model.Technology, n+1)
	procs := make([]float64, n+1)
	copy(techs[1:], tech)
	copy(procs[1:], proc)
	if setup == nil {
		setup = zeroSetup(n, m)
	}
	pr := make([][]int, n+1)
	for j, ps := range preds {
		pr[j] = ps
	}
	p, err := model.NewProblem(n, m, techs, procs, setup, pr)
	require.NoError(t, err)
	return p
}

// mixedProblem returns a 6-operation, 2-team instance with precedence
// constraints and asymmetric travel times, rich enough for the search to
// have real choices.
func mixedProblem(t *testing.T) *model.Problem {
	t.Helper()
	n, m := 6, 2
	tech := []model.Technology{
		model.TechRemote, model.TechManual, model.TechManual,
		model.TechManual, model.TechRemote, model.TechManual,
	}
	proc := []float64{1, 3, 2, 4, 1, 2}
	preds := map[int][]int{3: {1}, 5: {2}, 6: {4}}

	setup := zeroSetup(n, m)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			if i == j {
				continue
			}
			setup[i][j][1] = float64((i+2*j)%5) + 1
			setup[i][j][2] = float64((3*i+j)%4) + 1
		}
	}
	return newProblem(t, n, m, tech, proc, preds, setup)
}

func TestGreedySingleTeamWithRemote(t *testing.T) {
	p := newProblem(t, 2, 1,
		[]model.Technology{model.TechRemote, model.TechManual},
		[]float64{1, 2}, nil, nil)

	res, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, model.Schedule{{1}, {2}}, res.Schedule)
	assert.InDelta(t, 2.0, res.Makespan, 1e-9)

	ok, msg := p.IsFeasible(res.Schedule)
	assert.True(t, ok, msg)
}

func TestGreedyRespectsChain(t *testing.T) {
	p := newProblem(t, 3, 1,
		[]model.Technology{model.TechManual, model.TechManual, model.TechManual},
		[]float64{1, 1, 1},
		map[int][]int{2: {1}, 3: {2}}, nil)

	res, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, res.Schedule[1])
	assert.InDelta(t, 3.0, res.Makespan, 1e-9)
	assert.InDelta(t, p.Makespan(res.Schedule), res.Makespan, 1e-9)
}

func TestGreedyIsDeterministic(t *testing.T) {
	p := mixedProblem(t)

	a, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)
	b, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, a.Schedule, b.Schedule)
	assert.Equal(t, a.Makespan, b.Makespan)
}

func TestGreedyMakespanMatchesSimulator(t *testing.T) {
	p := mixedProblem(t)

	res, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)

	ok, msg := p.IsFeasible(res.Schedule)
	require.True(t, ok, msg)
	assert.InDelta(t, p.Makespan(res.Schedule), res.Makespan, 1e-9)
}

func TestNEHProducesFeasibleSchedule(t *testing.T) {
	p := mixedProblem(t)

	res, err := NEH{}.Solve(context.Background(), p)
	require.NoError(t, err)

	ok, msg := p.IsFeasible(res.Schedule)
	require.True(t, ok, msg)
	assert.InDelta(t, p.Makespan(res.Schedule), res.Makespan, 1e-9)

	greedy, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Makespan, greedy.Makespan+1e-9,
		"insertion construction should not lose to the dispatch rule here")
}

func TestNEHIsDeterministic(t *testing.T) {
	p := mixedProblem(t)

	a, err := NEH{}.Solve(context.Background(), p)
	require.NoError(t, err)
	b, err := NEH{}.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, a.Schedule, b.Schedule)
}

func TestILSWithoutPerturbationReturnsInitialLocalOptimum(t *testing.T) {
	p := mixedProblem(t)

	opts := DefaultOptions()
	opts.PerturbationPassesLimit = 0
	ils, err := NewILS(opts, nil)
	require.NoError(t, err)

	res, err := ils.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Zero(t, res.Report.Iterations)

	// Expect exactly greedy + VND with no perturbation applied.
	greedy, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)
	want := search.VND(p, neighborhood.Candidate{
		Schedule: greedy.Schedule,
		Eval:     model.Evaluate(p, greedy.Schedule),
	}, neighborhood.All())

	assert.Equal(t, want.Schedule, res.Schedule)
	assert.InDelta(t, want.Eval.Makespan, res.Makespan, 1e-9)
}

func TestILSIsDeterministicForFixedSeed(t *testing.T) {
	p := mixedProblem(t)

	opts := DefaultOptions()
	opts.Seed = 11
	opts.IterationsLimit = 20
	opts.LocalSearchMethod = LocalSearchRVND

	run := func() Result {
		ils, err := NewILS(opts, nil)
		require.NoError(t, err)
		res, err := ils.Solve(context.Background(), p)
		require.NoError(t, err)
		return res
	}

	a := run()
	b := run()
	assert.Equal(t, a.Schedule, b.Schedule)
	assert.Equal(t, a.Makespan, b.Makespan)
	assert.Equal(t, a.Report.Iterations, b.Report.Iterations)
}

func TestILSNeverWorseThanGreedy(t *testing.T) {
	p := mixedProblem(t)

	opts := DefaultOptions()
	opts.IterationsLimit = 30
	ils, err := NewILS(opts, nil)
	require.NoError(t, err)

	res, err := ils.Solve(context.Background(), p)
	require.NoError(t, err)

	greedy, err := Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Makespan, greedy.Makespan+1e-9)
	ok, msg := p.IsFeasible(res.Schedule)
	assert.True(t, ok, msg)
	assert.LessOrEqual(t, res.Report.Iterations, int64(30))
	assert.GreaterOrEqual(t, res.Report.Runtime, time.Duration(0))
}

func TestILSHonorsIterationsLimit(t *testing.T) {
	p := mixedProblem(t)

	opts := DefaultOptions()
	opts.IterationsLimit = 3
	opts.PerturbationPassesLimit = 1000
	ils, err := NewILS(opts, nil)
	require.NoError(t, err)

	res, err := ils.Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Report.Iterations)
}

func TestILSStopsOnCanceledContext(t *testing.T) {
	p := mixedProblem(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ils, err := NewILS(DefaultOptions(), nil)
	require.NoError(t, err)
	res, err := ils.Solve(ctx, p)
	require.NoError(t, err)

	// The initial solution is still built and returned.
	assert.Zero(t, res.Report.Iterations)
	ok, msg := p.IsFeasible(res.Schedule)
	assert.True(t, ok, msg)
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())

	opts.LocalSearchMethod = "tabu"
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.PerturbationPassesLimit = -1
	assert.Error(t, opts.Validate())
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"greedy", "neh", "ils"} {
		algo, err := New(name, DefaultOptions(), logger.Nop{})
		require.NoError(t, err)
		assert.Equal(t, name, algo.Name())
	}

	_, err := New("mip-precedence", DefaultOptions(), logger.Nop{})
	assert.Error(t, err, "exact formulations are not part of this solver")
}

func TestReportFields(t *testing.T) {
	r := Report{Iterations: 4, StartMakespan: 10, LastImprovement: 2, Runtime: time.Second}
	r.Append("Replications", 3)

	fields := r.Fields()
	require.Len(t, fields, 5)
	assert.Equal(t, "Iterations", fields[0].Key)
	assert.Equal(t, int64(4), fields[0].Value)
	assert.Equal(t, "Replications", fields[4].Key)
}
