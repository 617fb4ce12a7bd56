package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/gridops/switchsched/core/logger"
	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/core/neighborhood"
	"github.com/gridops/switchsched/core/search"
)

// ILS is the iterated local search metaheuristic. Each iteration perturbs
// the incumbent with an ejection chain over the teams, re-optimizes the
// perturbed schedule with VND or RVND, and accepts the trial only when it
// strictly improves. The perturbation strength grows after every rejected
// trial and resets after every acceptance.
type ILS struct {
	opts Options
	log  logger.Logger
}

// NewILS validates the options and returns the configured metaheuristic.
// A nil log falls back to the no-op logger; quiet runs always use it.
func NewILS(opts Options, log logger.Logger) (*ILS, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil || !opts.Verbose {
		log = logger.Nop{}
	}
	return &ILS{opts: opts, log: log}, nil
}

func (a *ILS) Name() string { return "ils" }

func (a *ILS) Solve(ctx context.Context, p *model.Problem) (Result, error) {
	rng := rand.New(rand.NewSource(a.opts.Seed))
	neighborhoods := neighborhood.All()
	began := time.Now()

	localSearch := func(entry neighborhood.Candidate) neighborhood.Candidate {
		if a.opts.LocalSearchMethod == LocalSearchRVND {
			return search.RVND(p, entry, neighborhoods, rng)
		}
		return search.VND(p, entry, neighborhoods)
	}

	// Start from the greedy schedule and descend to a local optimum.
	greedyResult, err := Greedy{}.Solve(ctx, p)
	if err != nil {
		return Result{}, err
	}
	start := neighborhood.Candidate{
		Schedule: greedyResult.Schedule,
		Eval:     model.Evaluate(p, greedyResult.Schedule),
	}
	a.log.Infof("start solution: makespan=%.3f elapsed=%.3fs", start.Eval.Makespan, time.Since(began).Seconds())

	incumbent := localSearch(start)
	a.log.Infof("after initial local search: makespan=%.3f elapsed=%.3fs", incumbent.Eval.Makespan, time.Since(began).Seconds())

	var iteration, lastImprovement int64
	passes := 1

	for a.withinLimits(ctx, began, iteration, passes) {
		iteration++

		perturbed := a.perturb(p, incumbent, rng)
		for i := 1; i < passes; i++ {
			perturbed = a.perturb(p, perturbed, rng)
		}

		trial := localSearch(perturbed)
		a.log.Infof("iteration %d: before-ls=%.3f after-ls=%.3f incumbent=%.3f elapsed=%.3fs",
			iteration, perturbed.Eval.Makespan, trial.Eval.Makespan, incumbent.Eval.Makespan, time.Since(began).Seconds())

		if trial.Eval.Less(incumbent.Eval) {
			incumbent = trial
			lastImprovement = iteration
			passes = 1
		} else {
			passes++
		}
	}

	report := Report{
		RunID:           uuid.NewString(),
		Algorithm:       "ils",
		StartMakespan:   greedyResult.Makespan,
		Iterations:      iteration,
		LastImprovement: lastImprovement,
		Runtime:         time.Since(began),
	}

	return Result{
		Schedule:   incumbent.Schedule,
		Makespan:   incumbent.Eval.Makespan,
		StartTimes: p.StartTime(incumbent.Schedule),
		Report:     report,
	}, nil
}

// withinLimits checks the cooperative stop conditions between iterations.
func (a *ILS) withinLimits(ctx context.Context, began time.Time, iteration int64, passes int) bool {
	if ctx.Err() != nil {
		return false
	}
	if a.opts.IterationsLimit > 0 && iteration >= a.opts.IterationsLimit {
		return false
	}
	if a.opts.TimeLimit > 0 && time.Since(began) >= a.opts.TimeLimit {
		return false
	}
	return passes <= a.opts.PerturbationPassesLimit
}

// perturb applies one ejection chain: the teams are visited in a random
// cyclic order and each team hands one random operation to the next team in
// the chain, inserted at the first randomly tried position that keeps the
// schedule feasible. A removal with no feasible reinsertion is reverted.
func (a *ILS) perturb(p *model.Problem, entry neighborhood.Candidate, rng *rand.Rand) neighborhood.Candidate {
	s := entry.Schedule.Clone()
	eval := entry.Eval

	chain := make([]int, p.M)
	for i := range chain {
		chain[i] = i + 1
	}
	rng.Shuffle(len(chain), func(i, j int) { chain[i], chain[j] = chain[j], chain[i] })

	for idx := range chain {
		origin := chain[idx]
		target := chain[(idx+1)%len(chain)]

		if len(s[origin]) == 0 {
			continue
		}

		from := rng.Intn(len(s[origin]))
		op := removeFrom(s, origin, from)

		positions := make([]int, len(s[target])+1)
		for i := range positions {
			positions[i] = i
		}
		rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

		success := false
		for _, to := range positions {
			insertInto(s, target, to, op)

			trial := model.Evaluate(p, s)
			if trial.Feasible() {
				eval = trial
				success = true
				break
			}
			removeFrom(s, target, to)
		}

		if !success {
			insertInto(s, origin, from, op)
		}
	}

	return neighborhood.Candidate{Schedule: s, Eval: eval}
}
