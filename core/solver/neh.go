package solver

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/core/numeric"
)

// NEH builds a schedule with an insertion heuristic: each ready manual
// operation is tentatively inserted at every position of every team sequence,
// the partial schedule is re-simulated, and the insertion with the smallest
// partial makespan is committed. Much more expensive than Greedy, but it
// gives the local search a better starting point.
type NEH struct{}

func (NEH) Name() string { return "neh" }

func (h NEH) Solve(ctx context.Context, p *model.Problem) (Result, error) {
	s := model.NewSchedule(p.M)

	manual, remote := splitByTechnology(p)
	gamma := pendingCounts(p)

	for len(manual)+len(remote) > 0 {
		remaining := len(manual) + len(remote)
		remote = drainRemote(p, s, nil, gamma, remote)

		if len(manual) == 0 {
			if len(remote) == remaining {
				break
			}
			continue
		}

		bestObjective := math.Inf(1)
		var bestOp, bestTeam, bestIdx int
		for _, op := range manual {
			if gamma[op] != 0 {
				continue
			}
			for l := 1; l <= p.M; l++ {
				for idx := 0; idx <= len(s[l]); idx++ {
					insertInto(s, l, idx, op)

					objective := partialMakespan(p, s)
					if numeric.Less(objective, bestObjective) {
						bestObjective = objective
						bestOp = op
						bestTeam = l
						bestIdx = idx
					}

					removeFrom(s, l, idx)
				}
			}
		}
		if bestOp == 0 {
			break
		}

		for _, k := range p.Successors[bestOp] {
			gamma[k]--
		}
		insertInto(s, bestTeam, bestIdx, bestOp)
		manual = removeValue(manual, bestOp)
	}

	makespan := p.Makespan(s)
	return Result{
		Schedule:   s,
		Makespan:   makespan,
		StartTimes: p.StartTime(s),
		Report:     Report{RunID: uuid.NewString(), Algorithm: "neh", StartMakespan: makespan},
	}, nil
}

// partialMakespan is the completion time of the operations scheduled so far.
func partialMakespan(p *model.Problem, s model.Schedule) float64 {
	t := p.StartTime(s)
	objective := 0.0
	for _, seq := range s {
		for _, j := range seq {
			objective = math.Max(objective, t[j]+p.Processing[j])
		}
	}
	return objective
}

func insertInto(s model.Schedule, l, idx, op int) {
	s[l] = append(s[l][:idx], append([]int{op}, s[l][idx:]...)...)
}

func removeFrom(s model.Schedule, l, idx int) int {
	op := s[l][idx]
	s[l] = append(s[l][:idx], s[l][idx+1:]...)
	return op
}
