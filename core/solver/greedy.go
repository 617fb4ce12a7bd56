package solver

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/gridops/switchsched/core/model"
)

// Greedy builds a schedule with the earliest-start-time dispatch rule:
// ready remote operations are drained immediately, and among the ready
// manual operations the (operation, team) pair with the earliest possible
// start is appended to that team's sequence.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (g Greedy) Solve(ctx context.Context, p *model.Problem) (Result, error) {
	s := model.NewSchedule(p.M)
	makespan := 0.0

	manual, remote := splitByTechnology(p)
	t := make([]float64, p.N+1)
	gamma := pendingCounts(p)
	location := make([]int, p.M+1)

	for len(manual)+len(remote) > 0 {
		remaining := len(manual) + len(remote)
		remote = drainRemote(p, s, t, gamma, remote)

		if len(manual) == 0 {
			if len(remote) == remaining {
				// Nothing dispatched in a full pass: the precedence
				// data is unsatisfiable.
				break
			}
			continue
		}

		// Choose the switch and team with the earliest start. Ties keep
		// the first pair found, scanning operations then teams in
		// ascending order.
		criterion := math.Inf(1)
		var bestOp, bestTeam int
		for _, op := range manual {
			if gamma[op] != 0 {
				continue
			}
			for l := 1; l <= p.M; l++ {
				loc := location[l]
				trial := t[loc] + p.Processing[loc] + p.Setup[loc][op][l]
				if trial < criterion {
					criterion = trial
					bestOp = op
					bestTeam = l
				}
			}
		}
		if bestOp == 0 {
			break
		}

		loc := location[bestTeam]
		t[bestOp] = t[loc] + p.Processing[loc] + p.Setup[loc][bestOp][bestTeam]
		for _, i := range p.Predecessors[bestOp] {
			t[bestOp] = math.Max(t[bestOp], t[i]+p.Processing[i])
		}

		for _, k := range p.Successors[bestOp] {
			gamma[k]--
		}

		s[bestTeam] = append(s[bestTeam], bestOp)
		location[bestTeam] = bestOp
		makespan = math.Max(makespan, t[bestOp]+p.Processing[bestOp])
		manual = removeValue(manual, bestOp)
	}

	return Result{
		Schedule:   s,
		Makespan:   makespan,
		StartTimes: p.StartTime(s),
		Report:     Report{RunID: uuid.NewString(), Algorithm: "greedy", StartMakespan: makespan},
	}, nil
}

// splitByTechnology partitions the operation ids into the manual and remote
// ready pools, both sorted ascending.
func splitByTechnology(p *model.Problem) (manual, remote []int) {
	for i := 1; i <= p.N; i++ {
		switch p.Technology[i] {
		case model.TechManual:
			manual = append(manual, i)
		case model.TechRemote:
			remote = append(remote, i)
		}
	}
	return manual, remote
}

// pendingCounts initializes the per-operation count of unscheduled direct
// predecessors.
func pendingCounts(p *model.Problem) []int {
	gamma := make([]int, p.N+1)
	for i := 1; i <= p.N; i++ {
		gamma[i] = len(p.Predecessors[i])
	}
	return gamma
}

// drainRemote appends every ready remote operation to sequence 0, repeating
// until a pass dispatches nothing. When t is non-nil the start moments are
// tracked alongside. It returns the remote operations still blocked.
func drainRemote(p *model.Problem, s model.Schedule, t []float64, gamma []int, remote []int) []int {
	for {
		progress := false
		remaining := remote[:0]
		for _, j := range remote {
			if gamma[j] != 0 {
				remaining = append(remaining, j)
				continue
			}
			if t != nil {
				tj := 0.0
				for _, i := range p.Predecessors[j] {
					tj = math.Max(tj, t[i]+p.Processing[i])
				}
				t[j] = tj
			}
			for _, k := range p.Successors[j] {
				gamma[k]--
			}
			s[0] = append(s[0], j)
			progress = true
		}
		remote = remaining
		if !progress {
			return remote
		}
	}
}

// removeValue removes the first occurrence of v from a sorted id slice.
func removeValue(ids []int, v int) []int {
	for i, id := range ids {
		if id == v {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
