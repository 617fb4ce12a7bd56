package model

import (
	"math"

	"github.com/gridops/switchsched/core/numeric"
)

// Evaluation is the quality of a schedule. Makespan is the primary objective;
// TotalCompletion (the sum of the completion times of each team's last
// operation) breaks ties. Infeasible schedules evaluate to +Inf values, which
// lose every comparison against finite evaluations.
type Evaluation struct {
	Makespan        float64
	TotalCompletion float64
}

// Compare orders evaluations lexicographically with the epsilon-tolerant
// comparator: makespan first, total completion second.
func (e Evaluation) Compare(o Evaluation) int {
	return numeric.CompareLex(
		[]float64{e.Makespan, e.TotalCompletion},
		[]float64{o.Makespan, o.TotalCompletion},
	)
}

// Less reports whether e is strictly better than o.
func (e Evaluation) Less(o Evaluation) bool {
	return e.Compare(o) == -1
}

// Feasible reports whether the evaluation belongs to a schedule in which
// every operation is dispatched.
func (e Evaluation) Feasible() bool {
	return !math.IsInf(e.Makespan, 1)
}

// Evaluate computes the makespan and the sum of team completion times of a
// schedule. The completion of each team is the completion time of the last
// operation in its sequence. Remote operations contribute to the makespan
// only: their dispatch order is bookkeeping and must not influence the
// evaluation. Feasibility is not checked here; a schedule that never
// dispatches some operation yields +Inf values.
func Evaluate(p *Problem, s Schedule) Evaluation {
	t := p.StartTime(s)

	makespan := 0.0
	sumCompletions := 0.0
	for l := 1; l <= p.M; l++ {
		if len(s[l]) == 0 {
			continue
		}
		i := s[l][len(s[l])-1]
		makespan = math.Max(makespan, t[i]+p.Processing[i])
		sumCompletions += t[i] + p.Processing[i]
	}
	for _, i := range s[0] {
		makespan = math.Max(makespan, t[i]+p.Processing[i])
	}

	return Evaluation{Makespan: makespan, TotalCompletion: sumCompletions}
}
