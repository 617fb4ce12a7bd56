package neighborhood

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// Shift removes an operation from one position of a sequence and reinserts it
// at a different position of the same sequence. It applies to the remote
// sequence and to every team sequence.
type Shift struct{}

func (Shift) Name() string { return "shift" }

func (Shift) Best(p *model.Problem, cur Candidate) Candidate {
	best := cur

	for l := 0; l <= p.M; l++ {
		for from := 0; from < len(cur.Schedule[l]); from++ {
			for to := 0; to < len(cur.Schedule[l]); to++ {
				if to == from {
					continue
				}

				trial := cur.Schedule.Clone()
				relocate(trial, l, from, to)

				eval := model.Evaluate(p, trial)
				if eval.Less(best.Eval) {
					best = Candidate{Schedule: trial, Eval: eval}
				}
			}
		}
	}

	return best
}

func (Shift) Any(p *model.Problem, cur Candidate, rng *rand.Rand, feasibleOnly bool) Candidate {
	for {
		l := rng.Intn(p.M + 1)
		for len(cur.Schedule[l]) < 2 {
			l = rng.Intn(p.M + 1)
		}

		size := len(cur.Schedule[l])
		from := rng.Intn(size)
		to := rng.Intn(size)
		for to == from {
			to = rng.Intn(size)
		}

		trial := cur.Schedule.Clone()
		relocate(trial, l, from, to)

		eval := model.Evaluate(p, trial)
		if !feasibleOnly || eval.Feasible() {
			return Candidate{Schedule: trial, Eval: eval}
		}
	}
}
