package neighborhood

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// DirectSwap exchanges one operation of a team sequence with one operation of
// a different team sequence. Each operation keeps the position index it takes
// over in its new sequence.
type DirectSwap struct{}

func (DirectSwap) Name() string { return "direct-swap" }

func (DirectSwap) Best(p *model.Problem, cur Candidate) Candidate {
	best := cur

	for l1 := 1; l1 <= p.M; l1++ {
		if len(cur.Schedule[l1]) == 0 {
			continue
		}
		for l2 := l1 + 1; l2 <= p.M; l2++ {
			if len(cur.Schedule[l2]) == 0 {
				continue
			}
			for i1 := 0; i1 < len(cur.Schedule[l1]); i1++ {
				for i2 := 0; i2 < len(cur.Schedule[l2]); i2++ {

					trial := cur.Schedule.Clone()
					trial[l1][i1], trial[l2][i2] = trial[l2][i2], trial[l1][i1]

					eval := model.Evaluate(p, trial)
					if eval.Less(best.Eval) {
						best = Candidate{Schedule: trial, Eval: eval}
					}
				}
			}
		}
	}

	return best
}

func (DirectSwap) Any(p *model.Problem, cur Candidate, rng *rand.Rand, feasibleOnly bool) Candidate {
	for {
		l1 := 1 + rng.Intn(p.M)
		for len(cur.Schedule[l1]) < 1 {
			l1 = 1 + rng.Intn(p.M)
		}

		l2 := 1 + rng.Intn(p.M)
		for l2 == l1 || len(cur.Schedule[l2]) < 1 {
			l2 = 1 + rng.Intn(p.M)
		}

		i1 := rng.Intn(len(cur.Schedule[l1]))
		i2 := rng.Intn(len(cur.Schedule[l2]))

		trial := cur.Schedule.Clone()
		trial[l1][i1], trial[l2][i2] = trial[l2][i2], trial[l1][i1]

		eval := model.Evaluate(p, trial)
		if !feasibleOnly || eval.Feasible() {
			return Candidate{Schedule: trial, Eval: eval}
		}
	}
}
