package neighborhood

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// Exchange swaps the operations at two distinct positions of the same
// sequence.
type Exchange struct{}

func (Exchange) Name() string { return "exchange" }

func (Exchange) Best(p *model.Problem, cur Candidate) Candidate {
	best := cur

	for l := 0; l <= p.M; l++ {
		seq := cur.Schedule[l]
		if len(seq) < 2 {
			continue
		}
		for i := 0; i < len(seq)-1; i++ {
			for j := i + 1; j < len(seq); j++ {

				trial := cur.Schedule.Clone()
				trial[l][i], trial[l][j] = trial[l][j], trial[l][i]

				eval := model.Evaluate(p, trial)
				if eval.Less(best.Eval) {
					best = Candidate{Schedule: trial, Eval: eval}
				}
			}
		}
	}

	return best
}

func (Exchange) Any(p *model.Problem, cur Candidate, rng *rand.Rand, feasibleOnly bool) Candidate {
	for {
		l := rng.Intn(p.M + 1)
		for len(cur.Schedule[l]) < 2 {
			l = rng.Intn(p.M + 1)
		}

		size := len(cur.Schedule[l])
		i := rng.Intn(size)
		j := rng.Intn(size)
		for j == i {
			j = rng.Intn(size)
		}

		trial := cur.Schedule.Clone()
		trial[l][i], trial[l][j] = trial[l][j], trial[l][i]

		eval := model.Evaluate(p, trial)
		if !feasibleOnly || eval.Feasible() {
			return Candidate{Schedule: trial, Eval: eval}
		}
	}
}
