package neighborhood

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// PairSwap exchanges a block of two adjacent operations of one team sequence
// with a block of two adjacent operations of a different team sequence. The
// blocks keep their internal order and each takes over the positions of the
// other. It generalizes DirectSwap from single operations to adjacent pairs,
// which lets the search trade whole work segments between teams in one move.
type PairSwap struct{}

func (PairSwap) Name() string { return "pair-swap" }

func (PairSwap) Best(p *model.Problem, cur Candidate) Candidate {
	best := cur

	for l1 := 1; l1 <= p.M; l1++ {
		if len(cur.Schedule[l1]) < 2 {
			continue
		}
		for l2 := l1 + 1; l2 <= p.M; l2++ {
			if len(cur.Schedule[l2]) < 2 {
				continue
			}
			for i1 := 0; i1+1 < len(cur.Schedule[l1]); i1++ {
				for i2 := 0; i2+1 < len(cur.Schedule[l2]); i2++ {

					trial := cur.Schedule.Clone()
					swapPairs(trial, l1, i1, l2, i2)

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

func (PairSwap) Any(p *model.Problem, cur Candidate, rng *rand.Rand, feasibleOnly bool) Candidate {
	for {
		l1 := 1 + rng.Intn(p.M)
		for len(cur.Schedule[l1]) < 2 {
			l1 = 1 + rng.Intn(p.M)
		}

		l2 := 1 + rng.Intn(p.M)
		for l2 == l1 || len(cur.Schedule[l2]) < 2 {
			l2 = 1 + rng.Intn(p.M)
		}

		i1 := rng.Intn(len(cur.Schedule[l1]) - 1)
		i2 := rng.Intn(len(cur.Schedule[l2]) - 1)

		trial := cur.Schedule.Clone()
		swapPairs(trial, l1, i1, l2, i2)

		eval := model.Evaluate(p, trial)
		if !feasibleOnly || eval.Feasible() {
			return Candidate{Schedule: trial, Eval: eval}
		}
	}
}

func swapPairs(s model.Schedule, l1, i1, l2, i2 int) {
	s[l1][i1], s[l2][i2] = s[l2][i2], s[l1][i1]
	s[l1][i1+1], s[l2][i2+1] = s[l2][i2+1], s[l1][i1+1]
}
