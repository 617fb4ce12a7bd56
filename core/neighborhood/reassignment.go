package neighborhood

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// Reassignment moves one operation from its team sequence to an arbitrary
// position of a different team sequence. The remote sequence does not
// participate: remote operations have no team to be reassigned to.
type Reassignment struct{}

func (Reassignment) Name() string { return "reassignment" }

func (Reassignment) Best(p *model.Problem, cur Candidate) Candidate {
	best := cur

	for origin := 1; origin <= p.M; origin++ {
		for from := 0; from < len(cur.Schedule[origin]); from++ {
			for target := 1; target <= p.M; target++ {
				if target == origin {
					continue
				}
				for to := 0; to <= len(cur.Schedule[target]); to++ {

					trial := cur.Schedule.Clone()
					op := removeAt(trial, origin, from)
					insertAt(trial, target, to, op)

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

func (Reassignment) Any(p *model.Problem, cur Candidate, rng *rand.Rand, feasibleOnly bool) Candidate {
	for {
		origin := 1 + rng.Intn(p.M)
		for len(cur.Schedule[origin]) < 1 {
			origin = 1 + rng.Intn(p.M)
		}

		target := 1 + rng.Intn(p.M)
		for target == origin {
			target = 1 + rng.Intn(p.M)
		}

		from := rng.Intn(len(cur.Schedule[origin]))
		to := rng.Intn(len(cur.Schedule[target]) + 1)

		trial := cur.Schedule.Clone()
		op := removeAt(trial, origin, from)
		insertAt(trial, target, to, op)

		eval := model.Evaluate(p, trial)
		if !feasibleOnly || eval.Feasible() {
			return Candidate{Schedule: trial, Eval: eval}
		}
	}
}
