// Package search contains the local search drivers used by the solvers. All
// drivers are generic over the neighborhood abstraction and only accept a
// trial when it strictly improves the incumbent under the lexicographic
// evaluation order.
package search

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
	"github.com/gridops/switchsched/core/neighborhood"
)

// Descend performs best-improvement hill climbing over a single neighborhood
// until it reaches a local optimum.
func Descend(p *model.Problem, start neighborhood.Candidate, nb neighborhood.Neighborhood) neighborhood.Candidate {
	incumbent := start
	for {
		trial := nb.Best(p, incumbent)
		if !trial.Eval.Less(incumbent.Eval) {
			return incumbent
		}
		incumbent = trial
	}
}

// VND explores the neighborhoods in their given order. An improvement
// restarts the scan from the first neighborhood; the search stops when the
// scan falls off the end of the list.
func VND(p *model.Problem, start neighborhood.Candidate, neighborhoods []neighborhood.Neighborhood) neighborhood.Candidate {
	incumbent := start

	k := 0
	for k < len(neighborhoods) {
		trial := neighborhoods[k].Best(p, incumbent)
		if trial.Eval.Less(incumbent.Eval) {
			incumbent = trial
			k = 0
		} else {
			k++
		}
	}

	return incumbent
}

// RVND is the randomized variant of VND: neighborhoods are drawn uniformly
// from a working set, removed once explored, and the set is refilled after
// every improvement. The search stops when the working set is exhausted.
func RVND(p *model.Problem, start neighborhood.Candidate, neighborhoods []neighborhood.Neighborhood, rng *rand.Rand) neighborhood.Candidate {
	incumbent := start

	available := append([]neighborhood.Neighborhood(nil), neighborhoods...)
	for len(available) > 0 {
		idx := rng.Intn(len(available))
		nb := available[idx]
		available = append(available[:idx], available[idx+1:]...)

		trial := nb.Best(p, incumbent)
		if trial.Eval.Less(incumbent.Eval) {
			incumbent = trial
			available = append(available[:0], neighborhoods...)
		}
	}

	return incumbent
}
