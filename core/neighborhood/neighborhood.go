// Package neighborhood defines the local moves explored by the search
// drivers. Every operator works on a clone of the incoming schedule, so the
// incumbent is never mutated, and signals infeasible trials through +Inf
// evaluations rather than errors.
package neighborhood

import (
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// Candidate pairs a schedule with its evaluation.
type Candidate struct {
	Schedule model.Schedule
	Eval     model.Evaluation
}

// Neighborhood is implemented by every move family.
type Neighborhood interface {
	// Name identifies the move family.
	Name() string

	// Best enumerates every move of the family and returns the best
	// resulting candidate. The result is never worse than cur: when no
	// move improves, cur is returned unchanged. Infeasible trials evaluate
	// to +Inf and lose naturally.
	Best(p *model.Problem, cur Candidate) Candidate

	// Any draws one random move of the family, resampling degenerate
	// parameters (such as sequences too short for the move). When
	// feasibleOnly is set, infeasible results are discarded and a new move
	// is drawn until a feasible one is found; callers must guarantee that
	// at least one feasible move exists.
	Any(p *model.Problem, cur Candidate, rng *rand.Rand, feasibleOnly bool) Candidate
}

// All returns the move families in the order used by the descent drivers.
func All() []Neighborhood {
	return []Neighborhood{Shift{}, Exchange{}, Reassignment{}, DirectSwap{}, PairSwap{}}
}

// relocate removes the operation at position from of sequence l and inserts
// it back at position to.
func relocate(s model.Schedule, l, from, to int) {
	op := s[l][from]
	s[l] = append(s[l][:from], s[l][from+1:]...)
	s[l] = append(s[l][:to], append([]int{op}, s[l][to:]...)...)
}

// insertAt inserts op at position idx of sequence l.
func insertAt(s model.Schedule, l, idx, op int) {
	s[l] = append(s[l][:idx], append([]int{op}, s[l][idx:]...)...)
}

// removeAt removes and returns the operation at position idx of sequence l.
func removeAt(s model.Schedule, l, idx int) int {
	op := s[l][idx]
	s[l] = append(s[l][:idx], s[l][idx+1:]...)
	return op
}
