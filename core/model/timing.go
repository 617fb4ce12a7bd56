package model

import (
	"math"

	"github.com/gridops/switchsched/core/numeric"
)

// Feasibility diagnostics reported by IsFeasible.
const (
	MsgFeasible         = "Feasible solution."
	MsgWrongTeamCount   = "The number of maintenance teams is wrong."
	MsgInvalidID        = "Using invalid switch ID."
	MsgBadAssignment    = "There are switches assigned to more than one team or not assigned to any team."
	MsgRemoteMisplaced  = "Non-remote controlled switch assigned to dummy team 0."
	MsgManualMisplaced  = "Non-manual controlled switch assigned to a maintenance team."
	MsgPrecedenceBroken = "Precedence rules violated."
)

// StartTime computes the moment each operation starts under the given
// schedule. The result is indexed 0..N with t[0] = 0. Operations that can
// never be dispatched (a blocked precedence/ordering combination) keep +Inf.
//
// The computation is a fixed-point dispatch simulation: each sequence keeps a
// cursor and the location of its last dispatched operation, and repeated
// passes dispatch every sequence head whose predecessors have all started.
// A full pass without progress means the remaining operations are permanently
// blocked.
func (p *Problem) StartTime(s Schedule) []float64 {
	t := make([]float64, p.N+1)
	for i := 1; i <= p.N; i++ {
		t[i] = math.Inf(1)
	}

	index := make([]int, p.M+1)    // next position to analyse per sequence
	location := make([]int, p.M+1) // last dispatched operation per sequence
	pending := make([]int, p.N+1)  // predecessors not yet started

	for _, seq := range s {
		for _, j := range seq {
			pending[j] = len(p.Predecessors[j])
		}
	}

	count := 0
	progress := true
	for count < p.N && progress {
		progress = false
		for l := 0; l <= p.M; l++ {
			if index[l] >= len(s[l]) {
				continue
			}
			j := s[l][index[l]]
			if pending[j] != 0 {
				continue
			}

			if l != 0 {
				i := location[l]
				t[j] = t[i] + p.Processing[i] + p.Setup[i][j][l]
			} else {
				// Remote switches have no travel time.
				t[j] = 0
			}

			// Wait for predecessors scheduled on other sequences.
			for _, k := range p.Predecessors[j] {
				t[j] = math.Max(t[j], t[k]+p.Processing[k])
			}

			for _, k := range p.Successors[j] {
				pending[k]--
			}

			index[l]++
			location[l] = j
			count++
			progress = true
		}
	}

	return t
}

// Makespan returns the moment the last operation completes. It is +Inf when
// the schedule never dispatches some operation.
func (p *Problem) Makespan(s Schedule) float64 {
	t := p.StartTime(s)
	makespan := 0.0
	for i := 1; i <= p.N; i++ {
		makespan = math.Max(makespan, t[i]+p.Processing[i])
	}
	return makespan
}

// IsFeasible checks the schedule against all constraints of the problem and
// returns a human-readable diagnostic. The checks run in a fixed order and
// the first violation found is reported.
func (p *Problem) IsFeasible(s Schedule) (bool, string) {
	if len(s) != p.M+1 {
		return false, MsgWrongTeamCount
	}

	assignment := make([]int, p.N+1)
	for _, seq := range s {
		for _, i := range seq {
			if i < 1 || i > p.N {
				return false, MsgInvalidID
			}
			assignment[i]++
		}
	}
	for i := 1; i <= p.N; i++ {
		if assignment[i] != 1 {
			return false, MsgBadAssignment
		}
	}

	for _, i := range s[0] {
		if p.Technology[i] != TechRemote {
			return false, MsgRemoteMisplaced
		}
	}
	for l := 1; l <= p.M; l++ {
		for _, i := range s[l] {
			if p.Technology[i] != TechManual {
				return false, MsgManualMisplaced
			}
		}
	}

	// With the assignment checks done, the only way an operation is never
	// dispatched is an unsatisfiable precedence/ordering combination.
	t := p.StartTime(s)
	for j := 1; j <= p.N; j++ {
		if math.IsInf(t[j], 1) {
			return false, MsgPrecedenceBroken
		}
		for _, i := range p.Predecessors[j] {
			if numeric.Less(t[j], t[i]) {
				return false, MsgPrecedenceBroken
			}
		}
	}

	return true, MsgFeasible
}
