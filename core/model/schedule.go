package model

import (
	"fmt"
	"strings"
)

// Schedule encodes a solution as m+1 sequences of operation ids. Row 0 holds
// the remotely actuated operations; rows 1..m hold the operations of each
// maintenance team in execution order.
type Schedule [][]int

// NewSchedule returns an empty schedule for m maintenance teams.
func NewSchedule(m int) Schedule {
	return make(Schedule, m+1)
}

// Clone returns a deep copy of the schedule. Neighborhood moves and
// perturbations always operate on a clone so the original is never aliased.
func (s Schedule) Clone() Schedule {
	c := make(Schedule, len(s))
	for l, seq := range s {
		c[l] = append([]int(nil), seq...)
	}
	return c
}

// String renders the schedule with one line per sequence.
func (s Schedule) String() string {
	var b strings.Builder
	for l, seq := range s {
		if l == 0 {
			b.WriteString("REMOTE : [")
		} else {
			fmt.Fprintf(&b, "TEAM %d : [", l)
		}
		for _, i := range seq {
			fmt.Fprintf(&b, "%d, ", i)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// Annotate renders the schedule like String but appends the moment each
// operation starts, taken from the given start time vector.
func (s Schedule) Annotate(t []float64) string {
	var b strings.Builder
	for l, seq := range s {
		if l == 0 {
			b.WriteString("REMOTE : [")
		} else {
			fmt.Fprintf(&b, "TEAM %d : [", l)
		}
		for _, i := range seq {
			fmt.Fprintf(&b, "%d (%.2f), ", i, t[i])
		}
		b.WriteString("]\n")
	}
	return b.String()
}
