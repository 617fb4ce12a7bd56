// Package model holds the in-memory representation of a switching maneuver
// scheduling instance and of its solutions. A Problem is immutable after
// construction; Schedules are cheap value types mutated freely by the
// heuristics.
package model

import (
	"fmt"
	"sort"
)

// Technology identifies how a switch is actuated.
type Technology int

const (
	TechUnknown Technology = iota
	// TechManual switches require a maintenance team on site.
	TechManual
	// TechRemote switches are actuated from the control center.
	TechRemote
)

func (t Technology) String() string {
	switch t {
	case TechManual:
		return "M"
	case TechRemote:
		return "R"
	default:
		return "?"
	}
}

// Problem holds the data of a maneuver scheduling instance. Operations are
// numbered 1..N; index 0 is a sentinel for the initial location of the teams
// and has zero processing time. Teams are numbered 1..M.
type Problem struct {
	// N is the number of switch operations.
	N int
	// M is the number of maintenance teams.
	M int
	// Technology[i] is the actuation technology of operation i.
	Technology []Technology
	// Processing[i] is the time required to maneuver switch i.
	Processing []float64
	// Setup[i][j][l] is the time team l spends traveling from the location
	// of operation i to the location of operation j. Index l = 0 is unused.
	Setup [][][]float64
	// Predecessors[j] lists the operations that must start before j,
	// sorted ascending. Successors is the reverse adjacency.
	Predecessors [][]int
	Successors   [][]int

	// precedence[i][j] is true when i must precede j, including transitive
	// relations. Computed once at construction.
	precedence [][]bool
}

// NewProblem validates the raw instance data and builds the derived
// structures (successor lists and the transitive precedence matrix).
// The preds argument lists the direct predecessors of each operation and may
// be nil for operations without precedence constraints.
func NewProblem(n, m int, tech []Technology, processing []float64, setup [][][]float64, preds [][]int) (*Problem, error) {
	if n <= 0 {
		return nil, fmt.Errorf("operations must be > 0 (got %d)", n)
	}
	if m <= 0 {
		return nil, fmt.Errorf("teams must be > 0 (got %d)", m)
	}
	if len(tech) != n+1 {
		return nil, fmt.Errorf("technology length must be %d (got %d)", n+1, len(tech))
	}
	if len(processing) != n+1 {
		return nil, fmt.Errorf("processing length must be %d (got %d)", n+1, len(processing))
	}
	if len(setup) != n+1 {
		return nil, fmt.Errorf("setup must have %d rows (got %d)", n+1, len(setup))
	}
	if len(preds) != n+1 {
		return nil, fmt.Errorf("predecessors length must be %d (got %d)", n+1, len(preds))
	}
	for i := 1; i <= n; i++ {
		if tech[i] != TechManual && tech[i] != TechRemote {
			return nil, fmt.Errorf("operation %d has unknown technology", i)
		}
		if processing[i] < 0 {
			return nil, fmt.Errorf("operation %d has negative processing time", i)
		}
	}
	for i := 0; i <= n; i++ {
		if len(setup[i]) != n+1 {
			return nil, fmt.Errorf("setup[%d] must have %d columns (got %d)", i, n+1, len(setup[i]))
		}
		for j := 0; j <= n; j++ {
			if len(setup[i][j]) != m+1 {
				return nil, fmt.Errorf("setup[%d][%d] must have %d team entries (got %d)", i, j, m+1, len(setup[i][j]))
			}
			for l := 1; l <= m; l++ {
				if setup[i][j][l] < 0 {
					return nil, fmt.Errorf("setup[%d][%d][%d] is negative", i, j, l)
				}
			}
		}
	}

	p := &Problem{
		N:            n,
		M:            m,
		Technology:   tech,
		Processing:   processing,
		Setup:        setup,
		Predecessors: make([][]int, n+1),
		Successors:   make([][]int, n+1),
	}

	for j := 1; j <= n; j++ {
		for _, i := range preds[j] {
			if i < 1 || i > n {
				return nil, fmt.Errorf("operation %d has invalid predecessor %d", j, i)
			}
			p.Predecessors[j] = append(p.Predecessors[j], i)
			p.Successors[i] = append(p.Successors[i], j)
		}
	}
	for i := 1; i <= n; i++ {
		sort.Ints(p.Predecessors[i])
		sort.Ints(p.Successors[i])
	}

	p.computePrecedence()
	return p, nil
}

// computePrecedence fills the transitive precedence matrix with a backward
// traversal from each target operation over the direct predecessor edges.
func (p *Problem) computePrecedence() {
	p.precedence = make([][]bool, p.N+1)
	for i := range p.precedence {
		p.precedence[i] = make([]bool, p.N+1)
	}

	processed := make([]bool, p.N+1)
	var pending []int
	for j := 1; j <= p.N; j++ {
		for i := range processed {
			processed[i] = false
		}
		pending = append(pending[:0], p.Predecessors[j]...)

		for len(pending) > 0 {
			i := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			p.precedence[i][j] = true
			processed[i] = true

			for _, k := range p.Predecessors[i] {
				if !processed[k] {
					pending = append(pending, k)
				}
			}
		}
	}
}

// Precedes reports whether operation i must precede operation j, directly or
// transitively.
func (p *Problem) Precedes(i, j int) bool {
	return p.precedence[i][j]
}
