package instance

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridops/switchsched/core/model"
)

// Params tunes the random instance generator.
type Params struct {
	// Switches is the number of maneuver operations (n).
	Switches int
	// Teams is the number of field teams (m).
	Teams int
	// RemoteShare is the proportion of remotely maneuverable switches.
	RemoteShare float64
	// Density is the desired order strength of the random precedence graph.
	Density float64
	// ProcessingMin and ProcessingMax bound the manual maneuver times.
	// Remote maneuvers always take one time unit.
	ProcessingMin, ProcessingMax float64
	// TravelMin and TravelMax bound the travel times.
	TravelMin, TravelMax float64
	// Triangular enforces the triangle inequality on the travel times.
	Triangular bool
	// IntegerOnly restricts generated times to integer values.
	IntegerOnly bool
}

// DefaultParams mirrors the defaults of the reference generator.
func DefaultParams(n, m int) Params {
	return Params{
		Switches:      n,
		Teams:         m,
		RemoteShare:   0.10,
		Density:       0.25,
		ProcessingMin: 1,
		ProcessingMax: 3,
		TravelMin:     5,
		TravelMax:     10,
		Triangular:    true,
		IntegerOnly:   true,
	}
}

func (g Params) validate() error {
	if g.Switches < 1 || g.Teams < 1 {
		return fmt.Errorf("need at least one switch and one team (got n=%d m=%d)", g.Switches, g.Teams)
	}
	if g.RemoteShare < 0 || g.RemoteShare > 1 {
		return fmt.Errorf("remote share must be in [0, 1] (got %g)", g.RemoteShare)
	}
	if g.Density < 0 || g.Density > 1 {
		return fmt.Errorf("precedence density must be in [0, 1] (got %g)", g.Density)
	}
	if g.ProcessingMax < g.ProcessingMin || g.TravelMax < g.TravelMin {
		return fmt.Errorf("invalid time bounds")
	}
	return nil
}

// Generate builds a random instance. Runs with the same params and an rng
// seeded the same way produce identical instances.
func Generate(g Params, rng *rand.Rand) (*model.Problem, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	n, m := g.Switches, g.Teams

	rvalue := func(lb, ub float64) float64 {
		if g.IntegerOnly {
			lo, hi := int(math.Ceil(lb)), int(math.Floor(ub))
			if hi <= lo {
				return float64(lo)
			}
			return float64(lo + rng.Intn(hi-lo+1))
		}
		return lb + rng.Float64()*(ub-lb)
	}

	// Technologies: a random sample of ceil(n * share) switches is remote.
	tech := make([]model.Technology, n+1)
	for i := 1; i <= n; i++ {
		tech[i] = model.TechManual
	}
	remotes := int(math.Ceil(float64(n) * g.RemoteShare))
	for _, i := range rng.Perm(n)[:remotes] {
		tech[i+1] = model.TechRemote
	}

	// Maneuver times. Remote operations take one unit.
	proc := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		if tech[i] == model.TechRemote {
			proc[i] = 1
		} else {
			proc[i] = rvalue(g.ProcessingMin, g.ProcessingMax)
		}
	}

	// Travel times, per team.
	setup := make([][][]float64, n+1)
	for i := range setup {
		setup[i] = make([][]float64, n+1)
		for j := range setup[i] {
			setup[i][j] = make([]float64, m+1)
			if i != j {
				for l := 1; l <= m; l++ {
					setup[i][j][l] = rvalue(g.TravelMin, g.TravelMax)
				}
			}
		}
	}

	if g.Triangular {
		// Shortcut through location l: its maneuver time counts, except for
		// the depot.
		for k := 1; k <= m; k++ {
			for l := 0; l <= n; l++ {
				for i := 0; i <= n; i++ {
					for j := 0; j <= n; j++ {
						via := setup[i][l][k] + setup[l][j][k]
						if l != 0 {
							via += proc[l]
						}
						if via < setup[i][j][k] {
							setup[i][j][k] = via
						}
					}
				}
			}
		}
	}

	preds := randomPrecedence(n, g.Density, rng)

	return model.NewProblem(n, m, tech, proc, setup, preds)
}

// randomPrecedence draws arcs over a shuffled topological order until the
// order strength of the transitive closure reaches the desired density.
func randomPrecedence(n int, density float64, rng *rand.Rand) [][]int {
	preds := make([][]int, n+1)
	if n < 2 || density <= 0 {
		return preds
	}

	nodes := rng.Perm(n)
	for i := range nodes {
		nodes[i]++
	}

	closure := make([][]bool, n+1)
	for i := range closure {
		closure[i] = make([]bool, n+1)
	}

	type arc struct{ i, j int }
	var arcs []arc
	for a := 0; a < len(nodes); a++ {
		for b := a + 1; b < len(nodes); b++ {
			arcs = append(arcs, arc{nodes[a], nodes[b]})
		}
	}

	total := float64(n) * float64(n-1) / 2
	relations := 0

	for len(arcs) > 0 && float64(relations)/total < density {
		pick := rng.Intn(len(arcs))
		chosen := arcs[pick]
		preds[chosen.j] = append(preds[chosen.j], chosen.i)

		// Close the matrix over the new arc and discard candidates that
		// became redundant.
		for l := 1; l <= n; l++ {
			if l != chosen.i && !closure[l][chosen.i] {
				continue
			}
			for k := 1; k <= n; k++ {
				if k != chosen.j && !closure[chosen.j][k] {
					continue
				}
				if !closure[l][k] {
					closure[l][k] = true
					relations++
				}
			}
		}

		kept := arcs[:0]
		for _, a := range arcs {
			if !closure[a.i][a.j] {
				kept = append(kept, a)
			}
		}
		arcs = kept
	}

	return preds
}
