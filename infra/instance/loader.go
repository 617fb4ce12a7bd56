// Package instance reads, writes and generates maneuver scheduling instances
// in the plain-text interchange format: a header line `n m density`, n switch
// lines `id technology processing`, n precedence lines `id count preds...`,
// and m travel-time matrices of (n+1) x (n+1) values, one matrix per team.
package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gridops/switchsched/core/model"
)

// Load parses an instance from r and builds the validated problem.
func Load(r io.Reader) (*model.Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(tok)
	}
	nextFloat := func() (float64, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(tok, 64)
	}

	n, err := nextInt()
	if err != nil {
		return nil, fmt.Errorf("instance header: %w", err)
	}
	m, err := nextInt()
	if err != nil {
		return nil, fmt.Errorf("instance header: %w", err)
	}
	// Density of the precedence graph, informational only.
	if _, err := next(); err != nil {
		return nil, fmt.Errorf("instance header: %w", err)
	}
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("instance header: need n >= 1 and m >= 1 (got n=%d m=%d)", n, m)
	}

	tech := make([]model.Technology, n+1)
	proc := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		if _, err := next(); err != nil { // switch id, positional
			return nil, fmt.Errorf("switch %d: %w", i, err)
		}
		tok, err := next()
		if err != nil {
			return nil, fmt.Errorf("switch %d technology: %w", i, err)
		}
		switch tok {
		case "R":
			tech[i] = model.TechRemote
		case "M":
			tech[i] = model.TechManual
		default:
			return nil, fmt.Errorf("switch %d: unknown technology %q", i, tok)
		}
		if proc[i], err = nextFloat(); err != nil {
			return nil, fmt.Errorf("switch %d processing time: %w", i, err)
		}
	}

	preds := make([][]int, n+1)
	for j := 1; j <= n; j++ {
		if _, err := next(); err != nil { // switch id, positional
			return nil, fmt.Errorf("precedence of switch %d: %w", j, err)
		}
		count, err := nextInt()
		if err != nil {
			return nil, fmt.Errorf("precedence of switch %d: %w", j, err)
		}
		for c := 0; c < count; c++ {
			i, err := nextInt()
			if err != nil {
				return nil, fmt.Errorf("precedence of switch %d: %w", j, err)
			}
			preds[j] = append(preds[j], i)
		}
	}

	setup := make([][][]float64, n+1)
	for i := range setup {
		setup[i] = make([][]float64, n+1)
		for j := range setup[i] {
			setup[i][j] = make([]float64, m+1)
		}
	}
	for l := 1; l <= m; l++ {
		for i := 0; i <= n; i++ {
			for j := 0; j <= n; j++ {
				v, err := nextFloat()
				if err != nil {
					return nil, fmt.Errorf("travel times of team %d: %w", l, err)
				}
				setup[i][j][l] = v
			}
		}
	}

	return model.NewProblem(n, m, tech, proc, setup, preds)
}

// LoadFile reads an instance file from disk.
func LoadFile(path string) (*model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
