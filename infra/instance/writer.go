package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gridops/switchsched/core/model"
)

// Write serializes the problem in the plain-text interchange format. The
// density field of the header is recomputed from the transitive precedence
// closure.
func Write(w io.Writer, p *model.Problem) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d %d %s\n", p.N, p.M, strconv.FormatFloat(Density(p), 'g', 4, 64))

	for i := 1; i <= p.N; i++ {
		fmt.Fprintf(bw, "%d %s %s\n", i, p.Technology[i], formatValue(p.Processing[i]))
	}

	for j := 1; j <= p.N; j++ {
		fmt.Fprintf(bw, "%d %d ", j, len(p.Predecessors[j]))
		for _, i := range p.Predecessors[j] {
			fmt.Fprintf(bw, "%d ", i)
		}
		fmt.Fprintln(bw)
	}

	for l := 1; l <= p.M; l++ {
		for i := 0; i <= p.N; i++ {
			for j := 0; j <= p.N; j++ {
				fmt.Fprintf(bw, "%s ", formatValue(p.Setup[i][j][l]))
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}

// WriteFile writes the instance to a file on disk.
func WriteFile(path string, p *model.Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, p); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Density is the order strength of the precedence graph: the number of
// (transitive) precedence relations divided by n(n-1)/2.
func Density(p *model.Problem) float64 {
	if p.N < 2 {
		return 0
	}
	count := 0
	for i := 1; i <= p.N; i++ {
		for j := 1; j <= p.N; j++ {
			if p.Precedes(i, j) {
				count++
			}
		}
	}
	return float64(count) / (float64(p.N) * float64(p.N-1) / 2)
}

// formatValue prints integral values without a decimal part, matching the
// files produced by the reference generator.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
