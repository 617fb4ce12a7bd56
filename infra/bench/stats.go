package bench

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of one measured quantity.
type Summary struct {
	N    int
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// Summarize computes the summary of a sample. The standard deviation uses
// the unbiased (n-1) estimator and is zero for samples of size one.
func Summarize(values []float64) Summary {
	s := Summary{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}
