// Package numeric provides epsilon-tolerant comparisons for schedule
// objective values. Every quality comparison in the solver goes through this
// package rather than raw float operators, so that makespans differing by
// less than the threshold are treated as equal.
package numeric

import "gonum.org/v1/gonum/floats/scalar"

// Threshold below which two floating point values are considered equal.
const Threshold = 1e-5

// Compare returns -1 if a is less than b, 0 if both values are equal within
// Threshold, and 1 if a is greater than b.
func Compare(a, b float64) int {
	if scalar.EqualWithinAbs(a, b, Threshold) {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Equal reports whether a and b are equal within Threshold.
func Equal(a, b float64) bool {
	return Compare(a, b) == 0
}

// Less reports whether a is less than b beyond Threshold.
func Less(a, b float64) bool {
	return Compare(a, b) == -1
}

// Greater reports whether a is greater than b beyond Threshold.
func Greater(a, b float64) bool {
	return Compare(a, b) == 1
}

// LessOrEqual reports whether a is less than or equal to b within Threshold.
func LessOrEqual(a, b float64) bool {
	return Compare(a, b) != 1
}

// GreaterOrEqual reports whether a is greater than or equal to b within
// Threshold.
func GreaterOrEqual(a, b float64) bool {
	return Compare(a, b) != -1
}

// CompareLex compares two same-length value tuples lexicographically using
// Compare on each component. The first non-zero component comparison wins.
func CompareLex(a, b []float64) int {
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
