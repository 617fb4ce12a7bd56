package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareScalars(t *testing.T) {
	assert.Equal(t, 0, Compare(1.0, 1.0))
	assert.Equal(t, 0, Compare(1.0, 1.0+1e-6))
	assert.Equal(t, -1, Compare(1.0, 1.1))
	assert.Equal(t, 1, Compare(1.1, 1.0))

	assert.True(t, Equal(2.0, 2.0+1e-7))
	assert.True(t, Less(1.0, 2.0))
	assert.False(t, Less(2.0, 2.0+1e-6))
	assert.True(t, Greater(2.0, 1.0))
	assert.True(t, LessOrEqual(2.0, 2.0))
	assert.True(t, LessOrEqual(1.0, 2.0))
	assert.True(t, GreaterOrEqual(2.0, 2.0))
	assert.True(t, GreaterOrEqual(3.0, 2.0))
}

func TestCompareInfinity(t *testing.T) {
	inf := math.Inf(1)
	assert.Equal(t, 1, Compare(inf, 100.0))
	assert.Equal(t, -1, Compare(100.0, inf))
	// An infeasible value is never an improvement over another infeasible one.
	assert.False(t, Less(inf, inf))
}

func TestCompareLex(t *testing.T) {
	assert.Equal(t, 0, CompareLex([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, -1, CompareLex([]float64{1, 2}, []float64{1, 3}))
	assert.Equal(t, 1, CompareLex([]float64{2, 0}, []float64{1, 9}))
	// Ties within the threshold fall through to the next component.
	assert.Equal(t, -1, CompareLex([]float64{1 + 1e-7, 5}, []float64{1, 6}))
}
