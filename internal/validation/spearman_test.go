package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpearmanRhoMonotonic(t *testing.T) {
	x := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	y := []float64{1, 4, 9, 16, 25} // monotonic, non-linear

	rho, ok := spearmanRho(x, y)
	require.True(t, ok)
	assert.InDelta(t, 1.0, rho, 1e-12)
}

func TestSpearmanRhoReversed(t *testing.T) {
	x := []float64{0.1, 0.2, 0.3, 0.4}
	y := []float64{0.9, 0.7, 0.5, 0.3}

	_, ok := spearmanRho(x, []float64{y[0], y[1], y[2], y[3]})
	require.True(t, ok)

	rho, _ := spearmanRho(x, y)
	assert.InDelta(t, -1.0, rho, 1e-12)
}

func TestSpearmanRhoTies(t *testing.T) {
	x := []float64{1, 2, 2, 4}
	y := []float64{1, 3, 3, 8}

	rho, ok := spearmanRho(x, y)
	require.True(t, ok)
	assert.InDelta(t, 1.0, rho, 1e-12, "identical tie structure is perfect agreement")
}

func TestSpearmanRhoUndefined(t *testing.T) {
	_, ok := spearmanRho([]float64{1, 2}, []float64{1, 2})
	assert.False(t, ok, "fewer than 3 pairs")

	_, ok = spearmanRho([]float64{1, 2, 3}, []float64{5, 5, 5})
	assert.False(t, ok, "zero-variance ranks")

	_, ok = spearmanRho([]float64{1, 2, 3}, []float64{1, 2})
	assert.False(t, ok, "length mismatch")
}

func TestAverageRanks(t *testing.T) {
	ranks := averageRanks([]float64{10, 20, 20, 30})
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, ranks)
}
