package validation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"generank/domain/gene"
	"generank/domain/scoring"
)

// uniformEvidence gives every gene the same score across all six layers, so
// any weight configuration yields the same composite and a perfectly stable
// ranking.
func uniformEvidence(n int) *gene.Evidence {
	genes := make([]gene.Info, n)
	scores := make(map[gene.LayerName]map[gene.ID]float64)
	for _, layer := range gene.Layers() {
		scores[layer] = make(map[gene.ID]float64, n)
	}
	for i := 0; i < n; i++ {
		id := gene.ID(fmt.Sprintf("ENSG%05d", i))
		genes[i] = gene.Info{ID: id, Symbol: gene.Symbol(fmt.Sprintf("GENE%d", i))}
		v := float64(i+1) / float64(n+1)
		for _, layer := range gene.Layers() {
			scores[layer][id] = v
		}
	}
	return &gene.Evidence{Genes: genes, Scores: scores}
}

func TestSensitivityStableRanking(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(zerolog.Nop())
	res, err := analyzer.Run(context.Background(), uniformEvidence(50), scoring.Default())
	require.NoError(t, err)

	wantPerturbations := gene.LayerCount * len(DefaultDeltas())
	assert.Len(t, res.Perturbations, wantPerturbations)
	assert.Equal(t, wantPerturbations, res.StableCount)
	assert.Equal(t, 0, res.UnstableCount)
	assert.Equal(t, 0, res.UndefinedCount)
	assert.True(t, res.OverallStable)

	require.NotNil(t, res.MeanRho)
	assert.InDelta(t, 1.0, *res.MeanRho, 1e-9)
	require.NotNil(t, res.MinRho)
	assert.InDelta(t, 1.0, *res.MinRho, 1e-9)

	assert.NotEmpty(t, res.MostSensitiveLayer)
	assert.NotEmpty(t, res.MostRobustLayer)
	assert.Len(t, res.PerLayer, gene.LayerCount)
}

func TestSensitivityInsufficientOverlapIsUndefined(t *testing.T) {
	// Five scored genes can never reach the minimum overlap of ten: every
	// rho is undefined and excluded, counted neither stable nor unstable.
	analyzer := NewSensitivityAnalyzer(zerolog.Nop())
	res, err := analyzer.Run(context.Background(), uniformEvidence(5), scoring.Default())
	require.NoError(t, err)

	wantPerturbations := gene.LayerCount * len(DefaultDeltas())
	assert.Equal(t, wantPerturbations, res.UndefinedCount)
	assert.Equal(t, 0, res.StableCount)
	assert.Equal(t, 0, res.UnstableCount)
	assert.Nil(t, res.MeanRho)
	assert.False(t, res.OverallStable)
	assert.Contains(t, res.Reason, "overlap")

	for _, p := range res.Perturbations {
		assert.Nil(t, p.Rho)
		assert.Equal(t, 5, p.OverlapCount)
	}
}

func TestSensitivityPerturbedWeightsRemainValid(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(zerolog.Nop())
	res, err := analyzer.Run(context.Background(), uniformEvidence(20), scoring.Default())
	require.NoError(t, err)

	for _, p := range res.Perturbations {
		sum := 0.0
		for _, layer := range gene.Layers() {
			sum += p.Weights.Get(layer)
		}
		assert.InDelta(t, 1.0, sum, scoring.SumTolerance, "%s %+.2f", p.Layer, p.Delta)
	}
}

func TestSensitivityDeterministicSlots(t *testing.T) {
	// Perturbations land in (layer, delta) order regardless of goroutine
	// scheduling.
	analyzer := NewSensitivityAnalyzer(zerolog.Nop())
	res, err := analyzer.Run(context.Background(), uniformEvidence(30), scoring.Default())
	require.NoError(t, err)

	idx := 0
	for _, layer := range gene.Layers() {
		for _, delta := range DefaultDeltas() {
			p := res.Perturbations[idx]
			assert.Equal(t, layer, p.Layer)
			assert.Equal(t, delta, p.Delta)
			idx++
		}
	}
}

func TestSensitivityCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewSensitivityAnalyzer(zerolog.Nop())
	analyzer.Parallelism = 1
	_, err := analyzer.Run(ctx, uniformEvidence(20), scoring.Default())
	assert.Error(t, err)
}
