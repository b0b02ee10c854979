package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"generank/domain/core"
	"generank/domain/gene"
)

func validAssignment() map[gene.LayerName]float64 {
	return map[gene.LayerName]float64{
		gene.LayerGeneticAssociation:    0.25,
		gene.LayerPhenotypeSimilarity:   0.20,
		gene.LayerConstraint:            0.15,
		gene.LayerExpressionSpecificity: 0.15,
		gene.LayerPathwayProximity:      0.15,
		gene.LayerLiterature:            0.10,
	}
}

func TestNewValidatesSum(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[gene.LayerName]float64)
		wantErr bool
	}{
		{name: "exact sum", mutate: func(m map[gene.LayerName]float64) {}, wantErr: false},
		{
			name: "within tolerance",
			mutate: func(m map[gene.LayerName]float64) {
				m[gene.LayerLiterature] += 5e-7
			},
			wantErr: false,
		},
		{
			name: "sum too high",
			mutate: func(m map[gene.LayerName]float64) {
				m[gene.LayerLiterature] += 0.01
			},
			wantErr: true,
		},
		{
			name: "sum too low",
			mutate: func(m map[gene.LayerName]float64) {
				m[gene.LayerConstraint] -= 0.05
			},
			wantErr: true,
		},
		{
			name: "negative weight",
			mutate: func(m map[gene.LayerName]float64) {
				m[gene.LayerConstraint] = -0.15
				m[gene.LayerLiterature] = 0.40
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignment := validAssignment()
			tt.mutate(assignment)
			_, err := New(assignment)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsConfigError(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsMissingLayer(t *testing.T) {
	assignment := validAssignment()
	delete(assignment, gene.LayerLiterature)
	_, err := New(assignment)
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestNewCopiesInput(t *testing.T) {
	assignment := validAssignment()
	w, err := New(assignment)
	require.NoError(t, err)

	assignment[gene.LayerLiterature] = 0.99
	assert.InDelta(t, 0.10, w.Get(gene.LayerLiterature), 1e-12)
}

func TestPerturbRenormalizes(t *testing.T) {
	w := Default()

	perturbed, err := w.Perturb(gene.LayerGeneticAssociation, 0.10)
	require.NoError(t, err)

	sum := 0.0
	for _, layer := range gene.Layers() {
		sum += perturbed.Get(layer)
	}
	assert.InDelta(t, 1.0, sum, SumTolerance)
	assert.Greater(t, perturbed.Get(gene.LayerGeneticAssociation), w.Get(gene.LayerGeneticAssociation))
	// Receiver untouched.
	assert.InDelta(t, 0.25, w.Get(gene.LayerGeneticAssociation), 1e-12)
}

func TestPerturbZeroDeltaIsIdempotent(t *testing.T) {
	w := Default()
	perturbed, err := w.Perturb(gene.LayerConstraint, 0.0)
	require.NoError(t, err)
	assert.True(t, w.EqualWithin(perturbed, 1e-12))
}

func TestPerturbClampsToUnitInterval(t *testing.T) {
	w := Default()

	perturbed, err := w.Perturb(gene.LayerLiterature, -0.50)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, perturbed.Get(gene.LayerLiterature), 1e-12)

	sum := 0.0
	for _, layer := range gene.Layers() {
		sum += perturbed.Get(layer)
	}
	assert.InDelta(t, 1.0, sum, SumTolerance)
}

func TestPerturbUnknownLayer(t *testing.T) {
	_, err := Default().Perturb("methylation", 0.05)
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}
