package postgres

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"generank/domain/core"
	"generank/domain/gene"
)

func TestInsertQueryColumnOrder(t *testing.T) {
	query := insertQuery()

	assert.True(t, strings.HasPrefix(query, "INSERT INTO gene_scores"))
	// 6 fixed columns + 2 per layer.
	assert.Equal(t, 6+2*gene.LayerCount, strings.Count(query, "$"))
	assert.Contains(t, query, "score_genetic_association")
	assert.Contains(t, query, "contribution_literature")
	// Canonical layer order: genetic association columns come first.
	assert.Less(t,
		strings.Index(query, "score_genetic_association"),
		strings.Index(query, "score_literature"))
}

func TestInsertArgsPreservesAbsence(t *testing.T) {
	rec := gene.Record{
		GeneID:        "ENSG00001",
		Symbol:        "FBN1",
		EvidenceCount: 1,
		Composite:     gene.Present(0.42),
		Quality:       gene.QualitySparse,
		LayerScores: map[gene.LayerName]gene.Score{
			gene.LayerConstraint: gene.Present(0.42),
		},
		Contributions: map[gene.LayerName]gene.Score{
			gene.LayerConstraint: gene.Present(0.063),
		},
	}

	args := insertArgs(core.RunID("run-1"), rec)
	require.Len(t, args, 6+2*gene.LayerCount)

	composite := args[4].(sql.NullFloat64)
	assert.True(t, composite.Valid)
	assert.Equal(t, 0.42, composite.Float64)

	// genetic_association is the first layer and has no evidence: both its
	// score and contribution map to SQL NULL.
	gaScore := args[6].(sql.NullFloat64)
	gaContribution := args[7].(sql.NullFloat64)
	assert.False(t, gaScore.Valid)
	assert.False(t, gaContribution.Valid)

	// constraint is the third layer: args 6+2*2 and 6+2*2+1.
	constraintScore := args[10].(sql.NullFloat64)
	assert.True(t, constraintScore.Valid)
	assert.Equal(t, 0.42, constraintScore.Float64)
}

func TestDefaultLayerSpecsCoverRegistry(t *testing.T) {
	specs := DefaultLayerSpecs()
	require.Len(t, specs, gene.LayerCount)
	for i, layer := range gene.Layers() {
		assert.Equal(t, layer, specs[i].Name)
		assert.NotEmpty(t, specs[i].Table)
	}
}
