package qc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"generank/domain/gene"
)

// buildRecords creates n records with the given present scores per layer;
// scores[layer][i] absent entries stay absent.
func buildRecords(n int, scores map[gene.LayerName]map[int]float64) []gene.Record {
	records := make([]gene.Record, n)
	for i := range records {
		rec := gene.Record{
			GeneID:      gene.ID(fmt.Sprintf("ENSG%05d", i)),
			Symbol:      gene.Symbol(fmt.Sprintf("GENE%d", i)),
			LayerScores: make(map[gene.LayerName]gene.Score),
		}
		for layer, byIdx := range scores {
			if v, ok := byIdx[i]; ok {
				rec.LayerScores[layer] = gene.Present(v)
			}
		}
		records[i] = rec
	}
	return records
}

func findStats(t *testing.T, report Report, layer gene.LayerName) LayerStats {
	t.Helper()
	for _, ls := range report.Stats {
		if ls.Layer == layer {
			return ls
		}
	}
	t.Fatalf("no stats for layer %s", layer)
	return LayerStats{}
}

func hasMessageFor(messages []string, layer gene.LayerName) bool {
	for _, m := range messages {
		if strings.Contains(m, string(layer)) {
			return true
		}
	}
	return false
}

func TestAnalyzeMissingRateClassification(t *testing.T) {
	// 10 genes: genetic_association present for 1 (90% missing, error),
	// constraint present for 4 (60% missing, warning), literature present
	// for all (informational).
	scores := map[gene.LayerName]map[int]float64{
		gene.LayerGeneticAssociation: {0: 0.5},
		gene.LayerConstraint:         {0: 0.2, 1: 0.4, 2: 0.6, 3: 0.8},
		gene.LayerLiterature:         {},
	}
	for i := 0; i < 10; i++ {
		scores[gene.LayerLiterature][i] = 0.1 + float64(i)*0.08
	}

	report := Analyze(buildRecords(10, scores))

	assert.True(t, hasMessageFor(report.Errors, gene.LayerGeneticAssociation))
	assert.True(t, hasMessageFor(report.Warnings, gene.LayerConstraint))
	assert.True(t, hasMessageFor(report.Info, gene.LayerLiterature))
	assert.False(t, report.Passed)

	ga := findStats(t, report, gene.LayerGeneticAssociation)
	assert.InDelta(t, 0.9, ga.MissingRate, 1e-12)
}

func TestAnalyzeOutOfRangeScoresAreErrors(t *testing.T) {
	scores := map[gene.LayerName]map[int]float64{
		gene.LayerConstraint: {0: 0.2, 1: 0.5, 2: 1.2},
	}
	report := Analyze(buildRecords(3, scores))

	require.True(t, hasMessageFor(report.Errors, gene.LayerConstraint))
	assert.False(t, report.Passed)
}

func TestAnalyzeZeroVarianceWarns(t *testing.T) {
	scores := map[gene.LayerName]map[int]float64{
		gene.LayerLiterature: {0: 0.5, 1: 0.5, 2: 0.5, 3: 0.5},
	}
	report := Analyze(buildRecords(4, scores))

	assert.True(t, hasMessageFor(report.Warnings, gene.LayerLiterature))
}

func TestAnalyzeIdenticalScoresSkipOutliers(t *testing.T) {
	// MAD is zero: outlier detection is skipped, not an error.
	scores := map[gene.LayerName]map[int]float64{
		gene.LayerPathwayProximity: {0: 0.5, 1: 0.5, 2: 0.5, 3: 0.5, 4: 0.5},
	}
	report := Analyze(buildRecords(5, scores))

	assert.Empty(t, report.Outliers)
	assert.Empty(t, report.Errors)
	assert.True(t, report.Passed)
}

func TestAnalyzeFlagsMADOutliers(t *testing.T) {
	byIdx := make(map[int]float64)
	for i := 0; i <= 10; i++ {
		byIdx[i] = 0.40 + float64(i)*0.01
	}
	byIdx[11] = 0.99 // far beyond 3 scaled MADs from the median
	scores := map[gene.LayerName]map[int]float64{
		gene.LayerExpressionSpecificity: byIdx,
	}

	report := Analyze(buildRecords(12, scores))

	require.Len(t, report.Outliers, 1)
	lo := report.Outliers[0]
	assert.Equal(t, gene.LayerExpressionSpecificity, lo.Layer)
	assert.Equal(t, 1, lo.OutlierCount)
	require.Len(t, lo.Examples, 1)
	assert.Equal(t, gene.Symbol("GENE11"), lo.Examples[0])
	assert.True(t, report.Passed, "outliers are informational")
}

func TestAnalyzeCapsOutlierExamples(t *testing.T) {
	byIdx := make(map[int]float64)
	for i := 0; i < 40; i++ {
		byIdx[i] = 0.40 + float64(i%10)*0.002
	}
	for i := 40; i < 48; i++ {
		byIdx[i] = 0.99
	}
	scores := map[gene.LayerName]map[int]float64{
		gene.LayerGeneticAssociation: byIdx,
	}

	report := Analyze(buildRecords(48, scores))

	require.Len(t, report.Outliers, 1)
	lo := report.Outliers[0]
	assert.Equal(t, 8, lo.OutlierCount)
	assert.Len(t, lo.Examples, 5)
}

func TestAnalyzeEmptyDataset(t *testing.T) {
	report := Analyze(nil)
	// Every layer is fully missing: six errors, nothing panics.
	assert.Len(t, report.Errors, gene.LayerCount)
	assert.False(t, report.Passed)
}
