// Package validation checks the scored dataset against curated control gene
// sets and measures ranking stability under weight perturbations. All
// outcomes are advisory result values with explicit reasons; only store or
// configuration failures surface as errors.
package validation

import (
	"sort"

	"generank/domain/gene"
)

// Ranking holds fractional percentile ranks over every gene with a present
// composite score. Percentile is avgRank/n over 1-based ranks: the lowest
// unique gene sits at 1/n, the highest at exactly 1.0, and ties share the
// average rank of their group, so tied genes get identical percentiles. The
// floor approaches 0 as the universe grows but never reaches it; thresholds
// in this package are calibrated against this definition.
type Ranking struct {
	// BySymbol maps gene symbol to its percentile rank.
	BySymbol map[gene.Symbol]float64
	// ScoreBySymbol maps gene symbol to its composite score.
	ScoreBySymbol map[gene.Symbol]float64
	// Ordered lists scored symbols from highest composite to lowest.
	Ordered []gene.Symbol
	// ScoredCount is the number of genes with a present composite.
	ScoredCount int
}

// NewRanking computes percentile ranks from a scored dataset. Genes with an
// absent composite are excluded from the ranking universe entirely; they do
// not occupy rank slots.
func NewRanking(records []gene.Record) Ranking {
	type scored struct {
		symbol gene.Symbol
		id     gene.ID
		value  float64
	}

	var rows []scored
	for _, rec := range records {
		if rec.Composite.Present {
			rows = append(rows, scored{symbol: rec.Symbol, id: rec.GeneID, value: rec.Composite.Value})
		}
	}

	// Ascending by score; ID ascending for deterministic tie layout.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].value != rows[j].value {
			return rows[i].value < rows[j].value
		}
		return rows[i].id < rows[j].id
	})

	n := len(rows)
	r := Ranking{
		BySymbol:      make(map[gene.Symbol]float64, n),
		ScoreBySymbol: make(map[gene.Symbol]float64, n),
		ScoredCount:   n,
	}

	// Average-rank over tie groups, percentile = avg rank / n.
	i := 0
	for i < n {
		j := i + 1
		for j < n && rows[j].value == rows[i].value {
			j++
		}
		avgRank := (float64(i+1) + float64(j)) / 2.0
		pct := avgRank / float64(n)
		for k := i; k < j; k++ {
			r.BySymbol[rows[k].symbol] = pct
			r.ScoreBySymbol[rows[k].symbol] = rows[k].value
		}
		i = j
	}

	r.Ordered = make([]gene.Symbol, n)
	for idx, row := range rows {
		r.Ordered[n-1-idx] = row.symbol
	}
	return r
}

// Top returns the k highest-ranked symbols (fewer when the ranking is
// smaller than k).
func (r Ranking) Top(k int) []gene.Symbol {
	if k > len(r.Ordered) {
		k = len(r.Ordered)
	}
	return r.Ordered[:k]
}
