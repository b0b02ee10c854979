// Package aggregate implements the NULL-preserving composite aggregator that
// folds the six per-layer evidence scores into one comparable score per gene.
package aggregate

import (
	"math"
	"sort"

	"generank/domain/core"
	"generank/domain/gene"
	"generank/domain/scoring"
)

// Score produces one record per universe gene under the given weights.
//
// The composite is a weight-renormalized average over the layers where the
// gene has a present score: sum(score_l * weight_l) / sum(weight_l) over present
// layers. The denominator adapts to missingness, so a gene scored by one
// high-weight layer is not penalized against one scored by two low-weight
// layers. A gene absent from every layer keeps an absent composite, never
// 0.0, with evidence_count 0.
//
// When every present layer carries zero weight the renormalized average is
// undefined; the composite falls back to the unweighted mean of the present
// scores so the "absent iff no evidence" invariant holds.
func Score(ev *gene.Evidence, w scoring.Weights) ([]gene.Record, error) {
	if err := validateWeights(w); err != nil {
		return nil, err
	}

	records := make([]gene.Record, 0, len(ev.Genes))
	for _, g := range ev.Genes {
		records = append(records, scoreGene(ev, w, g))
	}
	return records, nil
}

// validateWeights guards against a zero-value Weights smuggled past the
// constructor. Fails fast, before any scoring.
func validateWeights(w scoring.Weights) error {
	sum := 0.0
	for _, layer := range gene.Layers() {
		sum += w.Get(layer)
	}
	if math.Abs(sum-1.0) > scoring.SumTolerance {
		return core.NewWeightSumError(sum)
	}
	return nil
}

func scoreGene(ev *gene.Evidence, w scoring.Weights, g gene.Info) gene.Record {
	rec := gene.Record{
		GeneID:        g.ID,
		Symbol:        g.Symbol,
		LayerScores:   make(map[gene.LayerName]gene.Score, gene.LayerCount),
		Contributions: make(map[gene.LayerName]gene.Score, gene.LayerCount),
	}

	weightedSum := 0.0
	weightSum := 0.0
	plainSum := 0.0

	for _, layer := range gene.Layers() {
		s := ev.LayerScore(layer, g.ID)
		rec.LayerScores[layer] = s
		if !s.Present {
			rec.Contributions[layer] = gene.Absent()
			continue
		}
		weight := w.Get(layer)
		rec.Contributions[layer] = gene.Present(s.Value * weight)
		rec.EvidenceCount++
		weightedSum += s.Value * weight
		weightSum += weight
		plainSum += s.Value
	}

	rec.Quality = gene.QualityForCount(rec.EvidenceCount)
	switch {
	case rec.EvidenceCount == 0:
		rec.Composite = gene.Absent()
	case weightSum == 0:
		rec.Composite = gene.Present(plainSum / float64(rec.EvidenceCount))
	default:
		rec.Composite = gene.Present(weightedSum / weightSum)
	}
	return rec
}

// SortByComposite orders records by composite score descending with absent
// composites last. Gene ID ascending breaks ties so the ordering is
// deterministic for downstream ranking.
func SortByComposite(records []gene.Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case a.Composite.Present && !b.Composite.Present:
			return true
		case !a.Composite.Present && b.Composite.Present:
			return false
		case a.Composite.Present && b.Composite.Present && a.Composite.Value != b.Composite.Value:
			return a.Composite.Value > b.Composite.Value
		default:
			return a.GeneID < b.GeneID
		}
	})
}

// TopN returns the first n records of the composite ordering without
// mutating the input slice.
func TopN(records []gene.Record, n int) []gene.Record {
	ordered := make([]gene.Record, len(records))
	copy(ordered, records)
	SortByComposite(ordered)
	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n]
}
