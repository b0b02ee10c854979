package validation

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"generank/domain/gene"
	"generank/domain/reference"
)

const (
	// Positive controls must land this high (median percentile) to pass.
	positiveMedianThreshold = 0.75

	// Negative controls must stay below this (median percentile) to pass.
	negativeMedianThreshold = 0.50

	// Top quartile boundary used by both validators.
	topQuartile = 0.75

	// Negative controls scoring at or above this composite are counted as
	// high-tier escapes; expected near zero.
	negativeHighScoreThreshold = 0.70
)

// Absolute and percentage top-k cutoffs for recall reporting.
var (
	recallAbsoluteKs   = []int{100, 500, 1000, 2000}
	recallPercentageKs = []float64{0.05, 0.10, 0.20}
)

// GeneDetail is the per-gene evidence behind a control validation verdict.
type GeneDetail struct {
	Symbol     gene.Symbol
	Percentile float64
	Composite  float64
	Sources    []string
}

// RecallEntry is recall@k for one cutoff. Denominator is the number of
// unique curated symbols present in the scored dataset; CuratedTotal is the
// full curated list size so callers can derive the conservative recall.
type RecallEntry struct {
	Label        string
	K            int
	Hits         int
	Denominator  int
	CuratedTotal int
	Recall       float64
}

// SourceBreakdown restates the headline percentile statistics for the genes
// tagged with one provenance source, to expose a sub-collection that
// validates worse than the rest.
type SourceBreakdown struct {
	Source           string
	FoundCount       int
	MedianPercentile float64
	TopQuartileCount int
}

// ControlResult is the outcome of validating one reference set against the
// ranking. Passed false always comes with a Reason.
type ControlResult struct {
	SetName          string
	ExpectedCount    int
	FoundCount       int
	MedianPercentile float64
	TopQuartileCount int
	// HighScoreCount only applies to negative controls: matched genes whose
	// composite reaches the high tier.
	HighScoreCount int
	Passed         bool
	Reason         string
	PerGene        []GeneDetail
	RecallAtK      []RecallEntry
	PerSource      []SourceBreakdown
}

// ValidatePositive checks that the established disease genes rank near the
// top of the composite ordering: median percentile >= 0.75.
func ValidatePositive(ranking Ranking, set reference.Set) ControlResult {
	res := matchControls(ranking, set)
	if res.FoundCount == 0 {
		res.Reason = fmt.Sprintf("none of the %d curated %s genes appear in the scored dataset; check symbol normalization and universe filtering", res.ExpectedCount, set.Name)
		return res
	}

	res.RecallAtK = computeRecall(ranking, set)
	res.PerSource = computePerSource(ranking, set)

	if res.MedianPercentile >= positiveMedianThreshold {
		res.Passed = true
		return res
	}
	res.Reason = fmt.Sprintf("median percentile of matched %s genes is %.3f, below the %.2f acceptance threshold", set.Name, res.MedianPercentile, positiveMedianThreshold)
	return res
}

// ValidateNegative checks that housekeeping genes rank low: the acceptance
// direction is inverted, median percentile < 0.50 passes.
func ValidateNegative(ranking Ranking, set reference.Set) ControlResult {
	res := matchControls(ranking, set)
	if res.FoundCount == 0 {
		res.Reason = fmt.Sprintf("none of the %d curated %s genes appear in the scored dataset; check symbol normalization and universe filtering", res.ExpectedCount, set.Name)
		return res
	}

	res.PerSource = computePerSource(ranking, set)
	for _, d := range res.PerGene {
		if d.Composite >= negativeHighScoreThreshold {
			res.HighScoreCount++
		}
	}

	if res.MedianPercentile < negativeMedianThreshold {
		res.Passed = true
		return res
	}
	res.Reason = fmt.Sprintf("median percentile of matched %s genes is %.3f, at or above the %.2f rejection threshold; the composite rewards housekeeping expression", set.Name, res.MedianPercentile, negativeMedianThreshold)
	return res
}

// matchControls joins a reference set against the ranking and fills the
// statistics shared by both validators.
func matchControls(ranking Ranking, set reference.Set) ControlResult {
	res := ControlResult{
		SetName:       set.Name,
		ExpectedCount: len(set.UniqueSymbols()),
	}

	sourcesBySymbol := make(map[gene.Symbol][]string)
	for _, e := range set.Entries {
		sourcesBySymbol[e.Symbol] = append(sourcesBySymbol[e.Symbol], e.Source)
	}

	var percentiles []float64
	for _, sym := range set.UniqueSymbols() {
		pct, ok := ranking.BySymbol[sym]
		if !ok {
			continue
		}
		res.FoundCount++
		percentiles = append(percentiles, pct)
		if pct >= topQuartile {
			res.TopQuartileCount++
		}
		res.PerGene = append(res.PerGene, GeneDetail{
			Symbol:     sym,
			Percentile: pct,
			Composite:  ranking.ScoreBySymbol[sym],
			Sources:    sourcesBySymbol[sym],
		})
	}

	if len(percentiles) > 0 {
		res.MedianPercentile, _ = stats.Median(percentiles)
	}
	sort.Slice(res.PerGene, func(i, j int) bool { return res.PerGene[i].Percentile > res.PerGene[j].Percentile })
	return res
}

func computeRecall(ranking Ranking, set reference.Set) []RecallEntry {
	curated := set.UniqueSymbols()
	inDataset := 0
	isReference := make(map[gene.Symbol]bool, len(curated))
	for _, sym := range curated {
		isReference[sym] = true
		if _, ok := ranking.BySymbol[sym]; ok {
			inDataset++
		}
	}

	entries := make([]RecallEntry, 0, len(recallAbsoluteKs)+len(recallPercentageKs))
	for _, k := range recallAbsoluteKs {
		entries = append(entries, recallAt(ranking, isReference, fmt.Sprintf("top %d", k), k, inDataset, len(curated)))
	}
	for _, frac := range recallPercentageKs {
		k := int(float64(ranking.ScoredCount) * frac)
		entries = append(entries, recallAt(ranking, isReference, fmt.Sprintf("top %.0f%%", frac*100), k, inDataset, len(curated)))
	}
	return entries
}

func recallAt(ranking Ranking, isReference map[gene.Symbol]bool, label string, k, denominator, curatedTotal int) RecallEntry {
	hits := 0
	for _, sym := range ranking.Top(k) {
		if isReference[sym] {
			hits++
		}
	}
	e := RecallEntry{Label: label, K: k, Hits: hits, Denominator: denominator, CuratedTotal: curatedTotal}
	if denominator > 0 {
		e.Recall = float64(hits) / float64(denominator)
	}
	return e
}

func computePerSource(ranking Ranking, set reference.Set) []SourceBreakdown {
	var out []SourceBreakdown
	for _, source := range set.Sources() {
		seen := make(map[gene.Symbol]bool)
		var percentiles []float64
		bd := SourceBreakdown{Source: source}
		for _, e := range set.BySource(source) {
			if seen[e.Symbol] {
				continue
			}
			seen[e.Symbol] = true
			pct, ok := ranking.BySymbol[e.Symbol]
			if !ok {
				continue
			}
			bd.FoundCount++
			percentiles = append(percentiles, pct)
			if pct >= topQuartile {
				bd.TopQuartileCount++
			}
		}
		if len(percentiles) > 0 {
			bd.MedianPercentile, _ = stats.Median(percentiles)
		}
		out = append(out, bd)
	}
	return out
}
