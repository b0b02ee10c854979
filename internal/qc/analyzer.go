// Package qc audits the scored-gene dataset for missing-data and
// distributional anomalies. Every check is advisory: a failed check is
// reported, never raised, so the pipeline can finish and say so.
package qc

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"generank/domain/gene"
)

const (
	// Missing-rate classification thresholds.
	missingErrorRate = 0.8
	missingWarnRate  = 0.5

	// A present-score standard deviation below this has no discriminative
	// variation left.
	varianceEpsilon = 0.01

	// MAD scaled by this factor is comparable to a standard deviation for
	// normally distributed data.
	madScale = 1.4826

	// Scores beyond this many scaled MADs from the layer median are outliers.
	outlierMADs = 3.0

	// MAD below this is treated as zero: no meaningful outliers exist.
	madEpsilon = 1e-9

	maxOutlierExamples = 5
)

// LayerStats summarizes one layer's present scores.
type LayerStats struct {
	Layer        gene.LayerName
	PresentCount int
	MissingRate  float64
	Mean         float64
	Median       float64
	StdDev       float64
	Min          float64
	Max          float64
}

// LayerOutliers lists example genes whose score sits far from the layer
// median under the robust MAD spread estimate.
type LayerOutliers struct {
	Layer        gene.LayerName
	OutlierCount int
	Examples     []gene.Symbol
}

// Report is the structured QC output. Passed is true iff no check produced
// an error; warnings and informational findings never block a run.
type Report struct {
	Errors   []string
	Warnings []string
	Info     []string
	Stats    []LayerStats
	Outliers []LayerOutliers
	Passed   bool
}

// Analyze runs the three QC checks over a scored dataset: per-layer missing
// rates, per-layer distribution statistics, and MAD-based outlier detection.
func Analyze(records []gene.Record) Report {
	report := Report{}

	for _, layer := range gene.Layers() {
		values, symbols := presentScores(records, layer)

		layerStats := missingRateCheck(&report, layer, len(values), len(records))
		if len(values) > 0 {
			distributionCheck(&report, &layerStats, layer, values)
			outlierCheck(&report, layer, values, symbols)
		}
		report.Stats = append(report.Stats, layerStats)
	}

	report.Passed = len(report.Errors) == 0
	return report
}

func presentScores(records []gene.Record, layer gene.LayerName) ([]float64, []gene.Symbol) {
	var values []float64
	var symbols []gene.Symbol
	for _, rec := range records {
		if s := rec.LayerScores[layer]; s.Present {
			values = append(values, s.Value)
			symbols = append(symbols, rec.Symbol)
		}
	}
	return values, symbols
}

func missingRateCheck(report *Report, layer gene.LayerName, present, total int) LayerStats {
	ls := LayerStats{Layer: layer, PresentCount: present, MissingRate: 1.0}
	if total > 0 {
		ls.MissingRate = 1.0 - float64(present)/float64(total)
	}

	msg := fmt.Sprintf("layer %s: %.1f%% of genes have no score", layer, ls.MissingRate*100)
	switch {
	case ls.MissingRate > missingErrorRate:
		report.Errors = append(report.Errors, msg)
	case ls.MissingRate > missingWarnRate:
		report.Warnings = append(report.Warnings, msg)
	default:
		report.Info = append(report.Info, msg)
	}
	return ls
}

func distributionCheck(report *Report, ls *LayerStats, layer gene.LayerName, values []float64) {
	// Errors from montanaflynn/stats only occur on empty input, which the
	// caller has already excluded.
	ls.Mean, _ = stats.Mean(values)
	ls.Median, _ = stats.Median(values)
	ls.StdDev, _ = stats.StandardDeviation(values)
	ls.Min, _ = stats.Min(values)
	ls.Max, _ = stats.Max(values)

	if ls.Min < 0 || ls.Max > 1 {
		report.Errors = append(report.Errors,
			fmt.Sprintf("layer %s: scores outside [0,1] (min=%.4f max=%.4f), normalization is broken", layer, ls.Min, ls.Max))
	}
	if ls.StdDev < varianceEpsilon {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("layer %s: standard deviation %.4f below %.2f, scores carry no discriminative variation", layer, ls.StdDev, varianceEpsilon))
	}
}

// outlierCheck flags genes far from the layer median using MAD rather than
// standard deviation: evidence-score distributions are frequently skewed and
// bounded, and a handful of extreme values must not inflate the spread
// estimate used to judge the rest.
func outlierCheck(report *Report, layer gene.LayerName, values []float64, symbols []gene.Symbol) {
	median, _ := stats.Median(values)
	mad, _ := stats.MedianAbsoluteDeviation(values)
	scaledMAD := mad * madScale

	if scaledMAD < madEpsilon {
		// No spread to measure against; outliers are undefined, not an error.
		return
	}

	lo := LayerOutliers{Layer: layer}
	for i, v := range values {
		if absFloat(v-median) > outlierMADs*scaledMAD {
			lo.OutlierCount++
			lo.Examples = append(lo.Examples, symbols[i])
		}
	}
	if lo.OutlierCount == 0 {
		return
	}

	sort.Slice(lo.Examples, func(i, j int) bool { return lo.Examples[i] < lo.Examples[j] })
	if len(lo.Examples) > maxOutlierExamples {
		lo.Examples = lo.Examples[:maxOutlierExamples]
	}
	report.Outliers = append(report.Outliers, lo)
	report.Info = append(report.Info,
		fmt.Sprintf("layer %s: %d outlier(s) beyond %.0f scaled MADs from median, e.g. %v", layer, lo.OutlierCount, outlierMADs, lo.Examples))
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
