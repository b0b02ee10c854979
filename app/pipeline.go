// Package app orchestrates one full scoring and validation run: evidence
// fetch, composite aggregation, persistence, QC, control validation,
// sensitivity analysis and report synthesis.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"generank/domain/core"
	"generank/domain/gene"
	"generank/domain/scoring"
	"generank/internal/aggregate"
	"generank/internal/qc"
	"generank/internal/report"
	"generank/internal/validation"
	"generank/ports"
)

// Result collects every output of one run. QC and validation failures live
// inside these values; a non-nil error from Run means the run itself could
// not complete (store failure or invalid configuration), not that validation
// failed.
type Result struct {
	RunID       core.RunID
	Records     []gene.Record
	QC          qc.Report
	Positive    validation.ControlResult
	Negative    validation.ControlResult
	Sensitivity validation.SensitivityResult
	Report      report.Summary
}

// Pipeline wires the scoring core against the store ports.
type Pipeline struct {
	store       ports.EvidenceStore
	refs        ports.ReferenceGeneReader
	writer      ports.ScoreWriter
	sensitivity *validation.SensitivityAnalyzer
	log         zerolog.Logger
}

// New creates a pipeline. writer may be nil when persistence is not wanted
// (validation-only runs).
func New(store ports.EvidenceStore, refs ports.ReferenceGeneReader, writer ports.ScoreWriter, sensitivity *validation.SensitivityAnalyzer, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:       store,
		refs:        refs,
		writer:      writer,
		sensitivity: sensitivity,
		log:         log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes one full recompute under the given weights.
func (p *Pipeline) Run(ctx context.Context, weights scoring.Weights) (*Result, error) {
	runID := core.NewRunID()
	log := p.log.With().Str("run_id", runID.String()).Logger()

	evidence, err := p.fetchEvidence(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Int("genes", len(evidence.Genes)).Msg("evidence fetched")

	records, err := aggregate.Score(evidence, weights)
	if err != nil {
		return nil, err
	}

	if p.writer != nil {
		if err := p.writer.WriteScores(ctx, runID, records); err != nil {
			return nil, err
		}
	}

	qcReport := qc.Analyze(records)
	log.Info().Bool("qc_passed", qcReport.Passed).
		Int("errors", len(qcReport.Errors)).
		Int("warnings", len(qcReport.Warnings)).
		Msg("quality control finished")

	positiveSet, err := p.refs.PositiveControls(ctx)
	if err != nil {
		return nil, err
	}
	negativeSet, err := p.refs.NegativeControls(ctx)
	if err != nil {
		return nil, err
	}

	ranking := validation.NewRanking(records)
	positive := validation.ValidatePositive(ranking, positiveSet)
	negative := validation.ValidateNegative(ranking, negativeSet)
	log.Info().
		Bool("positive_passed", positive.Passed).
		Bool("negative_passed", negative.Passed).
		Msg("control validation finished")

	sensitivity, err := p.sensitivity.Run(ctx, evidence, weights)
	if err != nil {
		return nil, err
	}
	log.Info().Bool("overall_stable", sensitivity.OverallStable).Msg("sensitivity analysis finished")

	summary := report.Synthesize(qcReport, positive, negative, sensitivity)
	log.Info().Str("verdict", string(summary.Verdict)).Msg("run complete")

	return &Result{
		RunID:       runID,
		Records:     records,
		QC:          qcReport,
		Positive:    positive,
		Negative:    negative,
		Sensitivity: sensitivity,
		Report:      summary,
	}, nil
}

// fetchEvidence performs the only store round trips of a run: the universe
// plus one query per layer. The aggregator and every re-aggregation during
// sensitivity analysis operate on this in-memory snapshot.
func (p *Pipeline) fetchEvidence(ctx context.Context) (*gene.Evidence, error) {
	universe, err := p.store.FetchUniverse(ctx)
	if err != nil {
		return nil, err
	}

	scores := make(map[gene.LayerName]map[gene.ID]float64, gene.LayerCount)
	for _, layer := range gene.Layers() {
		layerScores, err := p.store.FetchLayerScores(ctx, layer)
		if err != nil {
			return nil, err
		}
		scores[layer] = layerScores
	}

	return &gene.Evidence{Genes: universe, Scores: scores}, nil
}
