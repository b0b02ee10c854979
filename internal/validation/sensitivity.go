package validation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"generank/domain/gene"
	"generank/domain/scoring"
	"generank/internal/aggregate"
)

// Default sensitivity parameters.
const (
	DefaultTopN       = 100
	DefaultMinOverlap = 10
	DefaultStableRho  = 0.85
)

// DefaultDeltas returns the symmetric perturbation offsets applied to each
// layer weight.
func DefaultDeltas() []float64 {
	return []float64{-0.10, -0.05, 0.05, 0.10}
}

// Perturbation records the outcome of one (layer, delta) weight perturbation.
// Rho is nil when the baseline/perturbed top-N overlap was too small for a
// meaningful correlation; such perturbations are excluded from aggregate
// statistics and counted neither stable nor unstable.
type Perturbation struct {
	Layer        gene.LayerName
	Delta        float64
	Weights      scoring.Weights
	Rho          *float64
	OverlapCount int
	Stable       bool
}

// LayerSummary aggregates rho across one layer's perturbations.
type LayerSummary struct {
	Layer        gene.LayerName
	MeanRho      *float64
	DefinedCount int
}

// SensitivityResult quantifies how much the composite ranking moves under
// small weight perturbations.
type SensitivityResult struct {
	TopN               int
	StabilityThreshold float64
	Perturbations      []Perturbation
	PerLayer           []LayerSummary
	MinRho             *float64
	MaxRho             *float64
	MeanRho            *float64
	StableCount        int
	UnstableCount      int
	UndefinedCount     int
	MostSensitiveLayer gene.LayerName
	MostRobustLayer    gene.LayerName
	OverallStable      bool
	Reason             string
}

// SensitivityAnalyzer re-runs the composite aggregation under perturbed
// weight configurations and measures rank agreement with the baseline.
type SensitivityAnalyzer struct {
	Deltas      []float64
	TopN        int
	MinOverlap  int
	StableRho   float64
	Parallelism int

	log zerolog.Logger
}

// NewSensitivityAnalyzer returns an analyzer with the default parameters.
func NewSensitivityAnalyzer(log zerolog.Logger) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{
		Deltas:      DefaultDeltas(),
		TopN:        DefaultTopN,
		MinOverlap:  DefaultMinOverlap,
		StableRho:   DefaultStableRho,
		Parallelism: runtime.GOMAXPROCS(0),
		log:         log.With().Str("component", "sensitivity").Logger(),
	}
}

// Run performs one full aggregation per (layer, delta) pair against the same
// in-memory evidence. Perturbations are independent, so they execute on a
// bounded errgroup; results land in pre-assigned slots and the summary is
// computed only after every perturbation finished.
func (a *SensitivityAnalyzer) Run(ctx context.Context, ev *gene.Evidence, baseline scoring.Weights) (SensitivityResult, error) {
	baseRecords, err := aggregate.Score(ev, baseline)
	if err != nil {
		return SensitivityResult{}, err
	}
	baseTop := aggregate.TopN(baseRecords, a.TopN)
	baseScores := make(map[gene.Symbol]float64, len(baseTop))
	for _, rec := range baseTop {
		if rec.Composite.Present {
			baseScores[rec.Symbol] = rec.Composite.Value
		}
	}

	layers := gene.Layers()
	perturbations := make([]Perturbation, len(layers)*len(a.Deltas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Parallelism)
	for i, layer := range layers {
		for j, delta := range a.Deltas {
			slot := i*len(a.Deltas) + j
			layer, delta := layer, delta
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				p, err := a.perturbOnce(ev, baseline, baseScores, layer, delta)
				if err != nil {
					return err
				}
				perturbations[slot] = p
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return SensitivityResult{}, err
	}

	return a.summarize(perturbations), nil
}

func (a *SensitivityAnalyzer) perturbOnce(ev *gene.Evidence, baseline scoring.Weights, baseScores map[gene.Symbol]float64, layer gene.LayerName, delta float64) (Perturbation, error) {
	weights, err := baseline.Perturb(layer, delta)
	if err != nil {
		return Perturbation{}, err
	}

	records, err := aggregate.Score(ev, weights)
	if err != nil {
		return Perturbation{}, err
	}

	p := Perturbation{Layer: layer, Delta: delta, Weights: weights}

	var baseVals, perturbedVals []float64
	for _, rec := range aggregate.TopN(records, a.TopN) {
		if !rec.Composite.Present {
			continue
		}
		baseVal, ok := baseScores[rec.Symbol]
		if !ok {
			continue
		}
		p.OverlapCount++
		baseVals = append(baseVals, baseVal)
		perturbedVals = append(perturbedVals, rec.Composite.Value)
	}

	if p.OverlapCount < a.MinOverlap {
		a.log.Debug().
			Str("layer", string(layer)).
			Float64("delta", delta).
			Int("overlap", p.OverlapCount).
			Msg("insufficient top-N overlap, rho undefined")
		return p, nil
	}

	rho, ok := spearmanRho(baseVals, perturbedVals)
	if !ok {
		return p, nil
	}
	p.Rho = &rho
	p.Stable = rho >= a.StableRho
	return p, nil
}

func (a *SensitivityAnalyzer) summarize(perturbations []Perturbation) SensitivityResult {
	res := SensitivityResult{
		TopN:               a.TopN,
		StabilityThreshold: a.StableRho,
		Perturbations:      perturbations,
		OverallStable:      true,
	}

	sum := 0.0
	defined := 0
	for _, p := range perturbations {
		if p.Rho == nil {
			res.UndefinedCount++
			continue
		}
		rho := *p.Rho
		defined++
		sum += rho
		if res.MinRho == nil || rho < *res.MinRho {
			v := rho
			res.MinRho = &v
		}
		if res.MaxRho == nil || rho > *res.MaxRho {
			v := rho
			res.MaxRho = &v
		}
		if p.Stable {
			res.StableCount++
		} else {
			res.UnstableCount++
			res.OverallStable = false
		}
	}

	if defined == 0 {
		res.OverallStable = false
		res.Reason = "no perturbation produced sufficient top-N overlap; rank stability cannot be assessed"
		return res
	}
	mean := sum / float64(defined)
	res.MeanRho = &mean

	res.PerLayer = perLayerSummaries(perturbations)
	res.MostSensitiveLayer, res.MostRobustLayer = extremeLayers(res.PerLayer)

	if !res.OverallStable {
		res.Reason = fmt.Sprintf("%d of %d computed perturbations fell below rho %.2f; the %s layer moves the ranking the most",
			res.UnstableCount, defined, a.StableRho, res.MostSensitiveLayer)
	}
	return res
}

func perLayerSummaries(perturbations []Perturbation) []LayerSummary {
	out := make([]LayerSummary, 0, gene.LayerCount)
	for _, layer := range gene.Layers() {
		s := LayerSummary{Layer: layer}
		sum := 0.0
		for _, p := range perturbations {
			if p.Layer != layer || p.Rho == nil {
				continue
			}
			sum += *p.Rho
			s.DefinedCount++
		}
		if s.DefinedCount > 0 {
			mean := sum / float64(s.DefinedCount)
			s.MeanRho = &mean
		}
		out = append(out, s)
	}
	return out
}

// extremeLayers identifies the most-sensitive (lowest mean rho) and
// most-robust (highest mean rho) layers among those with a defined mean.
func extremeLayers(summaries []LayerSummary) (sensitive, robust gene.LayerName) {
	var lo, hi *float64
	for _, s := range summaries {
		if s.MeanRho == nil {
			continue
		}
		if lo == nil || *s.MeanRho < *lo {
			lo = s.MeanRho
			sensitive = s.Layer
		}
		if hi == nil || *s.MeanRho > *hi {
			hi = s.MeanRho
			robust = s.Layer
		}
	}
	return sensitive, robust
}
