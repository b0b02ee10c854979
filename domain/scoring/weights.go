package scoring

import (
	"fmt"
	"math"

	"generank/domain/core"
	"generank/domain/gene"
)

// SumTolerance is the allowed deviation of the weight total from 1.0.
const SumTolerance = 1e-6

// Weights is an immutable weight configuration over the six evidence layers.
// Instances are only obtainable through New (or Perturb, which revalidates),
// so a Weights value in hand always satisfies the sum invariant. Weights are
// passed by parameter into every aggregation call; there is no ambient or
// global weight state.
type Weights struct {
	byLayer map[gene.LayerName]float64
}

// New validates and constructs a weight configuration. Every registered layer
// must be assigned a weight in [0,1] and the total must equal 1.0 within
// SumTolerance. Validation failures fail fast, before any join or scoring.
func New(byLayer map[gene.LayerName]float64) (Weights, error) {
	if len(byLayer) != gene.LayerCount {
		return Weights{}, fmt.Errorf("%w: got %d layers, expected %d", core.ErrInvalidWeights, len(byLayer), gene.LayerCount)
	}

	sum := 0.0
	for _, layer := range gene.Layers() {
		w, ok := byLayer[layer]
		if !ok {
			return Weights{}, fmt.Errorf("%w: missing weight for layer %s", core.ErrInvalidWeights, layer)
		}
		if w < 0 || w > 1 {
			return Weights{}, core.NewWeightRangeError(string(layer), w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > SumTolerance {
		return Weights{}, core.NewWeightSumError(sum)
	}

	copied := make(map[gene.LayerName]float64, gene.LayerCount)
	for layer, w := range byLayer {
		copied[layer] = w
	}
	return Weights{byLayer: copied}, nil
}

// Default returns the production weight configuration. Genetic association
// and phenotype similarity carry the most weight; literature the least.
func Default() Weights {
	w, err := New(map[gene.LayerName]float64{
		gene.LayerGeneticAssociation:    0.25,
		gene.LayerPhenotypeSimilarity:   0.20,
		gene.LayerConstraint:            0.15,
		gene.LayerExpressionSpecificity: 0.15,
		gene.LayerPathwayProximity:      0.15,
		gene.LayerLiterature:            0.10,
	})
	if err != nil {
		panic(fmt.Sprintf("default weights invalid: %v", err))
	}
	return w
}

// Get returns the weight for a layer. Unregistered layers weigh zero.
func (w Weights) Get(layer gene.LayerName) float64 {
	return w.byLayer[layer]
}

// AsMap returns a copy of the weight assignment.
func (w Weights) AsMap() map[gene.LayerName]float64 {
	out := make(map[gene.LayerName]float64, len(w.byLayer))
	for layer, v := range w.byLayer {
		out[layer] = v
	}
	return out
}

// Perturb produces a new configuration with delta added to one layer's
// weight, clamped to [0,1], and all six weights proportionally renormalized
// so they again sum to 1.0. The receiver is left untouched. A zero delta
// reproduces the baseline within floating-point tolerance.
func (w Weights) Perturb(layer gene.LayerName, delta float64) (Weights, error) {
	if _, ok := w.byLayer[layer]; !ok {
		return Weights{}, core.NewUnknownLayerError(string(layer))
	}

	perturbed := make(map[gene.LayerName]float64, len(w.byLayer))
	for l, v := range w.byLayer {
		perturbed[l] = v
	}
	perturbed[layer] = clamp01(perturbed[layer] + delta)

	total := 0.0
	for _, v := range perturbed {
		total += v
	}
	if total == 0 {
		return Weights{}, fmt.Errorf("%w: perturbation of %s by %+.3f zeroed all weights", core.ErrInvalidWeights, layer, delta)
	}
	for l, v := range perturbed {
		perturbed[l] = v / total
	}

	return New(perturbed)
}

// EqualWithin reports whether two configurations match layer by layer within
// the given tolerance.
func (w Weights) EqualWithin(other Weights, tol float64) bool {
	for _, layer := range gene.Layers() {
		if math.Abs(w.Get(layer)-other.Get(layer)) > tol {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
