package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: reject the run before any computation starts.
	ErrInvalidWeights = errors.New("invalid scoring weights")
	ErrUnknownLayer   = errors.New("unknown evidence layer")

	// Store errors: the evidence store query itself failed. These are the
	// only fatal errors in the core; QC and validation failures are carried
	// as advisory result values instead.
	ErrStoreQuery = errors.New("evidence store query failed")

	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// NewWeightSumError reports a weight configuration whose total deviates from 1.0.
func NewWeightSumError(sum float64) error {
	return fmt.Errorf("%w: weights sum to %.8f, expected 1.0 within 1e-6", ErrInvalidWeights, sum)
}

// NewWeightRangeError reports a single weight outside [0,1].
func NewWeightRangeError(layer string, value float64) error {
	return fmt.Errorf("%w: weight for %s is %.6f, expected [0,1]", ErrInvalidWeights, layer, value)
}

// NewUnknownLayerError reports a layer name that is not part of the layer registry.
func NewUnknownLayerError(layer string) error {
	return fmt.Errorf("%w: %q", ErrUnknownLayer, layer)
}

// NewStoreQueryError wraps a store failure with the query context. The cause
// stays in the wrap chain so callers can match driver errors with errors.Is.
func NewStoreQueryError(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreQuery, operation, err)
}

// Error checking helpers
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidWeights) || errors.Is(err, ErrUnknownLayer)
}

func IsStoreError(err error) bool {
	return errors.Is(err, ErrStoreQuery)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
