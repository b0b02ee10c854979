package ports

import (
	"context"

	"generank/domain/gene"
	"generank/domain/reference"
)

// EvidenceStore is the narrow contract the scoring core holds against the
// relational evidence store. The aggregator, QC and validators depend only on
// this interface, never on a concrete store implementation.
type EvidenceStore interface {
	// FetchUniverse returns the full gene universe (id + symbol). Every
	// universe gene is scored, even when absent from all layers.
	FetchUniverse(ctx context.Context) ([]gene.Info, error)

	// FetchLayerScores returns the present scores of one layer keyed by gene
	// ID. Genes missing from the map have no evidence in that layer.
	FetchLayerScores(ctx context.Context, layer gene.LayerName) (map[gene.ID]float64, error)
}

// ReferenceGeneReader loads the curated control gene sets.
type ReferenceGeneReader interface {
	PositiveControls(ctx context.Context) (reference.Set, error)
	NegativeControls(ctx context.Context) (reference.Set, error)
}
