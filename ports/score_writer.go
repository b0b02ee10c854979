package ports

import (
	"context"

	"generank/domain/core"
	"generank/domain/gene"
)

// ScoreWriter persists the scored-gene dataset of one run. A run is a full
// recompute: the writer replaces the previous dataset wholesale rather than
// updating rows in place.
type ScoreWriter interface {
	WriteScores(ctx context.Context, runID core.RunID, records []gene.Record) error
}
