package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"generank/domain/core"
	"generank/domain/gene"
)

// ScoreWriter persists the scored dataset of one run. Each run is a full
// recompute, so the previous dataset is replaced wholesale inside one
// transaction: readers always see a complete dataset from a single run.
type ScoreWriter struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// NewScoreWriter creates a score writer.
func NewScoreWriter(db *sqlx.DB, log zerolog.Logger) *ScoreWriter {
	return &ScoreWriter{db: db, log: log.With().Str("component", "score_writer").Logger()}
}

// WriteScores replaces the gene_scores table with the given records.
func (w *ScoreWriter) WriteScores(ctx context.Context, runID core.RunID, records []gene.Record) error {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.NewStoreQueryError("begin score write", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gene_scores`); err != nil {
		return core.NewStoreQueryError("clear previous scores", err)
	}

	query := insertQuery()
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query, insertArgs(runID, rec)...); err != nil {
			return core.NewStoreQueryError("insert score for "+rec.GeneID.String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.NewStoreQueryError("commit score write", err)
	}

	w.log.Info().Str("run_id", runID.String()).Int("genes", len(records)).Msg("scored dataset persisted")
	return nil
}

// insertQuery builds the insert statement from the canonical layer order:
// one score and one contribution column per layer, both nullable.
func insertQuery() string {
	cols := []string{"run_id", "gene_id", "gene_symbol", "evidence_count", "composite_score", "quality_flag"}
	for _, layer := range gene.Layers() {
		cols = append(cols, "score_"+string(layer), "contribution_"+string(layer))
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(`INSERT INTO gene_scores (%s) VALUES (%s)`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}

func insertArgs(runID core.RunID, rec gene.Record) []interface{} {
	args := []interface{}{
		runID.String(),
		rec.GeneID.String(),
		rec.Symbol.String(),
		rec.EvidenceCount,
		nullable(rec.Composite),
		string(rec.Quality),
	}
	for _, layer := range gene.Layers() {
		args = append(args, nullable(rec.LayerScores[layer]), nullable(rec.Contributions[layer]))
	}
	return args
}

// nullable maps an absent score to SQL NULL, never to zero.
func nullable(s gene.Score) sql.NullFloat64 {
	return sql.NullFloat64{Float64: s.Value, Valid: s.Present}
}
