package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"generank/domain/core"
	"generank/domain/gene"
	"generank/domain/reference"
)

// ReferenceRepository loads curated control gene sets from the store. When a
// set has no rows, the shipped curated defaults are used so a fresh database
// still validates.
type ReferenceRepository struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// NewReferenceRepository creates a reference gene repository.
func NewReferenceRepository(db *sqlx.DB, log zerolog.Logger) *ReferenceRepository {
	return &ReferenceRepository{db: db, log: log.With().Str("component", "reference_repository").Logger()}
}

// PositiveControls loads the positive control set.
func (r *ReferenceRepository) PositiveControls(ctx context.Context) (reference.Set, error) {
	return r.load(ctx, "positive_controls", reference.DefaultPositiveControls)
}

// NegativeControls loads the negative (housekeeping) control set.
func (r *ReferenceRepository) NegativeControls(ctx context.Context) (reference.Set, error) {
	return r.load(ctx, "negative_controls", reference.DefaultNegativeControls)
}

func (r *ReferenceRepository) load(ctx context.Context, setName string, fallback func() reference.Set) (reference.Set, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT gene_symbol, source, confidence FROM reference_genes WHERE set_name = $1 ORDER BY gene_symbol, source`, setName)
	if err != nil {
		return reference.Set{}, core.NewStoreQueryError("fetch reference set "+setName, err)
	}
	defer rows.Close()

	set := reference.Set{Name: setName}
	for rows.Next() {
		var symbol, source, confidence string
		if err := rows.Scan(&symbol, &source, &confidence); err != nil {
			return reference.Set{}, core.NewStoreQueryError("scan reference row "+setName, err)
		}
		set.Entries = append(set.Entries, reference.Entry{
			Symbol:     gene.Symbol(symbol),
			Source:     source,
			Confidence: confidence,
		})
	}
	if err := rows.Err(); err != nil {
		return reference.Set{}, core.NewStoreQueryError("iterate reference set "+setName, err)
	}

	if len(set.Entries) == 0 {
		r.log.Warn().Str("set", setName).Msg("reference table empty, using curated defaults")
		return fallback(), nil
	}
	return set, nil
}
