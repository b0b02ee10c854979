// Package postgres implements the evidence store ports against a relational
// store using sqlx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"generank/domain/core"
	"generank/domain/gene"
)

// EvidenceStore reads the gene universe and per-layer evidence scores.
type EvidenceStore struct {
	db    *sqlx.DB
	specs []LayerSpec
	log   zerolog.Logger
}

// NewEvidenceStore creates a store over the given layer specifications.
func NewEvidenceStore(db *sqlx.DB, specs []LayerSpec, log zerolog.Logger) *EvidenceStore {
	return &EvidenceStore{
		db:    db,
		specs: specs,
		log:   log.With().Str("component", "evidence_store").Logger(),
	}
}

// FetchUniverse returns every gene of the identifier universe.
func (s *EvidenceStore) FetchUniverse(ctx context.Context) ([]gene.Info, error) {
	rows, err := s.db.QueryxContext(ctx, `SELECT gene_id, gene_symbol FROM gene_universe ORDER BY gene_id`)
	if err != nil {
		return nil, core.NewStoreQueryError("fetch universe", err)
	}
	defer rows.Close()

	var universe []gene.Info
	for rows.Next() {
		var id, symbol string
		if err := rows.Scan(&id, &symbol); err != nil {
			return nil, core.NewStoreQueryError("scan universe row", err)
		}
		universe = append(universe, gene.Info{ID: gene.ID(id), Symbol: gene.Symbol(symbol)})
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreQueryError("iterate universe", err)
	}

	s.log.Debug().Int("genes", len(universe)).Msg("fetched gene universe")
	return universe, nil
}

// FetchLayerScores returns the present scores of one layer. NULL scores are
// filtered in SQL so absence never reaches the aggregator as a value.
func (s *EvidenceStore) FetchLayerScores(ctx context.Context, layer gene.LayerName) (map[gene.ID]float64, error) {
	spec, err := s.specFor(layer)
	if err != nil {
		return nil, err
	}

	// Identifiers come from the static spec list, never from caller input.
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s IS NOT NULL`,
		spec.KeyColumn, spec.ScoreColumn, spec.Table, spec.ScoreColumn)

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, core.NewStoreQueryError("fetch layer "+string(layer), err)
	}
	defer rows.Close()

	scores := make(map[gene.ID]float64)
	for rows.Next() {
		var id string
		var score float64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, core.NewStoreQueryError("scan layer row "+string(layer), err)
		}
		scores[gene.ID(id)] = score
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreQueryError("iterate layer "+string(layer), err)
	}

	s.log.Debug().Str("layer", string(layer)).Int("present", len(scores)).Msg("fetched layer scores")
	return scores, nil
}

func (s *EvidenceStore) specFor(layer gene.LayerName) (LayerSpec, error) {
	for _, spec := range s.specs {
		if spec.Name == layer {
			return spec, nil
		}
	}
	return LayerSpec{}, core.NewUnknownLayerError(string(layer))
}
