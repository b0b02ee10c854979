package postgres

import "generank/domain/gene"

// LayerSpec declares where one evidence layer lives in the store. The
// aggregation query is driven by this list: adding a layer is a data change
// here plus a weight assignment, not new SQL.
type LayerSpec struct {
	Name        gene.LayerName
	Table       string
	KeyColumn   string
	ScoreColumn string
}

// DefaultLayerSpecs returns the production layer-to-table mapping, in the
// canonical layer order.
func DefaultLayerSpecs() []LayerSpec {
	return []LayerSpec{
		{Name: gene.LayerGeneticAssociation, Table: "evidence_genetic_association", KeyColumn: "gene_id", ScoreColumn: "score"},
		{Name: gene.LayerPhenotypeSimilarity, Table: "evidence_phenotype_similarity", KeyColumn: "gene_id", ScoreColumn: "score"},
		{Name: gene.LayerConstraint, Table: "evidence_constraint", KeyColumn: "gene_id", ScoreColumn: "score"},
		{Name: gene.LayerExpressionSpecificity, Table: "evidence_expression_specificity", KeyColumn: "gene_id", ScoreColumn: "score"},
		{Name: gene.LayerPathwayProximity, Table: "evidence_pathway_proximity", KeyColumn: "gene_id", ScoreColumn: "score"},
		{Name: gene.LayerLiterature, Table: "evidence_literature", KeyColumn: "gene_id", ScoreColumn: "score"},
	}
}
