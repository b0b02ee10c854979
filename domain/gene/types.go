package gene

// ID is the stable gene identifier used as the join key across all evidence
// layers (Ensembl gene ID in the production store).
type ID string

func (id ID) String() string { return string(id) }

// Symbol is the HGNC gene symbol. Reference gene sets are curated by symbol,
// so validation joins on Symbol rather than ID.
type Symbol string

func (s Symbol) String() string { return string(s) }

// LayerName identifies one independent evidence source contributing a
// normalized [0,1] score per gene.
type LayerName string

const (
	LayerGeneticAssociation    LayerName = "genetic_association"
	LayerPhenotypeSimilarity   LayerName = "phenotype_similarity"
	LayerConstraint            LayerName = "constraint"
	LayerExpressionSpecificity LayerName = "expression_specificity"
	LayerPathwayProximity      LayerName = "pathway_proximity"
	LayerLiterature            LayerName = "literature"
)

// LayerCount is the number of evidence layers in the scoring model.
const LayerCount = 6

// Layers returns the canonical layer ordering. Aggregation, QC and reporting
// all iterate layers in this order so output is deterministic.
func Layers() []LayerName {
	return []LayerName{
		LayerGeneticAssociation,
		LayerPhenotypeSimilarity,
		LayerConstraint,
		LayerExpressionSpecificity,
		LayerPathwayProximity,
		LayerLiterature,
	}
}

// KnownLayer reports whether name is part of the layer registry.
func KnownLayer(name LayerName) bool {
	for _, l := range Layers() {
		if l == name {
			return true
		}
	}
	return false
}

// Score is a normalized evidence value that may be absent. Absence is a
// first-class state: a gene with no evidence in a layer is distinct from a
// gene scored 0.0 there, and the two must never be conflated.
type Score struct {
	Value   float64
	Present bool
}

// Present wraps a value as a present score.
func Present(v float64) Score {
	return Score{Value: v, Present: true}
}

// Absent returns the absent score.
func Absent() Score {
	return Score{}
}

// QualityFlag is a coarse evidence-coverage bucket derived from how many
// layers scored a gene.
type QualityFlag string

const (
	QualitySufficient QualityFlag = "sufficient_evidence"
	QualityModerate   QualityFlag = "moderate_evidence"
	QualitySparse     QualityFlag = "sparse_evidence"
	QualityNone       QualityFlag = "no_evidence"
)

// QualityForCount maps an evidence count onto its quality flag using the
// fixed 4/2/1/0 thresholds.
func QualityForCount(n int) QualityFlag {
	switch {
	case n >= 4:
		return QualitySufficient
	case n >= 2:
		return QualityModerate
	case n >= 1:
		return QualitySparse
	default:
		return QualityNone
	}
}

// Info is one gene of the evidence universe.
type Info struct {
	ID     ID
	Symbol Symbol
}

// Evidence is the in-memory evidence universe for one scoring run: the full
// gene universe plus, per layer, the present scores keyed by gene ID. Genes
// missing from a layer's map have no evidence in that layer.
type Evidence struct {
	Genes  []Info
	Scores map[LayerName]map[ID]float64
}

// LayerScore looks up the score for a gene in a layer.
func (e *Evidence) LayerScore(layer LayerName, id ID) Score {
	present, ok := e.Scores[layer]
	if !ok {
		return Absent()
	}
	v, ok := present[id]
	if !ok {
		return Absent()
	}
	return Present(v)
}

// Record is one scored gene: the canonical output of a composite aggregation
// run. Records are immutable once produced; a new run supersedes them
// wholesale rather than mutating in place.
type Record struct {
	GeneID        ID
	Symbol        Symbol
	LayerScores   map[LayerName]Score
	Contributions map[LayerName]Score
	EvidenceCount int
	Composite     Score
	Quality       QualityFlag
}
