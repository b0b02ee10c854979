package reference

// DefaultPositiveControls returns the curated positive-control set:
// established rare-disease genes that a sound scoring methodology must rank
// near the top. Symbols appearing under more than one source are intentional;
// per-source breakdowns rely on the preserved provenance.
func DefaultPositiveControls() Set {
	return Set{
		Name: "positive_controls",
		Entries: []Entry{
			{Symbol: "FBN1", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "FBN1", Source: "ClinVar", Confidence: ConfidenceHigh},
			{Symbol: "CFTR", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "CFTR", Source: "ClinVar", Confidence: ConfidenceHigh},
			{Symbol: "DMD", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "SCN1A", Source: "ClinVar", Confidence: ConfidenceHigh},
			{Symbol: "SCN1A", Source: "Orphanet", Confidence: ConfidenceHigh},
			{Symbol: "MECP2", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "PAH", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "HBB", Source: "ClinVar", Confidence: ConfidenceHigh},
			{Symbol: "SMN1", Source: "Orphanet", Confidence: ConfidenceHigh},
			{Symbol: "COL1A1", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "COL1A1", Source: "ClinVar", Confidence: ConfidenceHigh},
			{Symbol: "TSC1", Source: "Orphanet", Confidence: ConfidenceHigh},
			{Symbol: "TSC2", Source: "Orphanet", Confidence: ConfidenceHigh},
			{Symbol: "NF1", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "PKD1", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "ATP7B", Source: "ClinVar", Confidence: ConfidenceHigh},
			{Symbol: "GBA1", Source: "Orphanet", Confidence: ConfidenceHigh},
			{Symbol: "LMNA", Source: "OMIM", Confidence: ConfidenceHigh},
			{Symbol: "RYR1", Source: "ClinVar", Confidence: ConfidenceHigh},
		},
	}
}

// DefaultNegativeControls returns the curated negative-control set:
// ubiquitously expressed housekeeping genes expected to rank low. A high rank
// for these indicates the composite rewards expression breadth rather than
// disease relevance.
func DefaultNegativeControls() Set {
	return Set{
		Name: "negative_controls",
		Entries: []Entry{
			{Symbol: "ACTB", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "GAPDH", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "GAPDH", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
			{Symbol: "B2M", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "TUBB", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "RPL13A", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
			{Symbol: "RPS18", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
			{Symbol: "UBC", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "PPIA", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "PPIA", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
			{Symbol: "TBP", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "HPRT1", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
			{Symbol: "GUSB", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
			{Symbol: "PGK1", Source: "Eisenberg2013", Confidence: ConfidenceHigh},
			{Symbol: "HMBS", Source: "HRT-Atlas", Confidence: ConfidenceHigh},
		},
	}
}
