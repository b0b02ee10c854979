package reference

import (
	"sort"

	"generank/domain/gene"
)

// ConfidenceHigh marks curated reference entries. All shipped entries are
// high-confidence; the field exists so partially curated sets can be loaded
// later without a schema change.
const ConfidenceHigh = "HIGH"

// Entry is one curated reference gene with its provenance source. The same
// symbol may legitimately appear under multiple sources within a set;
// provenance is preserved, not deduplicated.
type Entry struct {
	Symbol     gene.Symbol
	Source     string
	Confidence string
}

// Set is a curated reference gene list used to sanity-check the scoring
// methodology: positive controls are expected to rank high, negative
// (housekeeping) controls low.
type Set struct {
	Name    string
	Entries []Entry
}

// UniqueSymbols returns the deduplicated symbols of the set, sorted for
// deterministic iteration.
func (s Set) UniqueSymbols() []gene.Symbol {
	seen := make(map[gene.Symbol]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		seen[e.Symbol] = struct{}{}
	}
	symbols := make([]gene.Symbol, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Sources returns the distinct provenance source tags of the set, sorted.
func (s Set) Sources() []string {
	seen := make(map[string]struct{})
	for _, e := range s.Entries {
		seen[e.Source] = struct{}{}
	}
	sources := make([]string, 0, len(seen))
	for src := range seen {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources
}

// BySource returns the entries tagged with one provenance source.
func (s Set) BySource(source string) []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Source == source {
			out = append(out, e)
		}
	}
	return out
}
