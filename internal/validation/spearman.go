package validation

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// spearmanRho computes Spearman's rank correlation between two paired score
// vectors: both are converted to average ranks (ties share their group's
// mean rank) and the Pearson correlation of the rank vectors is taken.
// Returns false when the correlation is undefined (fewer than 3 pairs or a
// zero-variance rank vector).
func spearmanRho(x, y []float64) (float64, bool) {
	if len(x) != len(y) || len(x) < 3 {
		return 0, false
	}

	xRanks := averageRanks(x)
	yRanks := averageRanks(y)

	if constantSlice(xRanks) || constantSlice(yRanks) {
		return 0, false
	}

	rho := stat.Correlation(xRanks, yRanks, nil)
	// Guard against floating-point spill outside [-1, 1].
	if rho > 1 {
		rho = 1
	} else if rho < -1 {
		rho = -1
	}
	return rho, true
}

// averageRanks converts values to 1-based ranks, assigning tied values the
// average rank of their tie group.
func averageRanks(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		avgRank := (float64(i+1) + float64(j)) / 2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avgRank
		}
		i = j
	}
	return ranks
}

func constantSlice(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}
