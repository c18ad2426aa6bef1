package analytics

import (
	"sort"

	"FinScore/internal/domain/models"
)

// weightedSum walks factors in key order so the result is reproducible.
// Factors without a score contribute nothing.
func weightedSum(factors map[string]float64, scores map[string]float64) float64 {
	keys := make([]string, 0, len(factors))
	for k := range factors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	total := 0.0
	for _, k := range keys {
		total += scores[k] * factors[k]
	}
	return total
}

func emptyScore(c models.Category) models.CategoryScore {
	return models.CategoryScore{
		Category:   c,
		Raw:        map[string]float64{},
		Normalized: map[string]float64{},
	}
}

func factorsOf(w models.CategoryWeights, c models.Category) map[string]float64 {
	return w.Clone()[c].Factors
}
