package analytics

import (
	"fmt"
	"math"
	"strings"

	"FinScore/internal/domain/models"
)

const calculationError = "calculation error"

// Aggregation is the weighted combination of the category scores.
type Aggregation struct {
	FinalScore     float64
	Band           models.Band
	Interpretation string
	CategoryScores map[models.Category]float64
}

// Aggregate computes Σ score×weight over all categories. Non-finite scores
// count as 0. A failure yields the zeroed aggregation with the error band
// alongside the error.
func Aggregate(scores map[models.Category]float64, weights models.CategoryWeights) (agg Aggregation, err error) {
	defer func() {
		if r := recover(); r != nil {
			agg = FailedAggregation()
			err = fmt.Errorf("aggregate: %v", r)
		}
	}()

	clean := make(map[models.Category]float64, len(models.Categories))
	final := 0.0
	for _, c := range models.Categories {
		s := scores[c]
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		clean[c] = s
		final += s * weights.Weight(c)
	}
	if math.IsNaN(final) || math.IsInf(final, 0) {
		return FailedAggregation(), fmt.Errorf("aggregate: non-finite final score")
	}

	band := BandOf(final)
	return Aggregation{
		FinalScore:     final,
		Band:           band,
		Interpretation: Interpret(band, weights),
		CategoryScores: clean,
	}, nil
}

// BandOf buckets a final score; each bound is exclusive.
func BandOf(score float64) models.Band {
	switch {
	case score > 0.8:
		return models.BandStrongBullish
	case score > 0.6:
		return models.BandBullish
	case score > 0.4:
		return models.BandNeutralLeaningBullish
	case score > 0.2:
		return models.BandNeutral
	case score > 0:
		return models.BandNeutralLeaningBearish
	default:
		return models.BandBearish
	}
}

var bandText = map[models.Band]string{
	models.BandStrongBullish:         "strong bullish (very attractive opportunity)",
	models.BandBullish:               "bullish (attractive opportunity)",
	models.BandNeutralLeaningBullish: "neutral leaning bullish (worth considering)",
	models.BandNeutral:               "neutral (wait and see)",
	models.BandNeutralLeaningBearish: "neutral leaning bearish (not recommended for now)",
	models.BandBearish:               "bearish (avoid)",
	models.BandError:                 calculationError,
}

// Interpret renders the band with notes on dominant category weights.
func Interpret(band models.Band, weights models.CategoryWeights) string {
	lines := []string{bandText[band]}
	if weights.Weight(models.CategoryFundamental) > 0.5 {
		lines = append(lines, "fundamental factors carry elevated weight")
	}
	if weights.Weight(models.CategoryTechnical) > 0.4 {
		lines = append(lines, "technical factors carry elevated weight")
	}
	return strings.Join(lines, "\n")
}

// FailedAggregation is the zeroed result reported when aggregation fails.
func FailedAggregation() Aggregation {
	zero := make(map[models.Category]float64, len(models.Categories))
	for _, c := range models.Categories {
		zero[c] = 0
	}
	return Aggregation{
		Band:           models.BandError,
		Interpretation: calculationError,
		CategoryScores: zero,
	}
}
