package analytics

import (
	"math"
	"strings"
	"testing"

	"FinScore/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equalWeights() models.CategoryWeights {
	w := models.CategoryWeights{}
	for _, c := range models.Categories {
		w[c] = models.CategoryWeight{Weight: 0.25}
	}
	return w
}

func TestAggregate(t *testing.T) {
	scores := map[models.Category]float64{
		models.CategoryFundamental: 0.9,
		models.CategoryTechnical:   0.5,
		models.CategoryRisk:        0.8,
		models.CategorySentiment:   0.0,
	}
	agg, err := Aggregate(scores, equalWeights())
	require.NoError(t, err)
	assert.InDelta(t, 0.55, agg.FinalScore, 1e-12)
	assert.Equal(t, models.BandNeutralLeaningBullish, agg.Band)
	assert.True(t, strings.HasPrefix(agg.Interpretation, "neutral leaning bullish"))
}

func TestAggregateScrubsNaN(t *testing.T) {
	scores := map[models.Category]float64{
		models.CategoryFundamental: math.NaN(),
		models.CategoryTechnical:   math.Inf(1),
		models.CategoryRisk:        0.8,
	}
	agg, err := Aggregate(scores, equalWeights())
	require.NoError(t, err)
	assert.InDelta(t, 0.2, agg.FinalScore, 1e-12)
	assert.Equal(t, 0.0, agg.CategoryScores[models.CategoryFundamental])
	assert.Equal(t, 0.0, agg.CategoryScores[models.CategoryTechnical])
	assert.Len(t, agg.CategoryScores, 4)
}

func TestAggregateNonFiniteWeight(t *testing.T) {
	w := equalWeights()
	w[models.CategoryRisk] = models.CategoryWeight{Weight: math.NaN()}
	agg, err := Aggregate(map[models.Category]float64{models.CategoryRisk: 1}, w)
	require.Error(t, err)
	assert.Equal(t, models.BandError, agg.Band)
	assert.Equal(t, "calculation error", agg.Interpretation)
	assert.Equal(t, 0.0, agg.FinalScore)
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Band
	}{
		{0.81, models.BandStrongBullish},
		{0.8, models.BandBullish},
		{0.6, models.BandNeutralLeaningBullish},
		{0.4, models.BandNeutral},
		{0.2, models.BandNeutralLeaningBearish},
		{0.01, models.BandNeutralLeaningBearish},
		{0, models.BandBearish},
		{-0.3, models.BandBearish},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandOf(tt.score), "score %v", tt.score)
	}
}

func TestInterpretNotesHeavyWeights(t *testing.T) {
	w := models.CategoryWeights{
		models.CategoryFundamental: {Weight: 0.55},
		models.CategoryTechnical:   {Weight: 0.45},
	}
	got := Interpret(models.BandNeutral, w)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "fundamental")
	assert.Contains(t, lines[2], "technical")
}
