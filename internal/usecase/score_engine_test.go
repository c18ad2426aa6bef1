package usecase

import (
	"encoding/json"
	"testing"

	"FinScore/internal/domain/models"
	"FinScore/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func risingCandles(n int) []models.Candle {
	out := make([]models.Candle, n)
	for i := range out {
		c := 100 + float64(i)
		out[i] = models.Candle{Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000 + float64(i%3)*50}
	}
	return out
}

func fullInput() models.ScoringInput {
	return models.ScoringInput{
		Symbol:  "AAPL",
		Candles: risingCandles(80),
		Fundamentals: models.FinancialData{
			models.FieldNetIncome:        20,
			models.FieldTotalEquity:      100,
			models.FieldTotalAssets:      200,
			models.FieldTotalLiabilities: 80,
		},
		Sentiment: &models.SentimentResult{Status: models.SentimentSuccess, AverageSentiment: 0.4},
	}
}

func newTestEngine(t *testing.T, mode string, opts ...EngineOption) *Engine {
	t.Helper()
	cfg := config.Default().Scoring
	cfg.WeightMode = mode
	e, err := NewEngine(cfg, opts...)
	require.NoError(t, err)
	return e
}

type panicScorer struct{}

func (panicScorer) Category() models.Category { return models.CategoryTechnical }

func (panicScorer) Score(models.ScoringInput) (models.CategoryScore, error) {
	panic("boom")
}

func TestEngineScoreIsDeterministic(t *testing.T) {
	e := newTestEngine(t, config.WeightModeAdaptive)
	a, err := json.Marshal(e.Score(fullInput()))
	require.NoError(t, err)
	b, err := json.Marshal(e.Score(fullInput()))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEngineScoreFullInput(t *testing.T) {
	e := newTestEngine(t, config.WeightModeAdaptive)
	rep := e.Score(fullInput())

	assert.Empty(t, rep.Faults)
	assert.Equal(t, "AAPL", rep.Symbol)
	assert.Equal(t, config.WeightModeAdaptive, rep.WeightMode)
	assert.InDelta(t, 1.0, rep.Weights.Sum(), 1e-9)
	require.NotNil(t, rep.MarketState)
	require.NotNil(t, rep.RiskMetrics)
	assert.Len(t, rep.CategoryScores, 4)
	assert.Contains(t, rep.RawValues, "roe")
	assert.Contains(t, rep.RawValues, "ma_trend")
	assert.Contains(t, rep.NormalizedScores, "social_score")
	assert.Contains(t, rep.RiskScores, "sharpe")
	assert.Contains(t, rep.TechnicalTrends, "adx_trend")
	assert.NotEqual(t, models.BandError, rep.Band)

	want := 0.0
	for _, c := range models.Categories {
		want += rep.CategoryScores[c] * rep.Weights.Weight(c)
	}
	assert.InDelta(t, want, rep.FinalScore, 1e-12)
}

func TestEngineScorerPanicFallsBack(t *testing.T) {
	e := newTestEngine(t, config.WeightModeStatic, WithScorers(panicScorer{}))
	rep := e.Score(fullInput())

	require.Len(t, rep.Faults, 1)
	assert.Equal(t, StageScoring, rep.Faults[0].Stage)
	assert.Equal(t, models.CategoryTechnical, rep.Faults[0].Category)
	assert.Equal(t, 0.0, rep.CategoryScores[models.CategoryTechnical])
	assert.Equal(t, config.DefaultWeights(), rep.Weights)
}

func TestEngineShortHistoryUsesBaseWeights(t *testing.T) {
	e := newTestEngine(t, config.WeightModeAdaptive)
	in := fullInput()
	in.Candles = in.Candles[:5]
	rep := e.Score(in)

	require.Len(t, rep.Faults, 1)
	assert.Equal(t, StageWeights, rep.Faults[0].Stage)
	assert.Equal(t, config.DefaultWeights(), rep.Weights)
	assert.Nil(t, rep.MarketState)

	_, err := json.Marshal(rep)
	require.NoError(t, err)
}

func TestEngineEmptyInput(t *testing.T) {
	e := newTestEngine(t, config.WeightModeStatic)
	rep := e.Score(models.ScoringInput{Symbol: "X"})
	assert.Empty(t, rep.Faults)
	assert.Equal(t, 0.0, rep.FinalScore)
	assert.Equal(t, models.BandBearish, rep.Band)
}

func TestEngineZeroEquity(t *testing.T) {
	e := newTestEngine(t, config.WeightModeStatic)
	in := fullInput()
	in.Fundamentals[models.FieldTotalEquity] = 0
	rep := e.Score(in)
	assert.Empty(t, rep.Faults)
	assert.Equal(t, 0.0, rep.RawValues["roe"])
}

func TestEngineLegacyMode(t *testing.T) {
	e := newTestEngine(t, config.WeightModeLegacy)
	rep := e.Score(fullInput())
	assert.Equal(t, config.WeightModeLegacy, rep.WeightMode)
	assert.InDelta(t, 1.0, rep.Weights.Sum(), 1e-9)
	require.NotNil(t, rep.MarketState)
}

func TestNewEngineUnknownMode(t *testing.T) {
	cfg := config.Default().Scoring
	cfg.WeightMode = "random"
	_, err := NewEngine(cfg)
	require.Error(t, err)
}

func TestInputFromRequestSummarisesMessages(t *testing.T) {
	e := newTestEngine(t, config.WeightModeStatic)
	msgs := make([]models.SocialMessage, 10)
	for i := range msgs {
		msgs[i] = models.SocialMessage{Label: "Bullish"}
	}
	in := e.InputFromRequest(models.ScoreRequest{Symbol: "X", Messages: msgs})
	require.NotNil(t, in.Sentiment)
	assert.Equal(t, models.SentimentSuccess, in.Sentiment.Status)
	assert.Equal(t, models.SignalBullish, in.Sentiment.Signal)
}
