package analytics

import (
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
		out[i] = models.Candle{Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	return out
}

func TestFundamentalScorer(t *testing.T) {
	s := NewFundamentalScorer(config.DefaultWeights(), newTestNormalizer(0.05))
	res, err := s.Score(models.ScoringInput{Fundamentals: models.FinancialData{
		models.FieldNetIncome:        20,
		models.FieldTotalEquity:      100,
		models.FieldTotalAssets:      100,
		models.FieldTotalLiabilities: 50,
	}})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, res.Raw["roe"], 1e-12)
	assert.InDelta(t, 0.5, res.Normalized["roe"], 1e-12)
	assert.InDelta(t, 0.5, res.Normalized["debt_ratio"], 1e-12)
	assert.Equal(t, 0.0, res.Normalized["fcf"])
	assert.InDelta(t, 0.4*0.5+0.3*0.5, res.Score, 1e-12)
}

func TestFundamentalScorerZeroEquity(t *testing.T) {
	s := NewFundamentalScorer(config.DefaultWeights(), newTestNormalizer(0.05))
	res, err := s.Score(models.ScoringInput{Fundamentals: models.FinancialData{
		models.FieldNetIncome:   20,
		models.FieldTotalEquity: 0,
	}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Raw["roe"])
	// debt ratio 0 scores as 1 - 0
	assert.InDelta(t, 0.3, res.Score, 1e-12)
}

func TestFundamentalScorerMissingData(t *testing.T) {
	s := NewFundamentalScorer(config.DefaultWeights(), newTestNormalizer(0.05))
	res, err := s.Score(models.ScoringInput{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
}

func TestTechnicalScorer(t *testing.T) {
	s := NewTechnicalScorer(config.DefaultWeights(), newTestNormalizer(0.05), config.Default().Scoring.Indicators)
	res, err := s.Score(models.ScoringInput{Candles: risingCandles(60)})
	require.NoError(t, err)

	maTrend := 157/149.5 - 1
	assert.InDelta(t, maTrend, res.Raw["ma_trend"], 1e-12)
	assert.InDelta(t, 2.0, res.Raw["atr"], 1e-9)
	for _, k := range []string{"ma5", "ma10", "ma20", "ma60", "rsi", "bollinger_upper", "bollinger_lower"} {
		assert.Contains(t, res.Raw, k)
	}
	// atr, obv and adx all saturate at 1
	assert.InDelta(t, 0.4*maTrend+0.6, res.Score, 1e-9)
	assert.Len(t, res.Trends, 3)
	assert.InDelta(t, 0.0, res.Trends["atr_trend"], 1e-9)
}

func TestTechnicalScorerNoCandles(t *testing.T) {
	s := NewTechnicalScorer(config.DefaultWeights(), newTestNormalizer(0.05), config.Default().Scoring.Indicators)
	res, err := s.Score(models.ScoringInput{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
}

func TestRiskScorer(t *testing.T) {
	s := NewRiskScorer(config.DefaultWeights(), newTestNormalizer(0.05), config.Default().Scoring.Risk)
	res, err := s.Score(models.ScoringInput{Risk: &models.RiskReport{VaR95: 0.05, Sharpe: 1, MaxDrawdown: 0.25}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Normalized["var"], 1e-12)
	assert.InDelta(t, 1.0, res.Normalized["sharpe"], 1e-12)
	assert.InDelta(t, 0.5, res.Normalized["max_drawdown"], 1e-12)
	assert.InDelta(t, 0.3*0.5+0.3*1+0.4*0.5, res.Score, 1e-12)
}

func TestRiskScorerClamps(t *testing.T) {
	s := NewRiskScorer(config.DefaultWeights(), newTestNormalizer(0.05), config.Default().Scoring.Risk)
	res, err := s.Score(models.ScoringInput{Risk: &models.RiskReport{VaR95: 0.3, Sharpe: -5, MaxDrawdown: 0.9}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
}

func TestSentimentScorer(t *testing.T) {
	s := NewSentimentScorer(config.DefaultWeights(), newTestNormalizer(0.05))
	adj := 0.2
	res, err := s.Score(models.ScoringInput{Sentiment: &models.SentimentResult{
		Status:                  models.SentimentSuccess,
		AverageSentiment:        0.5,
		VolumeAdjustedSentiment: &adj,
	}})
	require.NoError(t, err)
	assert.InDelta(t, 0.6*0.5+0.4*0.2, res.Score, 1e-12)
}

func TestSentimentScorerNotSuccess(t *testing.T) {
	s := NewSentimentScorer(config.DefaultWeights(), newTestNormalizer(0.05))
	for _, st := range []models.SentimentStatus{models.SentimentInsufficientData, models.SentimentNoSentiment, models.SentimentError} {
		res, err := s.Score(models.ScoringInput{Sentiment: &models.SentimentResult{Status: st, AverageSentiment: 1}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.Score, string(st))
	}
}
