package analytics

import (
	"testing"

	"FinScore/internal/domain/models"
	"FinScore/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(labels ...string) []models.SocialMessage {
	out := make([]models.SocialMessage, len(labels))
	for i, l := range labels {
		out[i] = models.SocialMessage{Label: l}
	}
	return out
}

func TestSummarize(t *testing.T) {
	a := NewSentimentAnalyzer(config.Default().Scoring.Sentiment)
	res := a.Summarize(messages(
		"Bullish", "Bullish", "Bullish", "Bullish", "Bullish", "Bullish",
		"Bearish", "Bearish", "", "",
	))
	assert.Equal(t, models.SentimentSuccess, res.Status)
	assert.Equal(t, 10, res.MessageCount)
	assert.Equal(t, 8, res.SentimentCount)
	assert.InDelta(t, 0.5, res.AverageSentiment, 1e-12)
	assert.InDelta(t, 0.75, res.BullishRatio, 1e-12)
	assert.InDelta(t, 0.25, res.BearishRatio, 1e-12)
	assert.Equal(t, models.SignalNeutral, res.Signal)
}

func TestSummarizeSignals(t *testing.T) {
	a := NewSentimentAnalyzer(config.Default().Scoring.Sentiment)
	bull := make([]string, 10)
	bear := make([]string, 10)
	for i := range bull {
		bull[i] = "Bullish"
		bear[i] = "Bearish"
	}
	assert.Equal(t, models.SignalBullish, a.Summarize(messages(bull...)).Signal)
	assert.Equal(t, models.SignalBearish, a.Summarize(messages(bear...)).Signal)
}

func TestSummarizeInsufficient(t *testing.T) {
	a := NewSentimentAnalyzer(config.Default().Scoring.Sentiment)
	res := a.Summarize(messages("Bullish", "Bearish"))
	assert.Equal(t, models.SentimentInsufficientData, res.Status)
	assert.Equal(t, 2, res.MessageCount)
}

func TestSummarizeNoSentiment(t *testing.T) {
	a := NewSentimentAnalyzer(config.Default().Scoring.Sentiment)
	res := a.Summarize(make([]models.SocialMessage, 12))
	assert.Equal(t, models.SentimentNoSentiment, res.Status)
}

func TestVolumeAdjust(t *testing.T) {
	a := NewSentimentAnalyzer(config.Default().Scoring.Sentiment)
	cs := make([]models.Candle, 7)
	v := 100.0
	for i := range cs {
		cs[i] = models.Candle{Close: 10, Volume: v}
		v *= 1.1
	}
	res := a.VolumeAdjust(cs, models.SentimentResult{Status: models.SentimentSuccess, AverageSentiment: 0.5})
	require.NotNil(t, res.VolumeAdjustedSentiment)
	require.NotNil(t, res.VolumeChange)
	assert.InDelta(t, 0.1, *res.VolumeChange, 1e-9)
	assert.InDelta(t, 0.5*0.7+0.1*0.3, *res.VolumeAdjustedSentiment, 1e-9)
}

func TestVolumeAdjustSkipsFailedSummary(t *testing.T) {
	a := NewSentimentAnalyzer(config.Default().Scoring.Sentiment)
	in := models.SentimentResult{Status: models.SentimentInsufficientData}
	assert.Equal(t, in, a.VolumeAdjust(flatCandles(10, 5), in))
}
