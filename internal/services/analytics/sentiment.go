package analytics

import (
	"fmt"
	"math"
	"strings"

	"FinScore/internal/domain/models"
	"FinScore/internal/services/features"
	"FinScore/pkg/config"

	"gonum.org/v1/gonum/stat"
)

var sentimentWeights = map[string]float64{
	"bullish": 1,
	"bearish": -1,
}

// SentimentAnalyzer summarises labelled social messages and blends the
// result with recent volume changes.
type SentimentAnalyzer struct {
	cfg config.Sentiment
}

func NewSentimentAnalyzer(cfg config.Sentiment) *SentimentAnalyzer {
	return &SentimentAnalyzer{cfg: cfg}
}

// Summarize scores each labelled message (unlabelled ones are skipped) and
// reports mean, spread, bull/bear ratios and a signal.
func (a *SentimentAnalyzer) Summarize(messages []models.SocialMessage) models.SentimentResult {
	if len(messages) < a.cfg.MinMessages {
		return models.SentimentResult{
			Status:       models.SentimentInsufficientData,
			Message:      fmt.Sprintf("need at least %d messages, got %d", a.cfg.MinMessages, len(messages)),
			MessageCount: len(messages),
		}
	}

	scores := make([]float64, 0, len(messages))
	for _, m := range messages {
		label := strings.ToLower(strings.TrimSpace(m.Label))
		if label == "" {
			continue
		}
		scores = append(scores, sentimentWeights[label])
	}
	if len(scores) == 0 {
		return models.SentimentResult{
			Status:       models.SentimentNoSentiment,
			Message:      "no labelled messages",
			MessageCount: len(messages),
		}
	}

	var bull, bear int
	for _, s := range scores {
		switch {
		case s > 0:
			bull++
		case s < 0:
			bear++
		}
	}
	n := float64(len(scores))
	avg := stat.Mean(scores, nil)
	sd := 0.0
	if len(scores) > 1 {
		sd = stat.StdDev(scores, nil)
	}

	return models.SentimentResult{
		Status:           models.SentimentSuccess,
		MessageCount:     len(messages),
		SentimentCount:   len(scores),
		AverageSentiment: avg,
		SentimentStd:     sd,
		BullishRatio:     float64(bull) / n,
		BearishRatio:     float64(bear) / n,
		Signal:           a.signal(avg),
	}
}

func (a *SentimentAnalyzer) signal(avg float64) models.SentimentSignal {
	switch {
	case avg > a.cfg.BullishThreshold:
		return models.SignalBullish
	case avg < a.cfg.BearishThreshold:
		return models.SignalBearish
	default:
		return models.SignalNeutral
	}
}

// VolumeAdjust returns a copy of res with volume_adjusted_sentiment set to
// avg*(1-f) + sign(avg)*meanVolumeChange*f, the mean taken over the last
// VolumeWindow daily volume changes. Non-success results and undefined
// volume changes pass through unchanged.
func (a *SentimentAnalyzer) VolumeAdjust(candles []models.Candle, res models.SentimentResult) models.SentimentResult {
	if res.Status != models.SentimentSuccess {
		return res
	}
	changes := features.PctReturns(models.Volumes(candles))
	if len(changes) > a.cfg.VolumeWindow {
		changes = changes[len(changes)-a.cfg.VolumeWindow:]
	}
	changes = features.DropNaN(changes)
	if len(changes) == 0 {
		return res
	}
	recent := stat.Mean(changes, nil)
	f := a.cfg.VolumeFactor
	adjusted := res.AverageSentiment*(1-f) + sign(res.AverageSentiment)*recent*f
	if math.IsNaN(adjusted) || math.IsInf(adjusted, 0) {
		return res
	}
	res.VolumeAdjustedSentiment = &adjusted
	res.VolumeChange = &recent
	return res
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
