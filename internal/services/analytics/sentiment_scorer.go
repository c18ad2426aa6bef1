package analytics

import (
	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
)

// SentimentScorer only scores summaries whose status is success.
type SentimentScorer struct {
	factors map[string]float64
	norm    *Normalizer
}

func NewSentimentScorer(weights models.CategoryWeights, norm *Normalizer) *SentimentScorer {
	return &SentimentScorer{factors: factorsOf(weights, models.CategorySentiment), norm: norm}
}

func (s *SentimentScorer) Category() models.Category { return models.CategorySentiment }

func (s *SentimentScorer) Score(in models.ScoringInput) (models.CategoryScore, error) {
	res := emptyScore(models.CategorySentiment)
	if in.Sentiment == nil || in.Sentiment.Status != models.SentimentSuccess {
		return res, nil
	}

	volAdj := 0.0
	if in.Sentiment.VolumeAdjustedSentiment != nil {
		volAdj = *in.Sentiment.VolumeAdjustedSentiment
	}
	res.Raw["average_sentiment"] = in.Sentiment.AverageSentiment
	res.Raw["volume_adjusted_sentiment"] = volAdj

	res.Normalized["social_score"] = s.norm.Single(in.Sentiment.AverageSentiment, RefUnit)
	res.Normalized["volume_sentiment"] = s.norm.Single(volAdj, RefUnit)

	res.Score = weightedSum(s.factors, res.Normalized)
	return res, nil
}

var _ domsvc.CategoryScorer = (*SentimentScorer)(nil)
