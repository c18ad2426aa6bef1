package service

import "FinScore/internal/domain/models"

// CategoryScorer turns one category's raw signals into a score.
type CategoryScorer interface {
	Category() models.Category
	Score(in models.ScoringInput) (models.CategoryScore, error)
}

// RegimeClassifier reads the trailing price window and buckets the market.
type RegimeClassifier interface {
	Analyze(candles []models.Candle) (models.MarketState, error)
}

// WeightAdjuster derives category weights for one run.
type WeightAdjuster interface {
	Adjust(candles []models.Candle) (models.CategoryWeights, *models.MarketState, error)
}
