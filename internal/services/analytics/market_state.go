package analytics

import (
	"fmt"

	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
	"FinScore/pkg/config"
)

// LegacyMarketAdjuster is the single-pass weighting driven only by the
// lookback return: bull markets favour technicals and sentiment, bear
// markets favour fundamentals and risk.
type LegacyMarketAdjuster struct {
	base models.CategoryWeights
	cfg  config.Legacy
}

func NewLegacyMarketAdjuster(weights models.CategoryWeights, cfg config.Legacy) *LegacyMarketAdjuster {
	return &LegacyMarketAdjuster{base: weights.Clone(), cfg: cfg}
}

func (a *LegacyMarketAdjuster) Adjust(candles []models.Candle) (models.CategoryWeights, *models.MarketState, error) {
	if len(candles) < a.cfg.Lookback {
		return a.base.Clone(), nil, fmt.Errorf("legacy market state: %d candles, need %d: %w", len(candles), a.cfg.Lookback, ErrInsufficientHistory)
	}
	last := candles[len(candles)-1].Close
	ref := candles[len(candles)-a.cfg.Lookback].Close
	ret := last/ref - 1

	state := models.MarketState{TrendStrength: ret, Regime: models.RegimeSteadySideways}
	var mult map[models.Category]float64
	switch {
	case ret > a.cfg.BullThreshold:
		mult = a.cfg.Bull
		state.Regime = models.RegimeSteadyBull
	case ret < a.cfg.BearThreshold:
		mult = a.cfg.Bear
		state.Regime = models.RegimeSteadyBear
	}

	w, err := a.base.Scale(mult).Normalize()
	if err != nil {
		return a.base.Clone(), &state, err
	}
	return w, &state, nil
}

// StaticWeights always returns the configured base weights.
type StaticWeights struct {
	base models.CategoryWeights
}

func NewStaticWeights(weights models.CategoryWeights) *StaticWeights {
	return &StaticWeights{base: weights.Clone()}
}

func (s *StaticWeights) Adjust([]models.Candle) (models.CategoryWeights, *models.MarketState, error) {
	return s.base.Clone(), nil, nil
}

var (
	_ domsvc.WeightAdjuster = (*LegacyMarketAdjuster)(nil)
	_ domsvc.WeightAdjuster = (*StaticWeights)(nil)
)
