package analytics

import (
	"fmt"

	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
	"FinScore/pkg/config"
)

// WeightAdjuster tilts the base category weights by market regime, then by
// volatility level, then by volume trend, renormalizing after each pass.
type WeightAdjuster struct {
	base       models.CategoryWeights
	classifier domsvc.RegimeClassifier
	regimes    map[models.MarketRegime]map[models.Category]float64
	rules      config.Adjustment
}

func NewWeightAdjuster(cfg config.Scoring, classifier domsvc.RegimeClassifier) (*WeightAdjuster, error) {
	regimes := make(map[models.MarketRegime]map[models.Category]float64, len(cfg.RegimeMultipliers))
	for name, mult := range cfg.RegimeMultipliers {
		r, err := models.ParseMarketRegime(name)
		if err != nil {
			return nil, fmt.Errorf("weight adjuster: %w", err)
		}
		regimes[r] = mult
	}
	return &WeightAdjuster{
		base:       cfg.Weights.Clone(),
		classifier: classifier,
		regimes:    regimes,
		rules:      cfg.Adjustment,
	}, nil
}

// Base returns a copy of the unadjusted weights.
func (a *WeightAdjuster) Base() models.CategoryWeights { return a.base.Clone() }

// Adjust classifies the window and applies all passes. Any failure returns
// the base weights together with the error; the state is nil when the
// classifier failed.
func (a *WeightAdjuster) Adjust(candles []models.Candle) (models.CategoryWeights, *models.MarketState, error) {
	state, err := a.classifier.Analyze(candles)
	if err != nil {
		return a.Base(), nil, err
	}
	w, err := a.ForState(state)
	if err != nil {
		return a.Base(), &state, err
	}
	return w, &state, nil
}

// ForState applies the regime, volatility and volume passes in that order.
func (a *WeightAdjuster) ForState(state models.MarketState) (models.CategoryWeights, error) {
	w, err := RegimePass(a.base, a.regimes[state.Regime])
	if err != nil {
		return nil, fmt.Errorf("regime pass: %w", err)
	}
	if w, err = VolatilityPass(w, state.Volatility, a.rules); err != nil {
		return nil, fmt.Errorf("volatility pass: %w", err)
	}
	if w, err = VolumePass(w, state.VolumeTrend, a.rules); err != nil {
		return nil, fmt.Errorf("volume pass: %w", err)
	}
	return w, nil
}

// RegimePass scales by the regime's multipliers and renormalizes.
func RegimePass(w models.CategoryWeights, mult map[models.Category]float64) (models.CategoryWeights, error) {
	return w.Scale(mult).Normalize()
}

// VolatilityPass favours risk when volatility is high and technicals when it
// is low. NaN volatility matches neither rule.
func VolatilityPass(w models.CategoryWeights, volatility float64, rules config.Adjustment) (models.CategoryWeights, error) {
	switch {
	case volatility > rules.HighVolatility.Threshold:
		return w.Scale(rules.HighVolatility.Multipliers).Normalize()
	case volatility < rules.LowVolatility.Threshold:
		return w.Scale(rules.LowVolatility.Multipliers).Normalize()
	default:
		return w.Normalize()
	}
}

// VolumePass favours technicals and sentiment on volume surges and
// fundamentals on volume droughts.
func VolumePass(w models.CategoryWeights, volumeTrend float64, rules config.Adjustment) (models.CategoryWeights, error) {
	switch {
	case volumeTrend > rules.VolumeSurge.Threshold:
		return w.Scale(rules.VolumeSurge.Multipliers).Normalize()
	case volumeTrend < rules.VolumeDrop.Threshold:
		return w.Scale(rules.VolumeDrop.Multipliers).Normalize()
	default:
		return w.Normalize()
	}
}

var _ domsvc.WeightAdjuster = (*WeightAdjuster)(nil)
