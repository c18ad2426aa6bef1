package analytics

import (
	"errors"
	"fmt"

	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
	"FinScore/internal/services/features"
	"FinScore/pkg/config"
)

// ErrInsufficientHistory is returned when the price window is shorter than
// the classifier needs.
var ErrInsufficientHistory = errors.New("insufficient price history")

// RegimeDetector classifies the trailing price window into a MarketRegime.
type RegimeDetector struct {
	cfg config.Regime
}

func NewRegimeDetector(cfg config.Regime) *RegimeDetector {
	return &RegimeDetector{cfg: cfg}
}

// Analyze computes trend strength, annualized volatility and volume trend at
// the latest bar and classifies them. Volatility is NaN when fewer than
// Window returns exist; NaN never counts as volatile.
func (d *RegimeDetector) Analyze(candles []models.Candle) (models.MarketState, error) {
	if len(candles) < d.cfg.Window {
		return models.MarketState{}, fmt.Errorf("regime: %d candles, need %d: %w", len(candles), d.cfg.Window, ErrInsufficientHistory)
	}

	closes := models.Closes(candles)
	volumes := models.Volumes(candles)

	trend := features.MATrend(closes, d.cfg.ShortMA, d.cfg.LongMA)
	vol := features.RealizedVolatility(features.PctReturns(closes), d.cfg.Window, d.cfg.Annualization)
	volumeMA := features.Last(features.RollingMean(volumes, d.cfg.Window))
	volumeTrend := volumes[len(volumes)-1]/volumeMA - 1

	return models.MarketState{
		Regime:        d.Classify(trend, vol),
		TrendStrength: trend,
		Volatility:    vol,
		VolumeTrend:   volumeTrend,
	}, nil
}

// Classify buckets (trend, volatility); the first matching rule wins.
func (d *RegimeDetector) Classify(trend, volatility float64) models.MarketRegime {
	volatile := volatility > d.cfg.VolatilitySplit
	switch {
	case trend > d.cfg.BullThreshold:
		if volatile {
			return models.RegimeVolatileBull
		}
		return models.RegimeSteadyBull
	case trend < d.cfg.BearThreshold:
		if volatile {
			return models.RegimeVolatileBear
		}
		return models.RegimeSteadyBear
	default:
		if volatile {
			return models.RegimeVolatileSideways
		}
		return models.RegimeSteadySideways
	}
}

var _ domsvc.RegimeClassifier = (*RegimeDetector)(nil)
