package repository

import "FinScore/internal/domain/models"

// Metrics records scoring outcomes.
type Metrics interface {
	RecordScore(symbol string, score float64, band models.Band)
	RecordRegime(regime models.MarketRegime)
	RecordFault(stage string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordScore(string, float64, models.Band) {}
func (NopMetrics) RecordRegime(models.MarketRegime)          {}
func (NopMetrics) RecordFault(string)                         {}
func (NopMetrics) RecordError(string)                         {}
func (NopMetrics) RecordLatency(string, float64)              {}
