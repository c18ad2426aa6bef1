package metrics

import (
	"FinScore/internal/domain/models"
	domrepo "FinScore/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scoresTotal *prometheus.CounterVec
	lastScore   *prometheus.GaugeVec
	regimes     *prometheus.CounterVec
	faults      *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a recorder registered on reg; nil means the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		scoresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscore_scores_total",
				Help: "Total number of score reports by band",
			},
			[]string{"band"},
		),
		lastScore: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finscore_last_score",
				Help: "Last final score for a symbol",
			},
			[]string{"symbol"},
		),
		regimes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscore_regime_classifications_total",
				Help: "Market regime classifications",
			},
			[]string{"regime"},
		),
		faults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscore_stage_faults_total",
				Help: "Pipeline stages that fell back to their default",
			},
			[]string{"stage"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finscore_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finscore_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScore counts the report band and tracks the symbol's last score.
func (r *Recorder) RecordScore(symbol string, score float64, band models.Band) {
	r.scoresTotal.WithLabelValues(string(band)).Inc()
	if symbol != "" {
		r.lastScore.WithLabelValues(symbol).Set(score)
	}
}

func (r *Recorder) RecordRegime(regime models.MarketRegime) {
	r.regimes.WithLabelValues(regime.String()).Inc()
}

func (r *Recorder) RecordFault(stage string) {
	r.faults.WithLabelValues(stage).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

var _ domrepo.Metrics = (*Recorder)(nil)
