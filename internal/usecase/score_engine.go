package usecase

import (
	"fmt"
	"time"

	"FinScore/internal/domain/models"
	domrepo "FinScore/internal/domain/repository"
	domsvc "FinScore/internal/domain/service"
	"FinScore/internal/services/analytics"
	"FinScore/pkg/config"
	applogger "FinScore/pkg/logger"
)

// Stage names recorded in StageFault and metrics.
const (
	StageRiskMetrics = "risk_metrics"
	StageSentiment   = "sentiment"
	StageScoring     = "category_scoring"
	StageWeights     = "weight_adjustment"
	StageAggregation = "aggregation"
)

// Engine runs one symbol through the scorers, the weight adjuster and the
// aggregator. It holds no per-run state and is safe for concurrent use.
type Engine struct {
	scorers   []domsvc.CategoryScorer
	adjuster  domsvc.WeightAdjuster
	base      models.CategoryWeights
	sentiment *analytics.SentimentAnalyzer
	risk      config.Risk
	mode      string

	metrics domrepo.Metrics
	l       *applogger.Logger
}

type EngineOption func(*Engine)

func WithEngineLogger(l *applogger.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.l = l
		}
	}
}

func WithEngineMetrics(m domrepo.Metrics) EngineOption {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithWeightAdjuster replaces the adjuster selected by the weight mode.
func WithWeightAdjuster(a domsvc.WeightAdjuster) EngineOption {
	return func(e *Engine) {
		if a != nil {
			e.adjuster = a
		}
	}
}

// WithScorers replaces the default category scorers.
func WithScorers(s ...domsvc.CategoryScorer) EngineOption {
	return func(e *Engine) { e.scorers = s }
}

// NewEngine builds the scoring pipeline from validated scoring config.
func NewEngine(cfg config.Scoring, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		base:      cfg.Weights.Clone(),
		sentiment: analytics.NewSentimentAnalyzer(cfg.Sentiment),
		risk:      cfg.Risk,
		mode:      cfg.WeightMode,
		metrics:   domrepo.NopMetrics{},
		l:         applogger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.scorers == nil {
		norm := analytics.NewNormalizer(cfg.Normalization, e.l)
		e.scorers = []domsvc.CategoryScorer{
			analytics.NewFundamentalScorer(cfg.Weights, norm),
			analytics.NewTechnicalScorer(cfg.Weights, norm, cfg.Indicators),
			analytics.NewRiskScorer(cfg.Weights, norm, cfg.Risk),
			analytics.NewSentimentScorer(cfg.Weights, norm),
		}
	}
	if e.adjuster == nil {
		a, err := newAdjuster(cfg)
		if err != nil {
			return nil, err
		}
		e.adjuster = a
	}
	return e, nil
}

func newAdjuster(cfg config.Scoring) (domsvc.WeightAdjuster, error) {
	switch cfg.WeightMode {
	case config.WeightModeLegacy:
		return analytics.NewLegacyMarketAdjuster(cfg.Weights, cfg.Legacy), nil
	case config.WeightModeStatic:
		return analytics.NewStaticWeights(cfg.Weights), nil
	case config.WeightModeAdaptive, "":
		return analytics.NewWeightAdjuster(cfg, analytics.NewRegimeDetector(cfg.Regime))
	default:
		return nil, fmt.Errorf("unknown weight mode %q", cfg.WeightMode)
	}
}

// BaseWeights returns a copy of the configured weights.
func (e *Engine) BaseWeights() models.CategoryWeights { return e.base.Clone() }

// Mode is the configured weight mode.
func (e *Engine) Mode() string { return e.mode }

// Regime classifies candles and returns the weights they produce. The
// state is nil when the adjuster does not classify or classification failed.
func (e *Engine) Regime(candles []models.Candle) (models.CategoryWeights, *models.MarketState, error) {
	var (
		w     models.CategoryWeights
		state *models.MarketState
	)
	err := runStage(func() error {
		var err error
		w, state, err = e.adjuster.Adjust(candles)
		return err
	})
	if w == nil {
		w = e.BaseWeights()
	}
	if state != nil {
		e.metrics.RecordRegime(state.Regime)
	}
	return w, state, err
}

// InputFromRequest turns a request payload into a scoring input,
// summarising raw messages when no sentiment result was supplied.
func (e *Engine) InputFromRequest(req models.ScoreRequest) models.ScoringInput {
	in := models.ScoringInput{
		Symbol:       req.Symbol,
		Candles:      req.Candles,
		Fundamentals: req.Fundamentals,
		Sentiment:    req.Sentiment,
	}
	if in.Sentiment == nil && len(req.Messages) > 0 {
		s := e.sentiment.Summarize(req.Messages)
		in.Sentiment = &s
	}
	return in
}

// Score never fails: every stage that errors or panics is logged, recorded
// as a StageFault and replaced by its fallback.
func (e *Engine) Score(in models.ScoringInput) models.ScoreReport {
	start := time.Now()
	run := &scoreRun{engine: e, symbol: in.Symbol}

	if in.Risk == nil && len(in.Candles) > 0 {
		run.stage(StageRiskMetrics, "", func() error {
			r := analytics.ComputeRiskReport(models.Closes(in.Candles), e.risk)
			in.Risk = &r
			return nil
		})
	}
	if in.Sentiment != nil && in.Sentiment.VolumeAdjustedSentiment == nil && len(in.Candles) > 0 {
		run.stage(StageSentiment, models.CategorySentiment, func() error {
			s := e.sentiment.VolumeAdjust(in.Candles, *in.Sentiment)
			in.Sentiment = &s
			return nil
		})
	}

	results := make(map[models.Category]models.CategoryScore, len(e.scorers))
	scores := make(map[models.Category]float64, len(models.Categories))
	for _, s := range e.scorers {
		c := s.Category()
		run.stage(StageScoring, c, func() error {
			res, err := s.Score(in)
			if err != nil {
				return err
			}
			results[c] = res
			scores[c] = res.Score
			return nil
		})
	}

	weights, state, err := e.Regime(in.Candles)
	if err != nil {
		run.fault(StageWeights, "", err)
	}

	var agg analytics.Aggregation
	run.stage(StageAggregation, "", func() error {
		var err error
		agg, err = analytics.Aggregate(scores, weights)
		return err
	})
	if agg.CategoryScores == nil {
		agg = analytics.FailedAggregation()
	}

	rep := models.ScoreReport{
		Symbol:         in.Symbol,
		FinalScore:     agg.FinalScore,
		Band:           agg.Band,
		Interpretation: agg.Interpretation,
		CategoryScores: agg.CategoryScores,
		Weights:        weights,
		WeightMode:     e.mode,
		Faults:         run.faults,
	}
	if agg.Band == models.BandError {
		rep.RawValues = map[string]float64{}
		rep.NormalizedScores = map[string]float64{}
	} else {
		fillDetails(&rep, results)
		if in.Risk != nil {
			r := in.Risk.Finite()
			rep.RiskMetrics = &r
		}
		if state != nil {
			s := state.Finite()
			rep.MarketState = &s
		}
	}

	e.metrics.RecordScore(in.Symbol, rep.FinalScore, rep.Band)
	e.metrics.RecordLatency("score", time.Since(start).Seconds())
	e.l.Debug("scored",
		applogger.String("symbol", in.Symbol),
		applogger.Float64("final_score", rep.FinalScore),
		applogger.String("band", string(rep.Band)),
		applogger.Int("faults", len(rep.Faults)),
	)
	return rep
}

// fillDetails lays out per-factor values: risk sub-scores apart, all other
// normalized values together, raw values merged across categories.
func fillDetails(rep *models.ScoreReport, results map[models.Category]models.CategoryScore) {
	raw := map[string]float64{}
	norm := map[string]float64{}
	for _, c := range models.Categories {
		res, ok := results[c]
		if !ok {
			continue
		}
		for k, v := range res.Raw {
			raw[k] = v
		}
		switch c {
		case models.CategoryRisk:
			rep.RiskScores = models.FiniteMap(res.Normalized)
		case models.CategoryTechnical:
			rep.TechnicalTrends = models.FiniteMap(res.Trends)
			fallthrough
		default:
			for k, v := range res.Normalized {
				norm[k] = v
			}
		}
	}
	rep.RawValues = models.FiniteMap(raw)
	rep.NormalizedScores = models.FiniteMap(norm)
}

type scoreRun struct {
	engine *Engine
	symbol string
	faults []models.StageFault
}

func (r *scoreRun) stage(name string, c models.Category, fn func() error) {
	if err := runStage(fn); err != nil {
		r.fault(name, c, err)
	}
}

func (r *scoreRun) fault(name string, c models.Category, err error) {
	r.faults = append(r.faults, models.StageFault{Stage: name, Category: c, Message: err.Error()})
	r.engine.metrics.RecordFault(name)
	r.engine.l.Warn("stage fell back to default",
		applogger.String("stage", name),
		applogger.String("category", string(c)),
		applogger.String("symbol", r.symbol),
		applogger.Error(err),
	)
}

// runStage converts a panic inside fn into an error.
func runStage(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}
