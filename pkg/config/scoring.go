package config

import (
	"fmt"
	"math"

	"FinScore/internal/domain/models"
)

// Weight modes.
const (
	WeightModeAdaptive = "adaptive"
	WeightModeLegacy   = "legacy"
	WeightModeStatic   = "static"
)

type Scoring struct {
	WeightMode   string                 `yaml:"weight_mode" default:"adaptive" validate:"oneof=adaptive legacy static"`
	BatchWorkers int                    `yaml:"batch_workers" default:"4" validate:"gte=1,lte=64"`
	Weights      models.CategoryWeights `yaml:"weights"`

	Normalization Normalization `yaml:"normalization"`
	Regime        Regime        `yaml:"regime"`
	Adjustment    Adjustment    `yaml:"adjustment"`
	// RegimeMultipliers is keyed by regime name (STEADY_BULL, ...).
	RegimeMultipliers map[string]map[models.Category]float64 `yaml:"regime_multipliers"`
	Legacy            Legacy                                 `yaml:"legacy"`
	Risk              Risk                                   `yaml:"risk"`
	Indicators        Indicators                             `yaml:"indicators"`
	Sentiment         Sentiment                              `yaml:"sentiment"`
}

type Normalization struct {
	Method    string  `yaml:"method" default:"zscore" validate:"oneof=zscore minmax rank"`
	Winsorize float64 `yaml:"winsorize" default:"0.05" validate:"gte=0,lt=0.5"`
}

type Regime struct {
	Window          int     `yaml:"window" default:"20" validate:"gte=2"`
	ShortMA         int     `yaml:"short_ma" default:"5" validate:"gte=1"`
	LongMA          int     `yaml:"long_ma" default:"20" validate:"gte=1"`
	BullThreshold   float64 `yaml:"bull_threshold" default:"0.2"`
	BearThreshold   float64 `yaml:"bear_threshold" default:"-0.2"`
	VolatilitySplit float64 `yaml:"volatility_split" default:"0.3" validate:"gte=0"`
	Annualization   float64 `yaml:"annualization" default:"252" validate:"gt=0"`
}

// AdjustmentRule fires when its threshold is crossed.
type AdjustmentRule struct {
	Threshold   float64                     `yaml:"threshold"`
	Multipliers map[models.Category]float64 `yaml:"multipliers"`
}

type Adjustment struct {
	HighVolatility AdjustmentRule `yaml:"high_volatility"`
	LowVolatility  AdjustmentRule `yaml:"low_volatility"`
	VolumeSurge    AdjustmentRule `yaml:"volume_surge"`
	VolumeDrop     AdjustmentRule `yaml:"volume_drop"`
}

// Legacy drives the single-pass market-state weighting.
type Legacy struct {
	Lookback      int                         `yaml:"lookback" default:"20" validate:"gte=1"`
	BullThreshold float64                     `yaml:"bull_threshold" default:"0.2"`
	BearThreshold float64                     `yaml:"bear_threshold" default:"-0.2"`
	Bull          map[models.Category]float64 `yaml:"bull"`
	Bear          map[models.Category]float64 `yaml:"bear"`
}

type Risk struct {
	Confidence       float64 `yaml:"confidence" default:"0.95" validate:"gt=0,lt=1"`
	TailConfidence   float64 `yaml:"tail_confidence" default:"0.99" validate:"gt=0,lt=1"`
	RiskFreeRate     float64 `yaml:"risk_free_rate" default:"0.03"`
	Periods          int     `yaml:"periods" default:"252" validate:"gte=1"`
	VolatilityWindow int     `yaml:"volatility_window" default:"252" validate:"gte=2"`
}

type Indicators struct {
	MAPeriods       []int   `yaml:"ma_periods" default:"[5,10,20,60]"`
	TrendShort      int     `yaml:"trend_short" default:"5" validate:"gte=1"`
	TrendLong       int     `yaml:"trend_long" default:"20" validate:"gte=1"`
	RSIPeriod       int     `yaml:"rsi_period" default:"14" validate:"gte=1"`
	ATRPeriod       int     `yaml:"atr_period" default:"14" validate:"gte=1"`
	ADXPeriod       int     `yaml:"adx_period" default:"14" validate:"gte=1"`
	BollingerPeriod int     `yaml:"bollinger_period" default:"20" validate:"gte=2"`
	BollingerStd    float64 `yaml:"bollinger_std" default:"2" validate:"gt=0"`
	TrendLookback   int     `yaml:"trend_lookback" default:"20" validate:"gte=1"`
	TrendClamp      float64 `yaml:"trend_clamp" default:"0.5" validate:"gt=0"`
}

type Sentiment struct {
	MinMessages      int     `yaml:"min_messages" default:"10" validate:"gte=0"`
	BullishThreshold float64 `yaml:"bullish_threshold" default:"0.6"`
	BearishThreshold float64 `yaml:"bearish_threshold" default:"-0.3"`
	VolumeFactor     float64 `yaml:"volume_factor" default:"0.3" validate:"gte=0,lte=1"`
	VolumeWindow     int     `yaml:"volume_window" default:"5" validate:"gte=1"`
}

// DefaultWeights is the base category weighting with its fixed sub-weights.
func DefaultWeights() models.CategoryWeights {
	return models.CategoryWeights{
		models.CategoryFundamental: {Weight: 0.4, Factors: map[string]float64{
			"roe": 0.4, "debt_ratio": 0.3, "fcf": 0.1, "ev_ebitda": 0.1, "dividend_coverage": 0.1,
		}},
		models.CategoryTechnical: {Weight: 0.3, Factors: map[string]float64{
			"ma_trend": 0.4, "atr": 0.2, "obv": 0.2, "adx": 0.2,
		}},
		models.CategoryRisk: {Weight: 0.2, Factors: map[string]float64{
			"var": 0.3, "sharpe": 0.3, "max_drawdown": 0.4,
		}},
		models.CategorySentiment: {Weight: 0.1, Factors: map[string]float64{
			"social_score": 0.6, "volume_sentiment": 0.4,
		}},
	}
}

// DefaultRegimeMultipliers is the per-regime weight tilt. Sideways regimes
// leave weights unchanged.
func DefaultRegimeMultipliers() map[string]map[models.Category]float64 {
	return map[string]map[models.Category]float64{
		models.RegimeSteadyBull.String(): {
			models.CategoryTechnical: 1.2, models.CategorySentiment: 1.2, models.CategoryFundamental: 0.8,
		},
		models.RegimeVolatileBull.String(): {
			models.CategoryRisk: 1.3, models.CategoryTechnical: 1.1,
		},
		models.RegimeSteadyBear.String(): {
			models.CategoryFundamental: 1.3, models.CategoryRisk: 1.2, models.CategoryTechnical: 0.7,
		},
		models.RegimeVolatileBear.String(): {
			models.CategoryRisk: 1.5, models.CategoryFundamental: 1.2, models.CategoryTechnical: 0.6,
		},
		models.RegimeSteadySideways.String():   {},
		models.RegimeVolatileSideways.String(): {},
	}
}

func (s *Scoring) fillTables() {
	if s.Weights == nil {
		s.Weights = DefaultWeights()
	}
	if s.RegimeMultipliers == nil {
		s.RegimeMultipliers = DefaultRegimeMultipliers()
	}
	fillRule(&s.Adjustment.HighVolatility, 0.4, map[models.Category]float64{
		models.CategoryRisk: 1.3, models.CategoryTechnical: 0.8,
	})
	fillRule(&s.Adjustment.LowVolatility, 0.1, map[models.Category]float64{
		models.CategoryTechnical: 1.2, models.CategoryRisk: 0.8,
	})
	fillRule(&s.Adjustment.VolumeSurge, 0.5, map[models.Category]float64{
		models.CategoryTechnical: 1.2, models.CategorySentiment: 1.1,
	})
	fillRule(&s.Adjustment.VolumeDrop, -0.5, map[models.Category]float64{
		models.CategoryFundamental: 1.2, models.CategoryTechnical: 0.9,
	})
	if s.Legacy.Bull == nil {
		s.Legacy.Bull = map[models.Category]float64{
			models.CategoryTechnical: 1.2, models.CategorySentiment: 1.2, models.CategoryFundamental: 0.8,
		}
	}
	if s.Legacy.Bear == nil {
		s.Legacy.Bear = map[models.Category]float64{
			models.CategoryFundamental: 1.2, models.CategoryRisk: 1.2, models.CategoryTechnical: 0.8,
		}
	}
}

func fillRule(r *AdjustmentRule, threshold float64, mult map[models.Category]float64) {
	if r.Multipliers == nil {
		r.Threshold = threshold
		r.Multipliers = mult
	}
}

const weightTolerance = 1e-6

// Validate checks the weight tables beyond what struct tags express.
func (s *Scoring) Validate() error {
	for _, c := range models.Categories {
		cw, ok := s.Weights[c]
		if !ok {
			return fmt.Errorf("scoring.weights: missing category %q", c)
		}
		if cw.Weight < 0 {
			return fmt.Errorf("scoring.weights.%s: negative weight", c)
		}
		if sum := cw.FactorSum(); math.Abs(sum-1) > weightTolerance {
			return fmt.Errorf("scoring.weights.%s: factors sum to %.6f, want 1", c, sum)
		}
	}
	if sum := s.Weights.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("scoring.weights: categories sum to %.6f, want 1", sum)
	}
	for name, mult := range s.RegimeMultipliers {
		if _, err := models.ParseMarketRegime(name); err != nil {
			return fmt.Errorf("scoring.regime_multipliers: %w", err)
		}
		if err := checkMultipliers(mult); err != nil {
			return fmt.Errorf("scoring.regime_multipliers.%s: %w", name, err)
		}
	}
	rules := map[string]AdjustmentRule{
		"high_volatility": s.Adjustment.HighVolatility,
		"low_volatility":  s.Adjustment.LowVolatility,
		"volume_surge":    s.Adjustment.VolumeSurge,
		"volume_drop":     s.Adjustment.VolumeDrop,
	}
	for name, r := range rules {
		if err := checkMultipliers(r.Multipliers); err != nil {
			return fmt.Errorf("scoring.adjustment.%s: %w", name, err)
		}
	}
	if s.Regime.BearThreshold >= s.Regime.BullThreshold {
		return fmt.Errorf("scoring.regime: bear_threshold must be below bull_threshold")
	}
	if s.Legacy.BearThreshold >= s.Legacy.BullThreshold {
		return fmt.Errorf("scoring.legacy: bear_threshold must be below bull_threshold")
	}
	if s.Adjustment.LowVolatility.Threshold > s.Adjustment.HighVolatility.Threshold {
		return fmt.Errorf("scoring.adjustment: low_volatility threshold above high_volatility")
	}
	return nil
}

func checkMultipliers(mult map[models.Category]float64) error {
	for c, m := range mult {
		if !isCategory(c) {
			return fmt.Errorf("unknown category %q", c)
		}
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("multiplier for %s must be positive, got %v", c, m)
		}
	}
	return nil
}

func isCategory(c models.Category) bool {
	for _, k := range models.Categories {
		if k == c {
			return true
		}
	}
	return false
}
