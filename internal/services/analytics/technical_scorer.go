package analytics

import (
	"strings"

	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
	"FinScore/internal/services/features"
	"FinScore/pkg/config"
)

// TechnicalScorer derives trend, range, volume and directional-strength
// signals from the candle history.
type TechnicalScorer struct {
	factors map[string]float64
	norm    *Normalizer
	cfg     config.Indicators
}

func NewTechnicalScorer(weights models.CategoryWeights, norm *Normalizer, cfg config.Indicators) *TechnicalScorer {
	return &TechnicalScorer{factors: factorsOf(weights, models.CategoryTechnical), norm: norm, cfg: cfg}
}

func (s *TechnicalScorer) Category() models.Category { return models.CategoryTechnical }

func (s *TechnicalScorer) Score(in models.ScoringInput) (models.CategoryScore, error) {
	res := emptyScore(models.CategoryTechnical)
	if len(in.Candles) == 0 {
		return res, nil
	}

	closes := models.Closes(in.Candles)
	maTrend := features.MATrend(closes, s.cfg.TrendShort, s.cfg.TrendLong)
	atr := features.ATR(in.Candles, s.cfg.ATRPeriod)
	obv := features.OBV(in.Candles)
	adx := features.ADX(in.Candles, s.cfg.ADXPeriod)

	res.Raw["ma_trend"] = maTrend
	res.Raw["atr"] = features.Last(atr)
	res.Raw["obv"] = features.Last(obv)
	res.Raw["adx"] = features.Last(adx)
	res.Raw["rsi"] = features.Last(features.RSI(closes, s.cfg.RSIPeriod))
	for name, series := range features.MovingAverages(closes, s.cfg.MAPeriods) {
		res.Raw[strings.ToLower(name)] = features.Last(series)
	}
	bb := features.Bollinger(closes, s.cfg.BollingerPeriod, s.cfg.BollingerStd)
	res.Raw["bollinger_upper"] = features.Last(bb.Upper)
	res.Raw["bollinger_lower"] = features.Last(bb.Lower)

	for _, k := range []string{"ma_trend", "atr", "obv", "adx"} {
		res.Normalized[k] = s.norm.Single(res.Raw[k], RefUnit)
	}

	res.Trends = map[string]float64{
		"atr_trend": features.TrendRatio(atr, s.cfg.TrendLookback, s.cfg.TrendClamp),
		"obv_trend": features.TrendRatio(obv, s.cfg.TrendLookback, s.cfg.TrendClamp),
		"adx_trend": features.TrendRatio(adx, s.cfg.TrendLookback, s.cfg.TrendClamp),
	}

	res.Score = weightedSum(s.factors, res.Normalized)
	return res, nil
}

var _ domsvc.CategoryScorer = (*TechnicalScorer)(nil)
