package analytics

import (
	"math"

	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
	"FinScore/pkg/config"
)

// RiskScorer maps VaR, Sharpe and drawdown onto "higher is safer" scores.
type RiskScorer struct {
	factors map[string]float64
	norm    *Normalizer
	cfg     config.Risk
}

func NewRiskScorer(weights models.CategoryWeights, norm *Normalizer, cfg config.Risk) *RiskScorer {
	return &RiskScorer{factors: factorsOf(weights, models.CategoryRisk), norm: norm, cfg: cfg}
}

func (s *RiskScorer) Category() models.Category { return models.CategoryRisk }

func (s *RiskScorer) Score(in models.ScoringInput) (models.CategoryScore, error) {
	res := emptyScore(models.CategoryRisk)
	rep := in.Risk
	if rep == nil {
		if len(in.Candles) == 0 {
			return res, nil
		}
		r := ComputeRiskReport(models.Closes(in.Candles), s.cfg)
		rep = &r
	}

	maxDD := math.Abs(rep.MaxDrawdown)
	res.Raw["var"] = rep.VaR95
	res.Raw["sharpe"] = rep.Sharpe
	res.Raw["max_drawdown"] = maxDD

	varScore := 1 - math.Min(math.Abs(rep.VaR95), 0.1)*10
	sharpeScore := math.Max(-2, math.Min(rep.Sharpe, 2))/2 + 0.5
	ddScore := 1 - math.Min(maxDD, 0.5)*2

	res.Normalized["var"] = s.norm.Single(varScore, RefUnit)
	res.Normalized["sharpe"] = s.norm.Single(sharpeScore, RefUnit)
	res.Normalized["max_drawdown"] = s.norm.Single(ddScore, RefUnit)

	res.Score = weightedSum(s.factors, res.Normalized)
	return res, nil
}

var _ domsvc.CategoryScorer = (*RiskScorer)(nil)
