package analytics

import (
	"FinScore/internal/domain/models"
	domsvc "FinScore/internal/domain/service"
	"FinScore/internal/services/features"
)

// FundamentalScorer scores profitability and leverage. Cash-flow, valuation
// and dividend ratios are reported but scored as 0 placeholders.
type FundamentalScorer struct {
	factors map[string]float64
	norm    *Normalizer
}

func NewFundamentalScorer(weights models.CategoryWeights, norm *Normalizer) *FundamentalScorer {
	return &FundamentalScorer{factors: factorsOf(weights, models.CategoryFundamental), norm: norm}
}

func (s *FundamentalScorer) Category() models.Category { return models.CategoryFundamental }

func (s *FundamentalScorer) Score(in models.ScoringInput) (models.CategoryScore, error) {
	res := emptyScore(models.CategoryFundamental)
	if in.Fundamentals == nil {
		return res, nil
	}

	r := features.CalculateFinancialRatios(in.Fundamentals)
	res.Raw["roe"] = r.ROE
	res.Raw["debt_ratio"] = r.DebtRatio
	res.Raw["fcf"] = r.FCF
	res.Raw["ev_ebitda"] = r.EVToEBITDA
	res.Raw["dividend_coverage"] = r.DividendCoverage

	res.Normalized["roe"] = s.norm.Single(r.ROE, RefROE)
	res.Normalized["debt_ratio"] = s.norm.Single(1-r.DebtRatio, RefDebtRatio)
	res.Normalized["fcf"] = 0
	res.Normalized["ev_ebitda"] = 0
	res.Normalized["dividend_coverage"] = 0

	res.Score = weightedSum(s.factors, res.Normalized)
	return res, nil
}

var _ domsvc.CategoryScorer = (*FundamentalScorer)(nil)
