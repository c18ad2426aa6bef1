package models

// RiskReport summarises downside and return-per-risk metrics for a close series.
type RiskReport struct {
	VaR95            float64 `json:"var_95"`
	VaR99            float64 `json:"var_99"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	DrawdownStart    int     `json:"drawdown_start"`
	DrawdownEnd      int     `json:"drawdown_end"`
	AnnualVolatility float64 `json:"annual_volatility"`
	Sharpe           float64 `json:"sharpe"`
}

// Finite returns a copy with non-finite metrics replaced by 0, for encoding.
func (r RiskReport) Finite() RiskReport {
	r.VaR95 = finiteOrZero(r.VaR95)
	r.VaR99 = finiteOrZero(r.VaR99)
	r.MaxDrawdown = finiteOrZero(r.MaxDrawdown)
	r.AnnualVolatility = finiteOrZero(r.AnnualVolatility)
	r.Sharpe = finiteOrZero(r.Sharpe)
	return r
}
