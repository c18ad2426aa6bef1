package analytics

import (
	"math"

	"FinScore/internal/domain/models"
	"FinScore/internal/services/features"
	"FinScore/pkg/config"

	"gonum.org/v1/gonum/stat"
)

// VaR is the absolute empirical return quantile at 1-confidence.
func VaR(returns []float64, confidence float64) float64 {
	return math.Abs(features.Quantile(returns, 1-confidence))
}

// MaxDrawdown returns the largest peak-to-trough decline as a positive
// fraction, the index of the peak and the index of the trough.
func MaxDrawdown(prices []float64) (float64, int, int) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	runMax := math.Inf(-1)
	worst := math.Inf(1)
	end := 0
	peaks := make([]float64, len(prices))
	for i, p := range prices {
		runMax = math.Max(runMax, p)
		peaks[i] = runMax
		if dd := p/runMax - 1; dd < worst {
			worst = dd
			end = i
		}
	}
	start := 0
	for i := end; i >= 0; i-- {
		if prices[i] == peaks[end] {
			start = i
			break
		}
	}
	return math.Abs(worst), start, end
}

// Volatility is the rolling sample standard deviation scaled by sqrt(window).
func Volatility(returns []float64, window int) []float64 {
	out := features.RollingStd(returns, window)
	scale := math.Sqrt(float64(window))
	for i := range out {
		out[i] *= scale
	}
	return out
}

// Sharpe annualizes mean excess return over its sample deviation.
func Sharpe(returns []float64, riskFreeRate float64, periods int) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}
	excess := make([]float64, len(returns))
	daily := riskFreeRate / float64(periods)
	for i, r := range returns {
		excess[i] = r - daily
	}
	mean, std := stat.MeanStdDev(excess, nil)
	return math.Sqrt(float64(periods)) * mean / std
}

// ComputeRiskReport derives every risk metric from a close series using
// simple daily returns.
func ComputeRiskReport(closes []float64, cfg config.Risk) models.RiskReport {
	returns := features.DropNaN(features.PctReturns(closes))
	dd, start, end := MaxDrawdown(closes)
	return models.RiskReport{
		VaR95:            VaR(returns, cfg.Confidence),
		VaR99:            VaR(returns, cfg.TailConfidence),
		MaxDrawdown:      dd,
		DrawdownStart:    start,
		DrawdownEnd:      end,
		AnnualVolatility: features.Last(Volatility(returns, cfg.VolatilityWindow)),
		Sharpe:           Sharpe(returns, cfg.RiskFreeRate, cfg.Periods),
	}
}
