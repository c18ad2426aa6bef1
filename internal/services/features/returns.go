package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes daily statistics.
const TradingDaysPerYear = 252

// PctReturns computes simple returns C_t/C_{t-1} - 1 with the leading
// undefined element dropped, so the result has len(values)-1 entries.
func PctReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i]/values[i-1] - 1
	}
	return out
}

// RealizedVolatility computes annualized volatility over the trailing window
// using the provided number of bars per year. Returns NaN when fewer than
// window returns exist.
func RealizedVolatility(returns []float64, window int, barsPerYear float64) float64 {
	if window <= 1 || len(returns) < window {
		return math.NaN()
	}
	sigma := stat.StdDev(returns[len(returns)-window:], nil)
	return sigma * math.Sqrt(barsPerYear)
}

// Last returns the final element or NaN for an empty slice.
func Last(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[len(xs)-1]
}
