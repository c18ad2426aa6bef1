package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// RollingMean is the trailing simple moving average. Positions before the
// window fills are NaN, as is any window containing NaN.
func RollingMean(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		out[i] = stat.Mean(values[i-window+1:i+1], nil)
	}
	return out
}

// RollingStd is the trailing sample standard deviation (n-1 denominator).
func RollingStd(values []float64, window int) []float64 {
	out := nanSeries(len(values))
	if window <= 1 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		out[i] = stat.StdDev(values[i-window+1:i+1], nil)
	}
	return out
}

// EWMMean is an exponentially weighted mean with alpha = 2/(span+1) and
// bias-adjusted weights. NaN inputs carry no weight but still age the
// earlier observations; output is NaN until the first valid input.
func EWMMean(values []float64, span int) []float64 {
	out := nanSeries(len(values))
	if span < 1 {
		return out
	}
	decay := 1 - 2/(float64(span)+1)
	var num, den float64
	started := false
	for i, v := range values {
		if started {
			num *= decay
			den *= decay
		}
		if !math.IsNaN(v) {
			num += v
			den++
			started = true
		}
		if started {
			out[i] = num / den
		}
	}
	return out
}
