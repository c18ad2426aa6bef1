package features

import (
	"fmt"
	"math"

	"FinScore/internal/domain/models"
)

// MovingAverages computes one SMA series per period, keyed "MA<period>".
func MovingAverages(closes []float64, periods []int) map[string][]float64 {
	out := make(map[string][]float64, len(periods))
	for _, p := range periods {
		out[fmt.Sprintf("MA%d", p)] = RollingMean(closes, p)
	}
	return out
}

// MATrend is MA(short)/MA(long) - 1 at the latest bar, 0 when the long
// average is zero. NaN while either average is still warming up.
func MATrend(closes []float64, short, long int) float64 {
	s := Last(RollingMean(closes, short))
	l := Last(RollingMean(closes, long))
	if l == 0 {
		return 0
	}
	return s/l - 1
}

// RSI uses simple rolling means of gains and losses.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	gains := nanSeries(n)
	losses := nanSeries(n)
	for i := 1; i < n; i++ {
		d := closes[i] - closes[i-1]
		gains[i] = math.Max(d, 0)
		losses[i] = math.Max(-d, 0)
	}
	avgGain := RollingMean(gains, period)
	avgLoss := RollingMean(losses, period)
	out := nanSeries(n)
	for i := range out {
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// BollingerBands holds the middle, upper and lower band series.
type BollingerBands struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// Bollinger computes SMA(period) +/- k sample standard deviations.
func Bollinger(closes []float64, period int, k float64) BollingerBands {
	mid := RollingMean(closes, period)
	sd := RollingStd(closes, period)
	b := BollingerBands{
		Middle: mid,
		Upper:  make([]float64, len(closes)),
		Lower:  make([]float64, len(closes)),
	}
	for i := range closes {
		b.Upper[i] = mid[i] + k*sd[i]
		b.Lower[i] = mid[i] - k*sd[i]
	}
	return b
}

// TrueRange is max(H-L, |H-prevC|, |L-prevC|); the first bar uses H-L.
func TrueRange(high, low, close []float64) []float64 {
	out := make([]float64, len(high))
	for i := range high {
		tr := high[i] - low[i]
		if i > 0 {
			tr = math.Max(tr, math.Abs(high[i]-close[i-1]))
			tr = math.Max(tr, math.Abs(low[i]-close[i-1]))
		}
		out[i] = tr
	}
	return out
}

// ATR is the exponentially weighted mean of the true range.
func ATR(candles []models.Candle, period int) []float64 {
	return EWMMean(TrueRange(models.Highs(candles), models.Lows(candles), models.Closes(candles)), period)
}

// OBV accumulates volume signed by the close-to-close direction, seeded
// with the first bar's volume.
func OBV(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		if i == 0 {
			out[i] = c.Volume
			continue
		}
		prev := candles[i-1].Close
		switch {
		case c.Close > prev:
			out[i] = out[i-1] + c.Volume
		case c.Close < prev:
			out[i] = out[i-1] - c.Volume
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// ADX measures trend strength from smoothed directional movement.
func ADX(candles []models.Candle, period int) []float64 {
	n := len(candles)
	high, low, close := models.Highs(candles), models.Lows(candles), models.Closes(candles)

	plusDM := nanSeries(n)
	minusDM := nanSeries(n)
	for i := 1; i < n; i++ {
		plusDM[i] = math.Max(high[i]-high[i-1], 0)
		// down moves stay negative; the smoothed value is taken in absolute terms
		minusDM[i] = math.Min(low[i]-low[i-1], 0)
	}

	tr := EWMMean(TrueRange(high, low, close), period)
	plus := EWMMean(plusDM, period)
	minus := EWMMean(minusDM, period)

	dx := nanSeries(n)
	for i := 0; i < n; i++ {
		plusDI := 100 * plus[i] / tr[i]
		minusDI := 100 * math.Abs(minus[i]) / tr[i]
		dx[i] = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}
	return EWMMean(dx, period)
}

// TrendRatio is last/value-lookback-bars-ago - 1 clamped to [-limit, limit];
// 0 when the series is shorter than lookback.
func TrendRatio(series []float64, lookback int, limit float64) float64 {
	if lookback <= 0 || len(series) < lookback {
		return 0
	}
	r := series[len(series)-1]/series[len(series)-lookback] - 1
	return math.Max(-limit, math.Min(r, limit))
}
