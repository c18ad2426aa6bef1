package features

import (
	"math"
	"testing"

	"FinScore/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candlesFromCloses(closes ...float64) []models.Candle {
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	return out
}

func TestPctReturns(t *testing.T) {
	got := PctReturns([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0], 1e-12)
	assert.InDelta(t, -0.1, got[1], 1e-12)
	assert.Nil(t, PctReturns([]float64{1}))
}

func TestRealizedVolatilityInsufficient(t *testing.T) {
	assert.True(t, math.IsNaN(RealizedVolatility([]float64{0.01, 0.02}, 20, TradingDaysPerYear)))
}

func TestRealizedVolatility(t *testing.T) {
	// sample std of {1, -1, 1, -1} is sqrt(4/3)
	got := RealizedVolatility([]float64{5, 1, -1, 1, -1}, 4, 4)
	assert.InDelta(t, math.Sqrt(4.0/3.0)*2, got, 1e-12)
}

func TestRollingMeanAndStd(t *testing.T) {
	mean := RollingMean([]float64{1, 2, 3, 4}, 2)
	assert.True(t, math.IsNaN(mean[0]))
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, mean[1:])

	sd := RollingStd([]float64{1, 3, 5}, 3)
	assert.InDelta(t, 2.0, sd[2], 1e-12)
}

func TestEWMMean(t *testing.T) {
	// span 3 -> alpha 0.5; adjusted weights 1, 0.5
	got := EWMMean([]float64{math.NaN(), 2, 4}, 3)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 2.0, got[1], 1e-12)
	assert.InDelta(t, (4+0.5*2)/1.5, got[2], 1e-12)
}

func TestQuantile(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	assert.InDelta(t, 1.2, Quantile(xs, 0.05), 1e-12)
	assert.InDelta(t, 3.0, Quantile(xs, 0.5), 1e-12)
	assert.InDelta(t, 5.0, Quantile(xs, 1), 1e-12)
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	// input left untouched
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, xs)
}

func TestOBV(t *testing.T) {
	cs := candlesFromCloses(10, 11, 11, 9)
	assert.Equal(t, []float64{100, 200, 200, 100}, OBV(cs))
}

func TestATRConstantRange(t *testing.T) {
	cs := candlesFromCloses(10, 10, 10, 10, 10)
	for _, v := range ATR(cs, 14) {
		assert.InDelta(t, 2.0, v, 1e-12)
	}
}

func TestADXTrendingUp(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	adx := ADX(candlesFromCloses(closes...), 14)
	last := adx[len(adx)-1]
	assert.InDelta(t, 100.0, last, 1e-9)
}

func TestMATrend(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 10
	}
	assert.InDelta(t, 0.0, MATrend(closes, 5, 20), 1e-12)
	assert.True(t, math.IsNaN(MATrend(closes[:10], 5, 20)))
}

func TestRSIAllGains(t *testing.T) {
	rsi := RSI([]float64{1, 2, 3, 4, 5}, 3)
	assert.InDelta(t, 100.0, rsi[4], 1e-12)
}

func TestBollinger(t *testing.T) {
	b := Bollinger([]float64{1, 3, 5}, 3, 2)
	assert.InDelta(t, 3.0, b.Middle[2], 1e-12)
	assert.InDelta(t, 7.0, b.Upper[2], 1e-12)
	assert.InDelta(t, -1.0, b.Lower[2], 1e-12)
}

func TestTrendRatio(t *testing.T) {
	s := make([]float64, 20)
	for i := range s {
		s[i] = 1
	}
	s[19] = 3
	assert.InDelta(t, 0.5, TrendRatio(s, 20, 0.5), 1e-12)
	assert.Equal(t, 0.0, TrendRatio(s[:5], 20, 0.5))
}

func TestCalculateFinancialRatiosZeroEquity(t *testing.T) {
	r := CalculateFinancialRatios(models.FinancialData{
		models.FieldNetIncome:        50,
		models.FieldTotalEquity:      0,
		models.FieldTotalAssets:      200,
		models.FieldTotalLiabilities: 100,
	})
	assert.Equal(t, 0.0, r.ROE)
	assert.InDelta(t, 0.5, r.DebtRatio, 1e-12)
	// EBITDA and common dividends default to 1
	assert.InDelta(t, 100.0, r.EVToEBITDA, 1e-12)
	assert.InDelta(t, 50.0, r.DividendCoverage, 1e-12)
}
