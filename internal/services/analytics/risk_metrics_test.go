package analytics

import (
	"math"
	"testing"

	"FinScore/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxDrawdown(t *testing.T) {
	dd, start, end := MaxDrawdown([]float64{100, 80, 120})
	assert.InDelta(t, 0.2, dd, 1e-12)
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)
}

func TestMaxDrawdownLaterPeak(t *testing.T) {
	dd, start, end := MaxDrawdown([]float64{100, 120, 90, 130, 80})
	assert.InDelta(t, 1-80.0/130.0, dd, 1e-12)
	assert.Equal(t, 3, start)
	assert.Equal(t, 4, end)
}

func TestMaxDrawdownRising(t *testing.T) {
	dd, start, end := MaxDrawdown([]float64{1, 2, 3})
	assert.Equal(t, 0.0, dd)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestVaR(t *testing.T) {
	returns := []float64{0.02, -0.01, 0, 0.01, -0.05}
	// 5th percentile: -0.05 + 0.2*(-0.01 - -0.05)
	assert.InDelta(t, 0.042, VaR(returns, 0.95), 1e-12)
}

func TestVolatility(t *testing.T) {
	got := Volatility([]float64{0.01, 0.03}, 2)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, math.Sqrt(0.0002)*math.Sqrt(2), got[1], 1e-12)
}

func TestSharpe(t *testing.T) {
	got := Sharpe([]float64{0.01, 0.03}, 0, 4)
	assert.InDelta(t, 2*0.02/math.Sqrt(0.0002), got, 1e-9)
	assert.True(t, math.IsNaN(Sharpe([]float64{0.01}, 0, 4)))
}

func TestComputeRiskReport(t *testing.T) {
	cfg := config.Default().Scoring.Risk
	rep := ComputeRiskReport([]float64{100, 80, 120}, cfg)
	assert.InDelta(t, 0.2, rep.MaxDrawdown, 1e-12)
	assert.Equal(t, 1, rep.DrawdownEnd)
	// two returns never fill a 252-bar window
	assert.True(t, math.IsNaN(rep.AnnualVolatility))
	assert.Greater(t, rep.VaR95, 0.0)
}
