package analytics

import (
	"math"
	"testing"

	"FinScore/pkg/config"
	applogger "FinScore/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(winsorize float64) *Normalizer {
	return NewNormalizer(config.Normalization{Method: "zscore", Winsorize: winsorize}, applogger.Nop())
}

func TestNormalizeConstantInput(t *testing.T) {
	n := newTestNormalizer(0.05)
	for _, m := range []Method{MethodZScore, MethodMinMax} {
		t.Run(string(m), func(t *testing.T) {
			got := n.Normalize([]float64{0.1, 0.1, 0.1}, m)
			assert.Equal(t, []float64{0, 0, 0}, got)
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	n := newTestNormalizer(0.05)
	assert.Equal(t, []float64{0.0}, n.Normalize(nil, MethodRank))
}

func TestNormalizeZScore(t *testing.T) {
	n := newTestNormalizer(0)
	got := n.Normalize([]float64{1, 2, 3}, "")
	sd := math.Sqrt(2.0 / 3.0)
	require.Len(t, got, 3)
	assert.InDelta(t, -1/sd, got[0], 1e-12)
	assert.InDelta(t, 0.0, got[1], 1e-12)
	assert.InDelta(t, 1/sd, got[2], 1e-12)
}

func TestNormalizeZScoreWinsorizes(t *testing.T) {
	n := newTestNormalizer(0.25)
	// quantiles at 0.25/0.75 of 1..5 are 2 and 4
	got := n.Normalize([]float64{1, 2, 3, 4, 5}, MethodZScore)
	assert.InDelta(t, got[0], got[1], 1e-12)
	assert.InDelta(t, got[3], got[4], 1e-12)
}

func TestNormalizeMinMax(t *testing.T) {
	n := newTestNormalizer(0.05)
	got := n.Normalize([]float64{2, 4, 6}, MethodMinMax)
	assert.Equal(t, []float64{0, 0.5, 1}, got)
}

func TestNormalizeRank(t *testing.T) {
	n := newTestNormalizer(0.05)
	got := n.Normalize([]float64{3, 1, 2, 2}, MethodRank)
	assert.Equal(t, []float64{1, 0.25, 0.625, 0.625}, got)
	for _, v := range got {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNormalizeRankMonotone(t *testing.T) {
	n := newTestNormalizer(0.05)
	values := []float64{0.3, -1, 7, 2.5, 0}
	got := n.Normalize(values, MethodRank)
	for i := range values {
		for j := range values {
			if values[i] < values[j] {
				assert.Less(t, got[i], got[j])
			}
		}
	}
}

func TestNormalizeUnknownMethodReturnsInput(t *testing.T) {
	n := newTestNormalizer(0.05)
	in := []float64{5, 1}
	got := n.Normalize(in, Method("bogus"))
	assert.Equal(t, in, got)
	got[0] = 99
	assert.Equal(t, 5.0, in[0])
}

func TestSingleUsesReferenceRange(t *testing.T) {
	n := newTestNormalizer(0.05)
	tests := []struct {
		name  string
		value float64
		ref   ReferenceRange
		want  float64
	}{
		{"roe mid", 0.2, RefROE, 0.5},
		{"roe above", 0.8, RefROE, 1},
		{"roe below", -0.1, RefROE, 0},
		{"debt", 0.25, RefDebtRatio, 0.25},
		{"cash", 0.25, RefCashRatio, 0.5},
		{"unit", 0.7, RefUnit, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, n.Single(tt.value, tt.ref), 1e-12)
		})
	}
}
