package analytics

import (
	"fmt"
	"math"
	"sort"

	"FinScore/internal/services/features"
	"FinScore/pkg/config"
	applogger "FinScore/pkg/logger"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Method selects the normalization transform.
type Method string

const (
	MethodZScore Method = "zscore"
	MethodMinMax Method = "minmax"
	MethodRank   Method = "rank"
)

// ReferenceRange tags a lone value with the bounds it is scaled against.
type ReferenceRange int

const (
	RefUnit ReferenceRange = iota
	RefROE
	RefDebtRatio
	RefCashRatio
)

// Bounds returns the [lo, hi] scaling interval.
func (r ReferenceRange) Bounds() (float64, float64) {
	switch r {
	case RefROE:
		return 0, 0.4
	case RefDebtRatio:
		return 0, 1
	case RefCashRatio:
		return 0, 0.5
	default:
		return 0, 1
	}
}

// Normalizer maps raw factor values onto comparable scores. It never
// returns an error: failures are logged and yield [0.0].
type Normalizer struct {
	method    Method
	winsorize float64
	l         *applogger.Logger
}

func NewNormalizer(cfg config.Normalization, l *applogger.Logger) *Normalizer {
	if l == nil {
		l = applogger.Nop()
	}
	method := Method(cfg.Method)
	if method == "" {
		method = MethodZScore
	}
	return &Normalizer{method: method, winsorize: cfg.Winsorize, l: l}
}

// Normalize applies method (the configured default when empty).
func (n *Normalizer) Normalize(values []float64, method Method) []float64 {
	return n.NormalizeTagged(values, method, RefUnit)
}

// Single scales one value against ref and clamps it to [0, 1].
func (n *Normalizer) Single(value float64, ref ReferenceRange) float64 {
	return n.NormalizeTagged([]float64{value}, MethodMinMax, ref)[0]
}

// NormalizeTagged is Normalize with an explicit reference range for the
// single-element case.
func (n *Normalizer) NormalizeTagged(values []float64, method Method, ref ReferenceRange) (out []float64) {
	defer func() {
		if r := recover(); r != nil {
			n.l.Warn("normalize failed",
				applogger.String("method", string(method)),
				applogger.Int("n", len(values)),
				applogger.Error(fmt.Errorf("%v", r)),
			)
			out = []float64{0.0}
		}
	}()

	if len(values) == 0 {
		return []float64{0.0}
	}
	if len(values) == 1 {
		lo, hi := ref.Bounds()
		v := (values[0] - lo) / (hi - lo)
		return []float64{math.Max(0, math.Min(1, v))}
	}

	if method == "" {
		method = n.method
	}
	switch method {
	case MethodZScore:
		return zscore(values, n.winsorize)
	case MethodMinMax:
		return minmax(values)
	case MethodRank:
		return averageRank(values)
	default:
		n.l.Warn("normalize: unknown method, returning input", applogger.String("method", string(method)))
		return append([]float64(nil), values...)
	}
}

func zscore(values []float64, w float64) []float64 {
	lower := features.Quantile(values, w)
	upper := features.Quantile(values, 1-w)
	clipped := make([]float64, len(values))
	for i, v := range values {
		clipped[i] = math.Max(lower, math.Min(upper, v))
	}
	out := make([]float64, len(values))
	// constant input scores zero everywhere
	if floats.Min(clipped) == floats.Max(clipped) {
		return out
	}
	mean, std := stat.PopMeanStdDev(clipped, nil)
	if std == 0 {
		return out
	}
	for i, v := range clipped {
		out[i] = (v - mean) / std
	}
	return out
}

func minmax(values []float64) []float64 {
	lo, hi := floats.Min(values), floats.Max(values)
	out := make([]float64, len(values))
	if lo == hi {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// averageRank gives tied values the mean of their 1-based ranks, divided by n.
func averageRank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = rank / float64(n)
		}
		i = j + 1
	}
	return out
}
