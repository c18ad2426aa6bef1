package features

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile (0 <= q <= 1) interpolating linearly
// between the two nearest order statistics at position (n-1)*q. Empty input
// or any NaN yields NaN.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 || math.IsNaN(q) {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	for _, v := range sorted {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	sort.Float64s(sorted)

	q = math.Max(0, math.Min(1, q))
	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// DropNaN returns the finite-or-infinite (non-NaN) elements of values.
func DropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
