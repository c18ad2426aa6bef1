package models

import "math"

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FiniteMap copies m with non-finite values replaced by 0. Nil stays nil.
func FiniteMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = finiteOrZero(v)
	}
	return out
}
