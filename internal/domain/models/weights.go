package models

import (
	"errors"
	"math"
)

// Category identifies one of the four signal families.
type Category string

const (
	CategoryFundamental Category = "fundamental"
	CategoryTechnical   Category = "technical"
	CategoryRisk        Category = "risk"
	CategorySentiment   Category = "sentiment"
)

// Categories lists every category in a fixed order. Summations walk this
// slice so results do not depend on map iteration order.
var Categories = []Category{
	CategoryFundamental,
	CategoryTechnical,
	CategoryRisk,
	CategorySentiment,
}

// ErrZeroWeight is returned when category weights cannot be renormalized.
var ErrZeroWeight = errors.New("category weights sum to zero")

// CategoryWeight is the category-level weight plus its fixed sub-weights.
type CategoryWeight struct {
	Weight  float64            `json:"weight" yaml:"weight" validate:"gte=0"`
	Factors map[string]float64 `json:"factors" yaml:"factors"`
}

// CategoryWeights maps category to weight record. Methods never mutate the
// receiver; every transformation returns a fresh map.
type CategoryWeights map[Category]CategoryWeight

// Clone returns a deep copy.
func (w CategoryWeights) Clone() CategoryWeights {
	out := make(CategoryWeights, len(w))
	for c, cw := range w {
		factors := make(map[string]float64, len(cw.Factors))
		for k, v := range cw.Factors {
			factors[k] = v
		}
		out[c] = CategoryWeight{Weight: cw.Weight, Factors: factors}
	}
	return out
}

// Weight returns the category-level weight, 0 when absent.
func (w CategoryWeights) Weight(c Category) float64 {
	return w[c].Weight
}

// Sum adds the category-level weights in Categories order.
func (w CategoryWeights) Sum() float64 {
	total := 0.0
	for _, c := range Categories {
		if cw, ok := w[c]; ok {
			total += cw.Weight
		}
	}
	return total
}

// Scale multiplies the listed categories by their factor. Categories missing
// from mult keep their weight.
func (w CategoryWeights) Scale(mult map[Category]float64) CategoryWeights {
	out := w.Clone()
	for c, m := range mult {
		cw, ok := out[c]
		if !ok {
			continue
		}
		cw.Weight *= m
		out[c] = cw
	}
	return out
}

// Normalize divides every category weight by the total so they sum to 1.
func (w CategoryWeights) Normalize() (CategoryWeights, error) {
	total := w.Sum()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, ErrZeroWeight
	}
	out := w.Clone()
	for c, cw := range out {
		cw.Weight /= total
		out[c] = cw
	}
	return out, nil
}

// FactorSum adds the sub-weights of one category.
func (cw CategoryWeight) FactorSum() float64 {
	total := 0.0
	for _, v := range cw.Factors {
		total += v
	}
	return total
}
