package models

import (
	"fmt"
	"strings"
)

// MarketRegime buckets the market by trend direction and volatility.
type MarketRegime int

const (
	RegimeSteadyBull MarketRegime = iota
	RegimeVolatileBull
	RegimeSteadyBear
	RegimeVolatileBear
	RegimeSteadySideways
	RegimeVolatileSideways
)

var regimeNames = [...]string{
	RegimeSteadyBull:       "STEADY_BULL",
	RegimeVolatileBull:     "VOLATILE_BULL",
	RegimeSteadyBear:       "STEADY_BEAR",
	RegimeVolatileBear:     "VOLATILE_BEAR",
	RegimeSteadySideways:   "STEADY_SIDEWAYS",
	RegimeVolatileSideways: "VOLATILE_SIDEWAYS",
}

// Regimes lists all regimes in declaration order.
var Regimes = []MarketRegime{
	RegimeSteadyBull,
	RegimeVolatileBull,
	RegimeSteadyBear,
	RegimeVolatileBear,
	RegimeSteadySideways,
	RegimeVolatileSideways,
}

func (r MarketRegime) String() string {
	if r < 0 || int(r) >= len(regimeNames) {
		return fmt.Sprintf("MarketRegime(%d)", int(r))
	}
	return regimeNames[r]
}

// ParseMarketRegime accepts the upper-case regime name, case-insensitively.
func ParseMarketRegime(s string) (MarketRegime, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range regimeNames {
		if name == s {
			return MarketRegime(i), nil
		}
	}
	return 0, fmt.Errorf("unknown market regime %q", s)
}

func (r MarketRegime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *MarketRegime) UnmarshalText(b []byte) error {
	v, err := ParseMarketRegime(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarketState is the classifier output for one price window.
// Volatility is NaN when the window holds too few returns.
type MarketState struct {
	Regime        MarketRegime `json:"regime"`
	TrendStrength float64      `json:"trend_strength"`
	Volatility    float64      `json:"volatility"`
	VolumeTrend   float64      `json:"volume_trend"`
}

// Finite returns a copy with non-finite metrics replaced by 0, for encoding.
func (s MarketState) Finite() MarketState {
	s.TrendStrength = finiteOrZero(s.TrendStrength)
	s.Volatility = finiteOrZero(s.Volatility)
	s.VolumeTrend = finiteOrZero(s.VolumeTrend)
	return s
}
