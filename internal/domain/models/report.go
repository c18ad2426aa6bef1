package models

// ScoringInput is everything one scoring run needs. Nil Fundamentals or
// Sentiment means the collaborator supplied nothing for that category.
type ScoringInput struct {
	Symbol       string
	Candles      []Candle
	Fundamentals FinancialData
	Sentiment    *SentimentResult
	// Risk is filled by the engine before category scoring.
	Risk *RiskReport
}

// CategoryScore is one scorer's output.
type CategoryScore struct {
	Category   Category
	Score      float64
	Raw        map[string]float64
	Normalized map[string]float64
	Trends     map[string]float64
}

// StageFault records a stage that failed and fell back to its default.
type StageFault struct {
	Stage    string   `json:"stage"`
	Category Category `json:"category,omitempty"`
	Message  string   `json:"message"`
}

// Band is the qualitative bucket of a final score.
type Band string

const (
	BandStrongBullish         Band = "strong_bullish"
	BandBullish               Band = "bullish"
	BandNeutralLeaningBullish Band = "neutral_leaning_bullish"
	BandNeutral               Band = "neutral"
	BandNeutralLeaningBearish Band = "neutral_leaning_bearish"
	BandBearish               Band = "bearish"
	BandError                 Band = "error"
)

// ScoreReport is built once per symbol per run and never mutated afterwards.
// It carries no timestamps so identical inputs serialize identically.
type ScoreReport struct {
	Symbol           string               `json:"symbol"`
	FinalScore       float64              `json:"final_score"`
	Band             Band                 `json:"band"`
	Interpretation   string               `json:"interpretation"`
	CategoryScores   map[Category]float64 `json:"category_scores"`
	Weights          CategoryWeights      `json:"weights"`
	RawValues        map[string]float64   `json:"raw_values"`
	NormalizedScores map[string]float64   `json:"normalized_scores"`
	RiskScores       map[string]float64   `json:"risk_scores,omitempty"`
	TechnicalTrends  map[string]float64   `json:"technical_trends,omitempty"`
	RiskMetrics      *RiskReport          `json:"risk_metrics,omitempty"`
	MarketState      *MarketState         `json:"market_state,omitempty"`
	WeightMode       string               `json:"weight_mode"`
	Faults           []StageFault         `json:"faults,omitempty"`
}
