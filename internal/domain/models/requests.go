package models

// Request payloads for the scoring HTTP endpoints.

type ScoreRequest struct {
	Symbol       string           `json:"symbol" validate:"required,max=32"`
	Candles      []Candle         `json:"candles" validate:"max=5000"`
	Fundamentals FinancialData    `json:"fundamentals"`
	Sentiment    *SentimentResult `json:"sentiment"`
	// Messages are summarised into Sentiment when Sentiment is absent.
	Messages []SocialMessage `json:"messages" validate:"max=10000"`
}

type BatchScoreRequest struct {
	Items []ScoreRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

type SymbolScoreRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
	N      int    `query:"n" default:"260" validate:"gte=20,lte=5000"`
	AsOf   string `query:"as_of"`
}

type RegimeRequest struct {
	Candles []Candle `json:"candles" validate:"required,min=1,max=5000"`
}

type CandlesRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit" default:"500" validate:"gte=1,lte=20000"`
}

// RegimeResponse pairs the classified state with the weights it produces.
// State is omitted when the weight mode does not classify.
type RegimeResponse struct {
	Mode    string          `json:"mode"`
	State   *MarketState    `json:"state,omitempty"`
	Weights CategoryWeights `json:"weights"`
}

// WeightsResponse describes the configured base weights.
type WeightsResponse struct {
	Mode    string          `json:"mode"`
	Weights CategoryWeights `json:"weights"`
}
