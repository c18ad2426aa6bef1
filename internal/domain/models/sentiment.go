package models

// SentimentStatus reports whether a sentiment summary is usable.
type SentimentStatus string

const (
	SentimentSuccess          SentimentStatus = "success"
	SentimentInsufficientData SentimentStatus = "insufficient_data"
	SentimentNoSentiment      SentimentStatus = "no_sentiment"
	SentimentError            SentimentStatus = "error"
)

// SentimentSignal is the qualitative call derived from average sentiment.
type SentimentSignal string

const (
	SignalBullish SentimentSignal = "BULLISH"
	SignalBearish SentimentSignal = "BEARISH"
	SignalNeutral SentimentSignal = "NEUTRAL"
)

// SocialMessage is one labelled social-media post. Label is "Bullish",
// "Bearish" or empty.
type SocialMessage struct {
	Label string `json:"label"`
}

// SentimentResult is the summary consumed by the sentiment scorer.
// VolumeAdjustedSentiment is nil until volume adjustment runs.
type SentimentResult struct {
	Status                  SentimentStatus `json:"status" validate:"omitempty,oneof=success insufficient_data no_sentiment error"`
	Message                 string          `json:"message,omitempty"`
	MessageCount            int             `json:"message_count"`
	SentimentCount          int             `json:"sentiment_count"`
	AverageSentiment        float64         `json:"average_sentiment"`
	SentimentStd            float64         `json:"sentiment_std"`
	BullishRatio            float64         `json:"bullish_ratio"`
	BearishRatio            float64         `json:"bearish_ratio"`
	Signal                  SentimentSignal `json:"signal,omitempty"`
	VolumeAdjustedSentiment *float64        `json:"volume_adjusted_sentiment,omitempty"`
	VolumeChange            *float64        `json:"volume_change_5d,omitempty"`
}
