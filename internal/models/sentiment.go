package models

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	StrengthWeak     = "weak"
	StrengthModerate = "moderate"
	StrengthStrong   = "strong"
)

// SentimentScore holds the fused output of the two scoring models plus the
// labels derived from them. Label and Strength are pure functions of
// Polarity and VaderCompound and are never set independently.
type SentimentScore struct {
	Polarity     float64 `json:"sentiment_polarity"`
	Subjectivity float64 `json:"sentiment_subjectivity"`

	VaderCompound float64 `json:"vader_compound"`
	VaderPositive float64 `json:"vader_positive"`
	VaderNegative float64 `json:"vader_negative"`
	VaderNeutral  float64 `json:"vader_neutral"`

	Label        string `json:"sentiment_label"`
	Strength     string `json:"emotion_strength"`
	IsSubjective bool   `json:"is_subjective"`

	AnalyzedAt time.Time `json:"sentiment_analyzed_at"`
	TextLength int       `json:"text_length"`
}
