package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VaderModel scores text with the VADER social-media sentiment model,
// producing the compound intensity plus the pos/neg/neu distribution.
type VaderModel struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderModel() *VaderModel {
	return &VaderModel{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (m *VaderModel) Name() string { return "vader" }

func (m *VaderModel) Score(_ context.Context, text string) (Scores, error) {
	s := m.analyzer.PolarityScores(text)
	return Scores{
		Polarity: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}, nil
}
