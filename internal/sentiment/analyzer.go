package sentiment

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"comment-scraper/internal/models"
)

// Analyzer fuses two scoring models into one SentimentScore per comment.
// Model A supplies polarity and subjectivity; model B supplies the
// compound score and the pos/neg/neu distribution.
type Analyzer struct {
	modelA Model
	modelB Model
}

func NewAnalyzer(modelA, modelB Model) *Analyzer {
	log.Printf("Sentiment analyzer initialized with models: %s, %s", modelA.Name(), modelB.Name())
	return &Analyzer{modelA: modelA, modelB: modelB}
}

// NewDefaultAnalyzer builds the offline lexicon+VADER pairing.
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(NewLexiconModel(), NewVaderModel())
}

// Analyze scores a single comment text. Scoring failures and empty input
// yield the neutral default instead of an error: enrichment must never
// abort extraction of a comment.
func (a *Analyzer) Analyze(ctx context.Context, text string) models.SentimentScore {
	cleaned := preprocess(text)
	if cleaned == "" {
		return neutralScore(len(text))
	}

	scoresA, err := a.modelA.Score(ctx, cleaned)
	if err != nil {
		log.Printf("Warning: %s model failed, using neutral default: %v", a.modelA.Name(), err)
		return neutralScore(len(text))
	}
	scoresB, err := a.modelB.Score(ctx, cleaned)
	if err != nil {
		log.Printf("Warning: %s model failed, using neutral default: %v", a.modelB.Name(), err)
		return neutralScore(len(text))
	}

	return models.SentimentScore{
		Polarity:      scoresA.Polarity,
		Subjectivity:  scoresA.Subjectivity,
		VaderCompound: scoresB.Polarity,
		VaderPositive: scoresB.Positive,
		VaderNegative: scoresB.Negative,
		VaderNeutral:  scoresB.Neutral,
		Label:         deriveLabel(scoresA.Polarity, scoresB.Polarity),
		Strength:      deriveStrength(scoresA.Polarity, scoresB.Polarity),
		IsSubjective:  scoresA.Subjectivity > 0.5,
		AnalyzedAt:    time.Now().UTC(),
		TextLength:    len(text),
	}
}

// AnalyzeBatch scores texts in order; the result has the same length and
// order as the input.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) []models.SentimentScore {
	results := make([]models.SentimentScore, 0, len(texts))
	for i, text := range texts {
		results = append(results, a.Analyze(ctx, text))
		if (i+1)%50 == 0 {
			log.Printf("Scored %d/%d comments", i+1, len(texts))
		}
	}
	return results
}

// deriveLabel classifies on the average of the two polarity scalars, with
// the neutral band at (-0.1, 0.1).
func deriveLabel(polarity, compound float64) string {
	avg := (polarity + compound) / 2
	switch {
	case avg >= 0.1:
		return models.SentimentPositive
	case avg <= -0.1:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// deriveStrength uses the stronger of the two scores.
func deriveStrength(polarity, compound float64) string {
	m := math.Max(math.Abs(polarity), math.Abs(compound))
	switch {
	case m >= 0.6:
		return models.StrengthStrong
	case m >= 0.3:
		return models.StrengthModerate
	default:
		return models.StrengthWeak
	}
}

func neutralScore(textLength int) models.SentimentScore {
	return models.SentimentScore{
		VaderNeutral: 1,
		Label:        models.SentimentNeutral,
		Strength:     models.StrengthWeak,
		AnalyzedAt:   time.Now().UTC(),
		TextLength:   textLength,
	}
}

var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"<br>", " ",
	"<br/>", " ",
)

// preprocess collapses whitespace, decodes the HTML entities the comment
// API leaves in display text, and strips line-break markup.
func preprocess(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = entityReplacer.Replace(text)
	return strings.TrimSpace(text)
}
