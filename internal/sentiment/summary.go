package sentiment

import (
	"math"
	"time"

	"comment-scraper/internal/models"
)

// Summary aggregates the enrichment of one extraction batch.
type Summary struct {
	TotalAnalyzed    int                `json:"total_analyzed"`
	LabelCounts      map[string]int     `json:"sentiment_distribution"`
	LabelPercentages map[string]float64 `json:"sentiment_percentages"`
	MeanPolarity     float64            `json:"average_polarity"`
	MeanSubjectivity float64            `json:"average_subjectivity"`
	MeanCompound     float64            `json:"average_vader_compound"`
	StrengthCounts   map[string]int     `json:"strength_distribution"`
	Subjective       int                `json:"subjective_count"`
	Objective        int                `json:"objective_count"`
	SubjectiveRatio  float64            `json:"subjective_ratio"`
	Overall          string             `json:"overall_sentiment"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// Summarize reduces a batch of scores to distribution counts and means.
// Means are rounded to 3 decimals to keep export artifacts stable.
func Summarize(scores []models.SentimentScore) *Summary {
	s := &Summary{
		LabelCounts: map[string]int{
			models.SentimentPositive: 0,
			models.SentimentNegative: 0,
			models.SentimentNeutral:  0,
		},
		LabelPercentages: make(map[string]float64),
		StrengthCounts: map[string]int{
			models.StrengthStrong:   0,
			models.StrengthModerate: 0,
			models.StrengthWeak:     0,
		},
		Overall:     models.SentimentNeutral,
		GeneratedAt: time.Now().UTC(),
	}
	if len(scores) == 0 {
		return s
	}

	var polaritySum, subjectivitySum, compoundSum float64
	for _, sc := range scores {
		s.LabelCounts[sc.Label]++
		s.StrengthCounts[sc.Strength]++
		if sc.IsSubjective {
			s.Subjective++
		} else {
			s.Objective++
		}
		polaritySum += sc.Polarity
		subjectivitySum += sc.Subjectivity
		compoundSum += sc.VaderCompound
	}

	n := float64(len(scores))
	s.TotalAnalyzed = len(scores)
	for label, count := range s.LabelCounts {
		s.LabelPercentages[label] = round3(float64(count) / n * 100)
	}
	s.MeanPolarity = round3(polaritySum / n)
	s.MeanSubjectivity = round3(subjectivitySum / n)
	s.MeanCompound = round3(compoundSum / n)
	s.SubjectiveRatio = round3(float64(s.Subjective) / n)
	s.Overall = overallBucket((s.MeanPolarity + s.MeanCompound) / 2)

	return s
}

func overallBucket(avg float64) string {
	switch {
	case avg >= 0.3:
		return "strongly positive"
	case avg >= 0.1:
		return models.SentimentPositive
	case avg >= -0.1:
		return models.SentimentNeutral
	case avg >= -0.3:
		return models.SentimentNegative
	default:
		return "strongly negative"
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
