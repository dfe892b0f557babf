// Package sentiment scores comment text with two independent models and
// fuses their output into labels, strengths, and batch summaries.
package sentiment

import "context"

// Scores is the raw output of a single scoring model. Polarity carries the
// model's headline scalar in [-1,1] — for VADER-style models that is the
// compound score. Positive/Negative/Neutral are probability-like components
// summing to ~1 for models that produce them, zero otherwise.
type Scores struct {
	Polarity     float64
	Subjectivity float64
	Positive     float64
	Negative     float64
	Neutral      float64
}

// Model is a pluggable polarity scorer. Implementations must be safe for
// repeated calls within one extraction run. Callers fuse exactly two
// models by averaging their Polarity values; any model honoring the
// [-1,1] contract can be swapped in without touching label derivation.
type Model interface {
	Name() string
	Score(ctx context.Context, text string) (Scores, error)
}
