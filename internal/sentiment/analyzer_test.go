package sentiment

import (
	"context"
	"testing"
	"time"

	"comment-scraper/internal/models"
)

func TestAnalyzePositiveComment(t *testing.T) {
	a := NewDefaultAnalyzer()
	score := a.Analyze(context.Background(), "I absolutely love this video!")

	if score.Label != models.SentimentPositive {
		t.Errorf("Label = %q, want %q", score.Label, models.SentimentPositive)
	}
	if score.Strength == models.StrengthWeak {
		t.Errorf("Strength = %q, want at least moderate", score.Strength)
	}
	if score.Polarity <= 0 {
		t.Errorf("Polarity = %v, want > 0", score.Polarity)
	}
	if score.VaderCompound <= 0 {
		t.Errorf("VaderCompound = %v, want > 0", score.VaderCompound)
	}
	if score.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt should be set")
	}
	if score.TextLength != len("I absolutely love this video!") {
		t.Errorf("TextLength = %d, want %d", score.TextLength, len("I absolutely love this video!"))
	}
}

func TestAnalyzeNegativeComment(t *testing.T) {
	a := NewDefaultAnalyzer()
	score := a.Analyze(context.Background(), "This is absolutely terrible, what a waste of time.")

	if score.Label != models.SentimentNegative {
		t.Errorf("Label = %q, want %q", score.Label, models.SentimentNegative)
	}
	if score.Polarity >= 0 {
		t.Errorf("Polarity = %v, want < 0", score.Polarity)
	}
}

func TestAnalyzeEmptyTextYieldsNeutralDefault(t *testing.T) {
	a := NewDefaultAnalyzer()

	for _, text := range []string{"", "   ", "\n\t"} {
		score := a.Analyze(context.Background(), text)

		if score.Label != models.SentimentNeutral {
			t.Errorf("Analyze(%q).Label = %q, want neutral", text, score.Label)
		}
		if score.Strength != models.StrengthWeak {
			t.Errorf("Analyze(%q).Strength = %q, want weak", text, score.Strength)
		}
		if score.VaderNeutral != 1 {
			t.Errorf("Analyze(%q).VaderNeutral = %v, want 1", text, score.VaderNeutral)
		}
		if score.Polarity != 0 || score.VaderCompound != 0 {
			t.Errorf("Analyze(%q) polarity/compound = %v/%v, want 0/0", text, score.Polarity, score.VaderCompound)
		}
		if score.IsSubjective {
			t.Errorf("Analyze(%q) should not be subjective", text)
		}
		// AnalyzedAt distinguishes scored-neutral from never-scored.
		if score.AnalyzedAt.IsZero() {
			t.Errorf("Analyze(%q).AnalyzedAt should be set", text)
		}
	}
}

func TestDeriveLabelBoundaries(t *testing.T) {
	tests := []struct {
		polarity float64
		compound float64
		want     string
	}{
		{0.2, 0.0, models.SentimentPositive},  // avg exactly 0.1
		{0.19, 0.0, models.SentimentNeutral},  // avg just below
		{-0.2, 0.0, models.SentimentNegative}, // avg exactly -0.1
		{-0.19, 0.0, models.SentimentNeutral},
		{0.8, -0.8, models.SentimentNeutral}, // models cancel out
		{0.0, 0.0, models.SentimentNeutral},
		{1.0, 1.0, models.SentimentPositive},
		{-1.0, -1.0, models.SentimentNegative},
	}

	for _, tt := range tests {
		if got := deriveLabel(tt.polarity, tt.compound); got != tt.want {
			t.Errorf("deriveLabel(%v, %v) = %q, want %q", tt.polarity, tt.compound, got, tt.want)
		}
	}
}

func TestDeriveStrengthBoundaries(t *testing.T) {
	tests := []struct {
		polarity float64
		compound float64
		want     string
	}{
		{0.6, 0.0, models.StrengthStrong}, // max rules, not avg
		{0.0, -0.6, models.StrengthStrong},
		{0.59, 0.3, models.StrengthModerate},
		{0.3, 0.0, models.StrengthModerate},
		{-0.3, 0.0, models.StrengthModerate},
		{0.29, -0.29, models.StrengthWeak},
		{0.0, 0.0, models.StrengthWeak},
	}

	for _, tt := range tests {
		if got := deriveStrength(tt.polarity, tt.compound); got != tt.want {
			t.Errorf("deriveStrength(%v, %v) = %q, want %q", tt.polarity, tt.compound, got, tt.want)
		}
	}
}

func TestAnalyzeBatchPreservesOrderAndLength(t *testing.T) {
	a := NewDefaultAnalyzer()
	texts := []string{
		"I absolutely love this video!",
		"",
		"this is terrible and awful",
		"the video is twelve minutes long",
	}

	scores := a.AnalyzeBatch(context.Background(), texts)

	if len(scores) != len(texts) {
		t.Fatalf("len(scores) = %d, want %d", len(scores), len(texts))
	}
	if scores[0].Label != models.SentimentPositive {
		t.Errorf("scores[0].Label = %q, want positive", scores[0].Label)
	}
	if scores[1].Label != models.SentimentNeutral {
		t.Errorf("scores[1].Label = %q, want neutral", scores[1].Label)
	}
	if scores[2].Label != models.SentimentNegative {
		t.Errorf("scores[2].Label = %q, want negative", scores[2].Label)
	}
	for i, sc := range scores {
		if sc.TextLength != len(texts[i]) {
			t.Errorf("scores[%d].TextLength = %d, want %d", i, sc.TextLength, len(texts[i]))
		}
	}
}

func TestLexiconModel(t *testing.T) {
	m := NewLexiconModel()

	tests := []struct {
		name     string
		text     string
		positive bool
	}{
		{"plain positive", "what a great video", true},
		{"plain negative", "what a terrible video", false},
		{"intensified positive", "this is really really good", true},
		{"negated positive reads negative", "this is not good at all", false},
		{"negated negative reads positive", "not bad honestly", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := m.Score(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if tt.positive && scores.Polarity <= 0 {
				t.Errorf("Polarity = %v, want > 0", scores.Polarity)
			}
			if !tt.positive && scores.Polarity >= 0 {
				t.Errorf("Polarity = %v, want < 0", scores.Polarity)
			}
		})
	}

	t.Run("intensifier amplifies", func(t *testing.T) {
		plain, _ := m.Score(context.Background(), "good video")
		boosted, _ := m.Score(context.Background(), "extremely good video")
		if boosted.Polarity <= plain.Polarity {
			t.Errorf("intensified polarity %v should exceed plain %v", boosted.Polarity, plain.Polarity)
		}
	})

	t.Run("no sentiment words", func(t *testing.T) {
		scores, err := m.Score(context.Background(), "the video is twelve minutes long")
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if scores.Polarity != 0 || scores.Subjectivity != 0 {
			t.Errorf("Scores = %+v, want zero values", scores)
		}
	})
}

func TestVaderModel(t *testing.T) {
	m := NewVaderModel()

	scores, err := m.Score(context.Background(), "I love this, it is wonderful!")
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if scores.Polarity <= 0 {
		t.Errorf("Polarity = %v, want > 0", scores.Polarity)
	}
	total := scores.Positive + scores.Negative + scores.Neutral
	if total < 0.99 || total > 1.01 {
		t.Errorf("pos+neg+neu = %v, want ~1", total)
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"she said &quot;hi&quot;", `she said "hi"`},
		{"fish &amp; chips", "fish & chips"},
		{"line one<br>line two", "line one line two"},
		{"a &lt; b &gt; c", "a < b > c"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := preprocess(tt.in); got != tt.want {
			t.Errorf("preprocess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	now := time.Now().UTC()
	scores := []models.SentimentScore{
		{Polarity: 0.8, Subjectivity: 0.9, VaderCompound: 0.7, Label: models.SentimentPositive, Strength: models.StrengthStrong, IsSubjective: true, AnalyzedAt: now},
		{Polarity: 0.4, Subjectivity: 0.6, VaderCompound: 0.3, Label: models.SentimentPositive, Strength: models.StrengthModerate, IsSubjective: true, AnalyzedAt: now},
		{Polarity: -0.6, Subjectivity: 0.8, VaderCompound: -0.5, Label: models.SentimentNegative, Strength: models.StrengthStrong, IsSubjective: true, AnalyzedAt: now},
		{Polarity: 0, Subjectivity: 0, VaderCompound: 0, VaderNeutral: 1, Label: models.SentimentNeutral, Strength: models.StrengthWeak, AnalyzedAt: now},
	}

	s := Summarize(scores)

	if s.TotalAnalyzed != 4 {
		t.Errorf("TotalAnalyzed = %d, want 4", s.TotalAnalyzed)
	}
	if s.LabelCounts[models.SentimentPositive] != 2 ||
		s.LabelCounts[models.SentimentNegative] != 1 ||
		s.LabelCounts[models.SentimentNeutral] != 1 {
		t.Errorf("LabelCounts = %v, want 2/1/1", s.LabelCounts)
	}
	if s.LabelPercentages[models.SentimentPositive] != 50 {
		t.Errorf("positive percentage = %v, want 50", s.LabelPercentages[models.SentimentPositive])
	}
	if s.MeanPolarity != 0.15 {
		t.Errorf("MeanPolarity = %v, want 0.15", s.MeanPolarity)
	}
	if s.MeanCompound != 0.125 {
		t.Errorf("MeanCompound = %v, want 0.125", s.MeanCompound)
	}
	if s.MeanSubjectivity != 0.575 {
		t.Errorf("MeanSubjectivity = %v, want 0.575", s.MeanSubjectivity)
	}
	if s.StrengthCounts[models.StrengthStrong] != 2 {
		t.Errorf("strong count = %d, want 2", s.StrengthCounts[models.StrengthStrong])
	}
	if s.Subjective != 3 || s.Objective != 1 {
		t.Errorf("subjective/objective = %d/%d, want 3/1", s.Subjective, s.Objective)
	}
	if s.SubjectiveRatio != 0.75 {
		t.Errorf("SubjectiveRatio = %v, want 0.75", s.SubjectiveRatio)
	}
	// avg of means = (0.15 + 0.125) / 2 = 0.1375 → positive bucket
	if s.Overall != models.SentimentPositive {
		t.Errorf("Overall = %q, want positive", s.Overall)
	}
	if s.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalAnalyzed != 0 {
		t.Errorf("TotalAnalyzed = %d, want 0", s.TotalAnalyzed)
	}
	if s.Overall != models.SentimentNeutral {
		t.Errorf("Overall = %q, want neutral", s.Overall)
	}
	if s.MeanPolarity != 0 {
		t.Errorf("MeanPolarity = %v, want 0", s.MeanPolarity)
	}
}

func TestOverallBucket(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{0.5, "strongly positive"},
		{0.3, "strongly positive"},
		{0.2, models.SentimentPositive},
		{0.1, models.SentimentPositive},
		{0.0, models.SentimentNeutral},
		{-0.1, models.SentimentNeutral},
		{-0.2, models.SentimentNegative},
		{-0.3, models.SentimentNegative},
		{-0.5, "strongly negative"},
	}

	for _, tt := range tests {
		if got := overallBucket(tt.avg); got != tt.want {
			t.Errorf("overallBucket(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestParseScoreResponse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Scores
		wantErr bool
	}{
		{
			name: "clean JSON",
			in:   `{"polarity": 0.8, "subjectivity": 0.6}`,
			want: Scores{Polarity: 0.8, Subjectivity: 0.6},
		},
		{
			name: "JSON inside prose",
			in:   "Here is the analysis:\n```json\n{\"polarity\": -0.4, \"subjectivity\": 0.9}\n```",
			want: Scores{Polarity: -0.4, Subjectivity: 0.9},
		},
		{
			name: "out of range values clamped",
			in:   `{"polarity": 3.0, "subjectivity": -1.0}`,
			want: Scores{Polarity: 1, Subjectivity: 0},
		},
		{
			name:    "no JSON at all",
			in:      "I cannot help with that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScoreResponse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScoreResponse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseScoreResponse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
