package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"comment-scraper/shared/config"

	"google.golang.org/genai"
)

// GeminiModel scores text with a Gemini model. It replaces the lexicon
// model when ai.sentiment_model is set to "gemini" in the config; the
// VADER model stays in place as the second opinion.
type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(cfg *config.Config) (*GeminiModel, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{client: client, model: cfg.AI.Model}, nil
}

func (m *GeminiModel) Name() string { return "gemini" }

func (m *GeminiModel) Score(ctx context.Context, text string) (Scores, error) {
	prompt := fmt.Sprintf(`You are a sentiment scorer for YouTube comments.

COMMENT:
%s

Respond with ONLY the following JSON:
{
  "polarity": number (-1.0 to 1.0, where -1 is most negative and 1 is most positive),
  "subjectivity": number (0.0 to 1.0, where 0 is purely factual and 1 is purely opinion)
}`, truncateString(text, 2000))

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := m.client.Models.GenerateContent(ctx, m.model, contents, nil)
	if err != nil {
		return Scores{}, fmt.Errorf("failed to score comment sentiment: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return Scores{}, fmt.Errorf("no sentiment response received")
	}

	return parseScoreResponse(responseText)
}

func parseScoreResponse(response string) (Scores, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 {
		return Scores{}, fmt.Errorf("no JSON found in response: %s", response)
	}

	var result struct {
		Polarity     float64 `json:"polarity"`
		Subjectivity float64 `json:"subjectivity"`
	}
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &result); err != nil {
		return Scores{}, fmt.Errorf("failed to unmarshal sentiment JSON: %w", err)
	}

	return Scores{
		Polarity:     clamp(result.Polarity, -1, 1),
		Subjectivity: clamp(result.Subjectivity, 0, 1),
	}, nil
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}
