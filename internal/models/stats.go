package models

// ValidationStats aggregates validation outcomes for one comment batch.
// Each invalid comment is counted once, under the first violated category.
type ValidationStats struct {
	Total              int     `json:"total_comments"`
	Valid              int     `json:"valid_comments"`
	Invalid            int     `json:"invalid_comments"`
	Spam               int     `json:"spam_comments"`
	LengthViolations   int     `json:"length_violations"`
	LanguageViolations int     `json:"language_violations"`
	QualityViolations  int     `json:"quality_violations"`
	MissingFields      int     `json:"missing_fields"`
	ValidPercentage    float64 `json:"valid_percentage"`
	InvalidPercentage  float64 `json:"invalid_percentage"`
}
