// Package validate filters raw comments by structural, length, spam,
// language, and quality rules before they enter enrichment and storage.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	"comment-scraper/internal/models"
	"comment-scraper/shared/config"

	"github.com/forPelevin/gomoji"
)

var (
	solicitationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)click\s+here|visit\s+my\s+channel|subscribe\s+to\s+me`),
		regexp.MustCompile(`(?i)free\s+money|make\s+money|earn\s+\$\d+`),
		regexp.MustCompile(`(?i)buy\s+now|limited\s+time|act\s+fast`),
	}
	punctuationRunPattern = regexp.MustCompile(`[!?]{5,}`)
	urlPatterns           = []*regexp.Regexp{
		regexp.MustCompile(`https?://\S+`),
		regexp.MustCompile(`www\.\S+\.\S+`),
	}
	allCapsPattern   = regexp.MustCompile(`^[A-Z\s!?]{20,}$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	zeroWidthPattern = regexp.MustCompile(`[\x{200b}-\x{200f}\x{2060}\x{feff}]`)
)

// languagePatterns maps language codes to the character classes that are
// characteristic for them. A language counts as detected when its
// characters exceed 30% of the non-whitespace content.
var languagePatterns = map[string]*regexp.Regexp{
	"en": regexp.MustCompile(`[a-zA-Z]`),
	"es": regexp.MustCompile(`[a-zA-ZñáéíóúüÑÁÉÍÓÚÜ]`),
	"fr": regexp.MustCompile(`[a-zA-ZàâäéèêëïîôöùûüÿçÀÂÄÉÈÊËÏÎÔÖÙÛÜŸÇ]`),
	"de": regexp.MustCompile(`[a-zA-ZäöüßÄÖÜ]`),
	"it": regexp.MustCompile(`[a-zA-ZàèéìíîòóùúÀÈÉÌÍÎÒÓÙÚ]`),
	"pt": regexp.MustCompile(`[a-zA-ZàáâãéêíóôõúçÀÁÂÃÉÊÍÓÔÕÚÇ]`),
	"ru": regexp.MustCompile(`[а-яёА-ЯЁ]`),
	"zh": regexp.MustCompile(`[\x{4e00}-\x{9fff}]`),
	"ja": regexp.MustCompile(`[\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{4e00}-\x{9fff}]`),
	"ko": regexp.MustCompile(`[\x{ac00}-\x{d7af}]`),
	"ar": regexp.MustCompile(`[\x{0600}-\x{06ff}]`),
	"hi": regexp.MustCompile(`[\x{0900}-\x{097f}]`),
}

type Validator struct {
	minLength        int
	maxLength        int
	excludeSpam      bool
	allowedLanguages []string
}

func New(cfg config.FiltersConfig) *Validator {
	return &Validator{
		minLength:        cfg.MinCommentLength,
		maxLength:        cfg.MaxCommentLength,
		excludeSpam:      cfg.ExcludeSpam,
		allowedLanguages: cfg.Languages,
	}
}

// IsValid applies all configured checks. It is a pure function of the
// comment content and the configured thresholds; input is never mutated.
func (v *Validator) IsValid(c *models.Comment) bool {
	if !hasRequiredFields(c) {
		return false
	}

	text := NormalizeText(c.CommentText())
	if !v.validLength(text) {
		return false
	}
	if v.excludeSpam && isSpam(text) {
		return false
	}
	if len(v.allowedLanguages) > 0 && !v.allowedLanguage(text) {
		return false
	}
	return isQualityContent(text)
}

// Stats classifies every comment in the batch. Each invalid comment is
// counted once, under the first category it violates: missing fields,
// length, spam, language, then quality.
func (v *Validator) Stats(comments []*models.Comment) models.ValidationStats {
	stats := models.ValidationStats{Total: len(comments)}

	for _, c := range comments {
		if v.IsValid(c) {
			stats.Valid++
			continue
		}
		stats.Invalid++

		if !hasRequiredFields(c) {
			stats.MissingFields++
			continue
		}
		text := NormalizeText(c.CommentText())
		switch {
		case !v.validLength(text):
			stats.LengthViolations++
		case v.excludeSpam && isSpam(text):
			stats.Spam++
		case len(v.allowedLanguages) > 0 && !v.allowedLanguage(text):
			stats.LanguageViolations++
		case !isQualityContent(text):
			stats.QualityViolations++
		}
	}

	if stats.Total > 0 {
		stats.ValidPercentage = float64(stats.Valid) / float64(stats.Total) * 100
		stats.InvalidPercentage = float64(stats.Invalid) / float64(stats.Total) * 100
	}
	return stats
}

func hasRequiredFields(c *models.Comment) bool {
	if c == nil {
		return false
	}
	if c.ID == "" || c.VideoID == "" || c.AuthorDisplayName == "" || c.PublishedAt.IsZero() {
		return false
	}
	return c.Text != "" || c.TextOriginal != ""
}

func (v *Validator) validLength(text string) bool {
	n := len([]rune(strings.TrimSpace(text)))
	return n >= v.minLength && n <= v.maxLength
}

func isSpam(text string) bool {
	if hasCharRun(text, 11) || hasWordRun(text, 6) {
		return true
	}
	for _, p := range solicitationPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	if punctuationRunPattern.MatchString(text) {
		return true
	}
	if hasEmojiRun(text, 5) {
		return true
	}
	for _, p := range urlPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	if allCapsPattern.MatchString(text) {
		return true
	}

	runes := []rune(text)
	if len(runes) > 0 {
		var special, digits int
		for _, r := range runes {
			if unicode.IsDigit(r) {
				digits++
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
				special++
			}
		}
		if float64(special)/float64(len(runes)) > 0.5 {
			return true
		}
		if float64(digits)/float64(len(runes)) > 0.7 {
			return true
		}
	}

	words := strings.Fields(text)
	if len(words) >= 3 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if 1-float64(len(unique))/float64(len(words)) > 0.8 {
			return true
		}
	}
	return false
}

// hasCharRun reports a run of n or more identical characters.
func hasCharRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// hasWordRun reports n or more consecutive occurrences of the same word.
func hasWordRun(text string, n int) bool {
	words := strings.Fields(text)
	run := 1
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func hasEmojiRun(text string, n int) bool {
	run := 0
	for _, r := range text {
		if gomoji.ContainsEmoji(string(r)) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// allowedLanguage checks detected scripts against the allow-list. When no
// language is detected (emoji-only or otherwise ambiguous content), the
// comment is allowed.
func (v *Validator) allowedLanguage(text string) bool {
	detected := detectLanguages(text)
	if len(detected) == 0 {
		return true
	}
	for _, lang := range detected {
		for _, allowed := range v.allowedLanguages {
			if lang == allowed {
				return true
			}
		}
	}
	return false
}

func detectLanguages(text string) []string {
	nonSpace := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			nonSpace++
		}
	}
	if nonSpace == 0 {
		return nil
	}

	var detected []string
	for lang, pattern := range languagePatterns {
		matched := 0
		for _, m := range pattern.FindAllString(text, -1) {
			matched += len([]rune(m))
		}
		if float64(matched)/float64(nonSpace) > 0.3 {
			detected = append(detected, lang)
		}
	}
	return detected
}

func isQualityContent(text string) bool {
	clean := strings.TrimSpace(text)
	runes := []rune(clean)

	words := strings.Fields(clean)
	if len(words) < 1 {
		return false
	}

	// A single alphanumeric character dominating the content is noise.
	counts := make(map[rune]int)
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			counts[r]++
		}
	}
	for _, n := range counts {
		if float64(n) > float64(len(runes))*0.6 {
			return false
		}
	}

	if len(words) >= 3 {
		total := 0
		for _, w := range words {
			total += len([]rune(w))
		}
		avg := float64(total) / float64(len(words))
		if avg < 1.5 || avg > 20 {
			return false
		}
	}

	punct := 0
	for _, r := range runes {
		if strings.ContainsRune("!?.,;:", r) {
			punct++
		}
	}
	return float64(punct) <= float64(len(runes))*0.3
}

// capPunctuationRuns truncates runs of !, ? and . longer than max.
func capPunctuationRuns(text string, max int) string {
	var b strings.Builder
	b.Grow(len(text))
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev && strings.ContainsRune("!?.", r) {
			run++
			if run > max {
				continue
			}
		} else {
			prev = r
			run = 1
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeText trims, collapses whitespace runs, and strips zero-width
// characters.
func NormalizeText(text string) string {
	normalized := strings.TrimSpace(text)
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")
	return zeroWidthPattern.ReplaceAllString(normalized, "")
}

// CleanCommentText normalizes and caps consecutive sentence punctuation
// at three characters.
func CleanCommentText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := NormalizeText(text)
	cleaned = capPunctuationRuns(cleaned, 3)
	return strings.TrimSpace(cleaned)
}
