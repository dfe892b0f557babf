package validate

import (
	"strings"
	"testing"
	"time"

	"comment-scraper/internal/models"
	"comment-scraper/shared/config"
)

func testComment(text string) *models.Comment {
	return &models.Comment{
		ID:                "comment-1",
		VideoID:           "video000001",
		Text:              text,
		AuthorDisplayName: "someone",
		PublishedAt:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func defaultValidator() *Validator {
	return New(config.FiltersConfig{
		MinCommentLength: 1,
		MaxCommentLength: 10000,
		ExcludeSpam:      true,
	})
}

func TestIsValidAcceptsOrdinaryComment(t *testing.T) {
	v := defaultValidator()
	if !v.IsValid(testComment("I absolutely love this video!")) {
		t.Error("expected an ordinary comment to be valid")
	}
}

func TestRequiredFields(t *testing.T) {
	v := defaultValidator()

	tests := []struct {
		name   string
		mutate func(*models.Comment)
	}{
		{"missing ID", func(c *models.Comment) { c.ID = "" }},
		{"missing video ID", func(c *models.Comment) { c.VideoID = "" }},
		{"missing author", func(c *models.Comment) { c.AuthorDisplayName = "" }},
		{"missing publish time", func(c *models.Comment) { c.PublishedAt = time.Time{} }},
		{"no text at all", func(c *models.Comment) { c.Text = ""; c.TextOriginal = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testComment("perfectly fine text")
			tt.mutate(c)
			if v.IsValid(c) {
				t.Error("expected comment with missing field to be invalid")
			}
		})
	}

	t.Run("original text alone suffices", func(t *testing.T) {
		c := testComment("")
		c.TextOriginal = "original text only"
		if !v.IsValid(c) {
			t.Error("expected comment with only original text to be valid")
		}
	})
}

func TestLengthValidation(t *testing.T) {
	v := New(config.FiltersConfig{MinCommentLength: 5, MaxCommentLength: 20})

	if v.IsValid(testComment("a")) {
		t.Error(`expected "a" to be rejected with min length 5, regardless of content`)
	}
	if v.IsValid(testComment(strings.Repeat("long text ", 5))) {
		t.Error("expected over-long comment to be rejected")
	}
	if !v.IsValid(testComment("just right")) {
		t.Error("expected in-range comment to be valid")
	}
}

func TestSpamDetection(t *testing.T) {
	tests := []struct {
		name string
		text string
		spam bool
	}{
		{"solicitation with caps", "SPAM SPAM SPAM CLICK HERE FOR FREE MONEY!!!", true},
		{"embedded URL", "watch this https://example.com/promo now", true},
		{"www URL", "go to www.totally-legit.biz today", true},
		{"character run", "this is sooooooooooooo good", true},
		{"word run", "nice nice nice nice nice nice nice", true},
		{"punctuation run", "what is this?!?!?!?!", true},
		{"all caps shouting", "THIS IS THE BEST THING EVER", true},
		{"mostly digits", "123456789012345", true},
		{"emoji flood", "😀😀😀😀😀", true},
		{"repetitive words", "ha ha ha ha ha yes ha ha ha ha ha", true},
		{"plain opinion", "Honestly one of the better explanations of this topic.", false},
		{"short emoji reaction", "nice video 😀😀", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isSpam(NormalizeText(tt.text))
			if got != tt.spam {
				t.Errorf("isSpam(%q) = %v, want %v", tt.text, got, tt.spam)
			}
		})
	}
}

func TestSpamFilterCanBeDisabled(t *testing.T) {
	v := New(config.FiltersConfig{MinCommentLength: 1, MaxCommentLength: 10000, ExcludeSpam: false})
	if !v.IsValid(testComment("check this out https://example.com okay then")) {
		t.Error("expected URL comment to pass with spam filtering disabled")
	}
}

func TestLanguageFiltering(t *testing.T) {
	english := New(config.FiltersConfig{
		MinCommentLength: 1,
		MaxCommentLength: 10000,
		Languages:        []string{"en"},
	})

	if !english.IsValid(testComment("this is clearly english")) {
		t.Error("expected English comment to pass the en allow-list")
	}
	if english.IsValid(testComment("это русский комментарий")) {
		t.Error("expected Russian comment to fail the en allow-list")
	}

	// Ambiguous content (no detectable script) is allowed by default.
	if !english.IsValid(testComment("😀🎉👍")) {
		t.Error("expected emoji-only comment to be allowed despite the allow-list")
	}

	russianToo := New(config.FiltersConfig{
		MinCommentLength: 1,
		MaxCommentLength: 10000,
		Languages:        []string{"en", "ru"},
	})
	if !russianToo.IsValid(testComment("это русский комментарий")) {
		t.Error("expected Russian comment to pass when ru is allowed")
	}
}

func TestDetectLanguages(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"hello there general", "en"},
		{"привет как дела", "ru"},
		{"안녕하세요 여러분", "ko"},
		{"こんにちは、みなさん", "ja"},
	}

	for _, tt := range tests {
		detected := detectLanguages(tt.text)
		found := false
		for _, lang := range detected {
			if lang == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("detectLanguages(%q) = %v, want to include %q", tt.text, detected, tt.want)
		}
	}

	if detected := detectLanguages("😀🎉"); len(detected) != 0 {
		t.Errorf("detectLanguages(emoji) = %v, want none", detected)
	}
}

func TestQualityChecks(t *testing.T) {
	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{"normal sentence", "solid breakdown of the topic", true},
		{"single dominating character", "aaaa b", false},
		{"absurd average word length", strings.Repeat("pneumonoultramicroscopicsilico ", 3), false},
		{"heavy punctuation", "a,b.c!d?e;f:g,h.i!j?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQualityContent(tt.text); got != tt.ok {
				t.Errorf("isQualityContent(%q) = %v, want %v", tt.text, got, tt.ok)
			}
		})
	}
}

func TestStatsClassification(t *testing.T) {
	v := New(config.FiltersConfig{
		MinCommentLength: 5,
		MaxCommentLength: 10000,
		ExcludeSpam:      true,
		Languages:        []string{"en"},
	})

	missing := testComment("fine but anonymous")
	missing.AuthorDisplayName = ""

	comments := []*models.Comment{
		testComment("I absolutely love this video!"),
		testComment("a"), // length
		testComment("SPAM SPAM SPAM CLICK HERE FOR FREE MONEY!!!"), // spam
		testComment("это русский комментарий"),                     // language
		missing, // missing fields
	}

	stats := v.Stats(comments)

	if stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
	if stats.Valid+stats.Invalid != stats.Total {
		t.Errorf("valid (%d) + invalid (%d) != total (%d)", stats.Valid, stats.Invalid, stats.Total)
	}
	if stats.Valid != 1 {
		t.Errorf("Valid = %d, want 1", stats.Valid)
	}
	if stats.LengthViolations != 1 {
		t.Errorf("LengthViolations = %d, want 1", stats.LengthViolations)
	}
	if stats.Spam != 1 {
		t.Errorf("Spam = %d, want 1", stats.Spam)
	}
	if stats.LanguageViolations != 1 {
		t.Errorf("LanguageViolations = %d, want 1", stats.LanguageViolations)
	}
	if stats.MissingFields != 1 {
		t.Errorf("MissingFields = %d, want 1", stats.MissingFields)
	}
	if stats.ValidPercentage != 20 {
		t.Errorf("ValidPercentage = %v, want 20", stats.ValidPercentage)
	}
}

func TestStatsEmptyBatch(t *testing.T) {
	stats := defaultValidator().Stats(nil)
	if stats.Total != 0 || stats.ValidPercentage != 0 || stats.InvalidPercentage != 0 {
		t.Errorf("empty batch stats = %+v, want all zeros", stats)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"line\nbreaks\tand\ttabs", "line breaks and tabs"},
		{"zero​width\uFEFFchars", "zerowidthchars"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanCommentText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"wow!!!!!!!", "wow!!!"},
		{"really????? why", "really??? why"},
		{"fine as is.", "fine as is."},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCommentText(tt.in); got != tt.want {
			t.Errorf("CleanCommentText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
