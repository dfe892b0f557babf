package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// IsValidVideoID reports whether s has the shape of a YouTube video ID:
// exactly 11 characters, alphanumeric plus dash and underscore.
func IsValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// ExtractVideoID resolves a bare video ID or any common YouTube URL form
// (watch?v=, youtu.be short link, /embed/, /v/) to the 11-character ID.
// It is idempotent: feeding it an ID it already produced returns that ID.
func ExtractVideoID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)

	// Undo shell escaping that sneaks in when URLs are pasted unquoted.
	s = strings.NewReplacer(`\?`, "?", `\=`, "=", `\&`, "&").Replace(s)

	if IsValidVideoID(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, urlOrID)
	}

	var candidate string
	switch u.Hostname() {
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		switch {
		case u.Path == "/watch":
			candidate = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			candidate = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/v/"):
			candidate = strings.TrimPrefix(u.Path, "/v/")
		}
	case "youtu.be":
		candidate = strings.TrimPrefix(u.Path, "/")
	}

	if IsValidVideoID(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, urlOrID)
}

// ValidateYouTubeURL reports whether a video ID can be extracted from s.
func ValidateYouTubeURL(s string) bool {
	_, err := ExtractVideoID(s)
	return err == nil
}
