package youtube

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// Typed failures surfaced by the client. Callers distinguish them with
// errors.Is; none is ever downgraded into another category.
var (
	ErrInvalidVideoID   = errors.New("invalid video ID")
	ErrNotFound         = errors.New("video not found or comments disabled")
	ErrQuotaExceeded    = errors.New("API quota exceeded")
	ErrPermissionDenied = errors.New("permission denied")
	ErrService          = errors.New("YouTube service error")
)

// classifyAPIError maps a Data API failure onto the typed errors above:
// 403 + quota reason -> ErrQuotaExceeded, 403 + commentsDisabled ->
// ErrNotFound, other 403 -> ErrPermissionDenied, 404 -> ErrNotFound,
// 5xx -> ErrService, anything else passes through wrapped.
func classifyAPIError(err error, op string) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case gerr.Code == 403 && (hasReason(gerr, "quotaExceeded") || hasReason(gerr, "dailyLimitExceeded")):
		return fmt.Errorf("%s: %w", op, ErrQuotaExceeded)
	case gerr.Code == 403 && hasReason(gerr, "commentsDisabled"):
		return fmt.Errorf("%s: comments are disabled for this video: %w", op, ErrNotFound)
	case gerr.Code == 403:
		return fmt.Errorf("%s: %s: %w", op, gerr.Message, ErrPermissionDenied)
	case gerr.Code == 404:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case gerr.Code >= 500:
		return fmt.Errorf("%s: %s: %w", op, gerr.Message, ErrService)
	default:
		return fmt.Errorf("%s: API error %d: %s", op, gerr.Code, gerr.Message)
	}
}

func hasReason(gerr *googleapi.Error, reason string) bool {
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return strings.Contains(gerr.Message, reason)
}
