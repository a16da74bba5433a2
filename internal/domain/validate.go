package domain

import (
	"strconv"
	"strings"
	"time"
)

// dateStringLayout matches the calendar-date rendering consumers parse,
// e.g. "Sun Jan 01 2023". Three-letter weekday and month, zero-padded day.
const dateStringLayout = "Mon Jan 02 2006"

// dateInputLayouts are the accepted occurrence-date formats, tried in order.
var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// FormatDate renders an occurrence date in the external contract format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateStringLayout)
}

// ParseDate parses an occurrence date from a request body. Malformed input
// fails the request rather than silently substituting the current time.
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateInputLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, validationErrorf("Invalid date")
}

// ParseDuration parses the duration field. The value must be an integer
// greater than zero; it arrives as a string because HTML forms post strings.
func ParseDuration(raw string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, validationErrorf("Duration must be a positive integer")
	}
	if parsed <= 0 {
		return 0, validationErrorf("Duration must be a positive integer")
	}
	return parsed, nil
}

// ValidateUsername trims and checks the display name.
func ValidateUsername(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", validationErrorf("Username is required")
	}
	return trimmed, nil
}

// ValidateDescription trims and checks the exercise description.
func ValidateDescription(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", validationErrorf("Description is required")
	}
	return trimmed, nil
}
