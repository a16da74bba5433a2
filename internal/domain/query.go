package domain

import (
	"strconv"
	"strings"
	"time"
)

// LogQuery narrows a user's exercise log. Nil fields leave the corresponding
// constraint out of the store filter.
type LogQuery struct {
	From  *time.Time // inclusive lower bound on occurrence date
	To    *time.Time // inclusive upper bound on occurrence date
	Limit *int       // cap on returned records, applied after sorting
}

// ParseLogQuery builds a LogQuery from raw query parameters. Filter
// parameters are advisory, unlike request-body fields: a value that fails to
// parse drops its constraint instead of failing the request. A from after to
// is allowed and simply matches nothing.
func ParseLogQuery(from, to, limit string) LogQuery {
	var query LogQuery

	if trimmed := strings.TrimSpace(from); trimmed != "" {
		if parsed, err := ParseDate(trimmed); err == nil {
			query.From = &parsed
		}
	}
	if trimmed := strings.TrimSpace(to); trimmed != "" {
		if parsed, err := ParseDate(trimmed); err == nil {
			query.To = &parsed
		}
	}
	if trimmed := strings.TrimSpace(limit); trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed >= 0 {
			query.Limit = &parsed
		}
	}

	return query
}
