package time_parser

import (
	"errors"
	"time"
)

var ErrUnsupportedTimestamp = errors.New("unsupported timestamp format")

// timestampFormats in order of preference. Pagination cursors are emitted
// as RFC3339Nano, but callers building requests by hand tend to send the
// coarser variants too.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp converts a caller-supplied timestamp string to UTC.
// Returns ErrUnsupportedTimestamp when none of the accepted formats match;
// callers decide whether that is a 400 or a silent default.
func ParseTimestamp(value string) (time.Time, error) {
	for _, format := range timestampFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, ErrUnsupportedTimestamp
}
