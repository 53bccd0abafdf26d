package time_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseTimestamp_WithAcceptedFormats_ParsesToUTC(t *testing.T) {
	cases := map[string]time.Time{
		"2026-03-14T09:26:53.589793Z":  time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC),
		"2026-03-14T09:26:53Z":         time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		"2026-03-14T09:26:53+02:00":    time.Date(2026, 3, 14, 7, 26, 53, 0, time.UTC),
		"2026-03-14T09:26:53":          time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		"2026-03-14 09:26:53":          time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		"2026-03-14":                   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	for input, expected := range cases {
		parsed, err := ParseTimestamp(input)
		require.NoError(t, err, "input %q", input)
		assert.True(t, parsed.Equal(expected), "input %q parsed to %v", input, parsed)
		assert.Equal(t, time.UTC, parsed.Location())
	}
}

func Test_ParseTimestamp_WithInvalidInput_ReturnsError(t *testing.T) {
	for _, input := range []string{"", "not-a-timestamp", "1700000000", "14/03/2026"} {
		_, err := ParseTimestamp(input)
		assert.ErrorIs(t, err, ErrUnsupportedTimestamp, "input %q", input)
	}
}
