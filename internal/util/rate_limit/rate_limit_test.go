package rate_limit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_WindowKey_SameMinute_SameKey(t *testing.T) {
	apiKeyID := uuid.New()
	base := time.Date(2025, 6, 1, 12, 30, 5, 0, time.UTC)

	first := windowKey(apiKeyID, base)
	second := windowKey(apiKeyID, base.Add(54*time.Second))

	assert.Equal(t, first, second)
}

func Test_WindowKey_NextMinute_DifferentKey(t *testing.T) {
	apiKeyID := uuid.New()
	base := time.Date(2025, 6, 1, 12, 30, 5, 0, time.UTC)

	first := windowKey(apiKeyID, base)
	second := windowKey(apiKeyID, base.Add(time.Minute))

	assert.NotEqual(t, first, second)
}

func Test_WindowKey_DifferentKeys_DifferentCounters(t *testing.T) {
	now := time.Now().UTC()

	first := windowKey(uuid.New(), now)
	second := windowKey(uuid.New(), now)

	assert.NotEqual(t, first, second)
}

func Test_SecondsToNextWindow_AlwaysWithinMinute(t *testing.T) {
	for _, offset := range []int{0, 1, 30, 59} {
		now := time.Date(2025, 6, 1, 12, 30, offset, 0, time.UTC)

		seconds := secondsToNextWindow(now)

		assert.GreaterOrEqual(t, seconds, 1)
		assert.LessOrEqual(t, seconds, 60)
	}
}
