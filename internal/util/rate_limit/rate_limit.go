package rate_limit

import (
	"context"
	"fmt"
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/cache"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// RateLimiter enforces per-API-key request budgets using a fixed one-minute
// window: a counter keyed by (api key, current minute) is incremented per
// request and the request is rejected once the counter exceeds the key's
// configured limit. The window resets at the next minute boundary.
type RateLimiter struct {
	client valkey.Client
}

type RateLimitResult struct {
	Allowed       bool `json:"allowed"`
	Limit         int  `json:"limit"`
	Remaining     int  `json:"remaining"`
	RetryAfterSec int  `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout           = 5 * time.Second
	keyPrefix                = "rate_limit:apikey:"
	DefaultRequestsPerMinute = 60

	// Counters live two windows so a key is never evicted mid-window.
	counterTTLSeconds = 120
)

func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithClient(cache.GetCache())
}

func NewRateLimiterWithClient(client valkey.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckMinuteLimit consumes one request from the key's current window and
// reports whether the request is allowed.
func (r *RateLimiter) CheckMinuteLimit(apiKeyID uuid.UUID, limitPerMinute int) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if limitPerMinute <= 0 {
		limitPerMinute = DefaultRequestsPerMinute
	}

	now := time.Now().UTC()
	key := windowKey(apiKeyID, now)

	incrResult := r.client.Do(ctx, r.client.B().Incr().Key(key).Build())
	if incrResult.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", incrResult.Error())
	}

	count, err := incrResult.AsInt64()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit counter: %w", err)
	}

	if count == 1 {
		r.client.Do(ctx, r.client.B().Expire().Key(key).Seconds(counterTTLSeconds).Build())
	}

	remaining := limitPerMinute - int(count)
	if remaining < 0 {
		remaining = 0
	}

	result := &RateLimitResult{
		Allowed:   count <= int64(limitPerMinute),
		Limit:     limitPerMinute,
		Remaining: remaining,
	}

	if !result.Allowed {
		result.RetryAfterSec = secondsToNextWindow(now)
	}

	return result, nil
}

func (r *RateLimiter) ResetRateLimit(apiKeyID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	key := windowKey(apiKeyID, time.Now().UTC())

	result := r.client.Do(ctx, r.client.B().Del().Key(key).Build())
	return result.Error()
}

func windowKey(apiKeyID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, apiKeyID.String(), now.Unix()/60)
}

func secondsToNextWindow(now time.Time) int {
	seconds := 60 - int(now.Unix()%60)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
