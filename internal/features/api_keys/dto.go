package api_keys

import (
	"time"

	"github.com/google/uuid"
)

type CreateApiKeyRequestDTO struct {
	Name               string     `json:"name"               binding:"required,min=1,max=100"`
	RateLimitPerMinute *int       `json:"rateLimitPerMinute" binding:"omitempty,min=1,max=10000"`
	ExpiresAt          *time.Time `json:"expiresAt"`
}

type UpdateApiKeyRequestDTO struct {
	Name               *string    `json:"name,omitempty"               binding:"omitempty,min=1,max=100"`
	IsActive           *bool      `json:"isActive,omitempty"`
	RateLimitPerMinute *int       `json:"rateLimitPerMinute,omitempty" binding:"omitempty,min=1,max=10000"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
}

type GetApiKeysResponseDTO struct {
	ApiKeys []*ApiKey `json:"apiKeys"`
}

// CachedApiKey is the verification-cache projection of an ApiKey. NotFound
// entries record misses so repeated garbage keys do not hammer the database.
type CachedApiKey struct {
	ID                 uuid.UUID  `json:"id"`
	TenantID           uuid.UUID  `json:"tenantId"`
	IsActive           bool       `json:"isActive"`
	RateLimitPerMinute int        `json:"rateLimitPerMinute"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	NotFound           bool       `json:"notFound,omitempty"`
}
