package api_keys

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	ID                 uuid.UUID  `json:"id"                 gorm:"column:id;primaryKey"`
	TenantID           uuid.UUID  `json:"tenantId"           gorm:"column:tenant_id"`
	Name               string     `json:"name"               gorm:"column:name"`
	KeyHash            string     `json:"-"                  gorm:"column:key_hash"` // Never expose in JSON
	KeyPrefix          string     `json:"keyPrefix"          gorm:"column:key_prefix"`
	IsActive           bool       `json:"isActive"           gorm:"column:is_active"`
	RateLimitPerMinute int        `json:"rateLimitPerMinute" gorm:"column:rate_limit_per_minute"`
	LastUsedAt         *time.Time `json:"lastUsedAt"         gorm:"column:last_used_at"`
	ExpiresAt          *time.Time `json:"expiresAt"          gorm:"column:expires_at"`
	CreatedAt          time.Time  `json:"createdAt"          gorm:"column:created_at"`

	Key string `json:"key,omitempty" gorm:"-"` // Temporary field only populated during creation
}

func (ApiKey) TableName() string {
	return "api_keys"
}

// IsExpired reports whether the key has an expiry in the past.
func (k *ApiKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(now)
}
