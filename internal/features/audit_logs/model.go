package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

// ApiRequestLog is an append-only record of a single gateway request.
// Rows are never updated or deleted by the application.
type ApiRequestLog struct {
	ID             uuid.UUID  `json:"id"             gorm:"column:id;primaryKey"`
	TenantID       uuid.UUID  `json:"tenantId"       gorm:"column:tenant_id;index"`
	ApiKeyID       *uuid.UUID `json:"apiKeyId"       gorm:"column:api_key_id"`
	Method         string     `json:"method"         gorm:"column:method"`
	Path           string     `json:"path"           gorm:"column:path"`
	StatusCode     int        `json:"statusCode"     gorm:"column:status_code"`
	ResponseTimeMs int64      `json:"responseTimeMs" gorm:"column:response_time_ms"`
	IPAddress      string     `json:"ipAddress"      gorm:"column:ip_address"`
	UserAgent      string     `json:"userAgent"      gorm:"column:user_agent"`
	Timestamp      time.Time  `json:"timestamp"      gorm:"column:timestamp;index"`
}

func (ApiRequestLog) TableName() string {
	return "api_logs"
}
