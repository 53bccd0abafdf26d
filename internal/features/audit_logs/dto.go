package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetApiRequestLogsFilter struct {
	ApiKeyID   *uuid.UUID
	StatusCode *int
	Since      *time.Time
	Limit      int
	Offset     int
}

type GetApiRequestLogsResponseDTO struct {
	Logs []*ApiRequestLog `json:"logs"`
}
