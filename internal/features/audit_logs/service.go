package audit_logs

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLogsLimit = 50
	maxLogsLimit     = 200
)

type ApiRequestLogService struct {
	repository *ApiRequestLogRepository
	logger     *slog.Logger
}

func NewApiRequestLogService(repository *ApiRequestLogRepository, logger *slog.Logger) *ApiRequestLogService {
	return &ApiRequestLogService{
		repository: repository,
		logger:     logger,
	}
}

// RecordRequest persists one log row. Failures are logged and swallowed:
// audit logging never fails a gateway request.
func (s *ApiRequestLogService) RecordRequest(log *ApiRequestLog) {
	if err := s.repository.CreateLog(log); err != nil {
		s.logger.Error(
			"failed to persist api request log",
			slog.String("tenantId", log.TenantID.String()),
			slog.String("path", log.Path),
			slog.String("error", err.Error()),
		)
	}
}

func (s *ApiRequestLogService) GetLogs(
	tenantID uuid.UUID,
	filter *GetApiRequestLogsFilter,
) ([]*ApiRequestLog, error) {
	if filter.Limit < 1 {
		filter.Limit = defaultLogsLimit
	}
	if filter.Limit > maxLogsLimit {
		filter.Limit = maxLogsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repository.GetLogsByTenantID(tenantID, filter)
}

func (s *ApiRequestLogService) CountSince(tenantID uuid.UUID, since time.Time) (int64, error) {
	return s.repository.CountLogsByTenantID(tenantID, since)
}
