package audit_logs

import (
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/storage"

	"github.com/google/uuid"
)

type ApiRequestLogRepository struct{}

func (r *ApiRequestLogRepository) CreateLog(log *ApiRequestLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	return storage.GetDb().Create(log).Error
}

func (r *ApiRequestLogRepository) GetLogsByTenantID(
	tenantID uuid.UUID,
	filter *GetApiRequestLogsFilter,
) ([]*ApiRequestLog, error) {
	var logs = make([]*ApiRequestLog, 0)

	query := storage.GetDb().
		Where("tenant_id = ?", tenantID).
		Order("timestamp DESC")

	if filter.ApiKeyID != nil {
		query = query.Where("api_key_id = ?", *filter.ApiKeyID)
	}

	if filter.StatusCode != nil {
		query = query.Where("status_code = ?", *filter.StatusCode)
	}

	if filter.Since != nil {
		query = query.Where("timestamp >= ?", *filter.Since)
	}

	err := query.
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error

	return logs, err
}

func (r *ApiRequestLogRepository) CountLogsByTenantID(tenantID uuid.UUID, since time.Time) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&ApiRequestLog{}).
		Where("tenant_id = ? AND timestamp >= ?", tenantID, since).
		Count(&count).Error

	return count, err
}
