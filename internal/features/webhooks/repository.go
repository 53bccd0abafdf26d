package webhooks

import (
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/storage"

	"github.com/google/uuid"
)

type WebhookRepository struct{}

func (r *WebhookRepository) CreateWebhook(webhook *Webhook) error {
	if webhook.ID == uuid.Nil {
		webhook.ID = uuid.New()
	}

	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(webhook).Error
}

func (r *WebhookRepository) GetWebhooksByTenantID(tenantID uuid.UUID) ([]*Webhook, error) {
	var webhooks []*Webhook

	err := storage.GetDb().
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&webhooks).Error

	return webhooks, err
}

func (r *WebhookRepository) GetActiveWebhooksByTenantID(tenantID uuid.UUID) ([]*Webhook, error) {
	var webhooks []*Webhook

	err := storage.GetDb().
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Find(&webhooks).Error

	return webhooks, err
}

func (r *WebhookRepository) GetWebhookByID(webhookID uuid.UUID) (*Webhook, error) {
	var webhook Webhook

	err := storage.GetDb().
		Where("id = ?", webhookID).
		First(&webhook).Error

	if err != nil {
		return nil, err
	}

	return &webhook, nil
}

func (r *WebhookRepository) UpdateWebhook(webhook *Webhook) error {
	return storage.GetDb().Save(webhook).Error
}

func (r *WebhookRepository) DeleteWebhook(webhookID uuid.UUID) error {
	return storage.GetDb().Delete(&Webhook{}, webhookID).Error
}

func (r *WebhookRepository) CreateDeliveryLog(log *WebhookDeliveryLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(log).Error
}

func (r *WebhookRepository) GetDeliveryLogsByWebhookID(
	webhookID uuid.UUID,
	limit, offset int,
) ([]*WebhookDeliveryLog, error) {
	var logs = make([]*WebhookDeliveryLog, 0)

	err := storage.GetDb().
		Where("webhook_id = ?", webhookID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error

	return logs, err
}
