package webhooks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Webhook struct {
	ID        uuid.UUID      `json:"id"        gorm:"column:id;primaryKey"`
	TenantID  uuid.UUID      `json:"tenantId"  gorm:"column:tenant_id"`
	URL       string         `json:"url"       gorm:"column:url"`
	Events    datatypes.JSON `json:"events"    gorm:"column:events"` // JSON array of event names
	IsActive  bool           `json:"isActive"  gorm:"column:is_active"`
	Secret    string         `json:"secret"    gorm:"column:secret"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

func (w *Webhook) EventNames() []string {
	var names []string
	if err := json.Unmarshal(w.Events, &names); err != nil {
		return nil
	}
	return names
}

func (w *Webhook) SubscribesTo(eventType string) bool {
	for _, name := range w.EventNames() {
		if name == eventType {
			return true
		}
	}
	return false
}

// WebhookDeliveryLog is an append-only record of a single delivery attempt.
// ResponseStatus 0 means the request itself failed; ResponseBody then holds
// the local error description.
type WebhookDeliveryLog struct {
	ID             uuid.UUID      `json:"id"             gorm:"column:id;primaryKey"`
	WebhookID      uuid.UUID      `json:"webhookId"      gorm:"column:webhook_id"`
	EventType      string         `json:"eventType"      gorm:"column:event_type"`
	Payload        datatypes.JSON `json:"payload"        gorm:"column:payload"`
	ResponseStatus int            `json:"responseStatus" gorm:"column:response_status"`
	ResponseBody   string         `json:"responseBody"   gorm:"column:response_body"`
	CreatedAt      time.Time      `json:"createdAt"      gorm:"column:created_at"`
}

func (WebhookDeliveryLog) TableName() string {
	return "webhook_logs"
}
