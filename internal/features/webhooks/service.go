package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	deliveryTimeout     = 5 * time.Second
	responseBodyMaxSize = 4 * 1024
)

var ErrWebhookNotFound = errors.New("webhook not found")

type WebhookService struct {
	repository      *WebhookRepository
	httpClient      *http.Client
	signatureScheme string
	logger          *slog.Logger

	wg sync.WaitGroup
}

func NewWebhookService(
	repository *WebhookRepository,
	signatureScheme string,
	logger *slog.Logger,
) *WebhookService {
	return &WebhookService{
		repository:      repository,
		httpClient:      &http.Client{Timeout: deliveryTimeout},
		signatureScheme: signatureScheme,
		logger:          logger,
	}
}

func (s *WebhookService) CreateWebhook(tenantID uuid.UUID, request *CreateWebhookRequestDTO) (*Webhook, error) {
	events, err := json.Marshal(request.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to encode events: %w", err)
	}

	webhook := &Webhook{
		ID:       uuid.New(),
		TenantID: tenantID,
		URL:      request.URL,
		Events:   datatypes.JSON(events),
		IsActive: true,
		Secret:   uuid.NewString(),
	}

	if err := s.repository.CreateWebhook(webhook); err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}

	return webhook, nil
}

func (s *WebhookService) GetWebhooks(tenantID uuid.UUID) ([]*Webhook, error) {
	return s.repository.GetWebhooksByTenantID(tenantID)
}

func (s *WebhookService) UpdateWebhook(
	tenantID uuid.UUID,
	webhookID uuid.UUID,
	request *UpdateWebhookRequestDTO,
) (*Webhook, error) {
	webhook, err := s.getTenantOwnedWebhook(tenantID, webhookID)
	if err != nil {
		return nil, err
	}

	if request.URL != nil {
		webhook.URL = *request.URL
	}

	if request.Events != nil {
		events, err := json.Marshal(request.Events)
		if err != nil {
			return nil, fmt.Errorf("failed to encode events: %w", err)
		}

		webhook.Events = datatypes.JSON(events)
	}

	if request.IsActive != nil {
		webhook.IsActive = *request.IsActive
	}

	if err := s.repository.UpdateWebhook(webhook); err != nil {
		return nil, fmt.Errorf("failed to update webhook: %w", err)
	}

	return webhook, nil
}

func (s *WebhookService) DeleteWebhook(tenantID uuid.UUID, webhookID uuid.UUID) error {
	if _, err := s.getTenantOwnedWebhook(tenantID, webhookID); err != nil {
		return err
	}

	return s.repository.DeleteWebhook(webhookID)
}

func (s *WebhookService) GetDeliveryLogs(
	tenantID uuid.UUID,
	webhookID uuid.UUID,
	limit, offset int,
) ([]*WebhookDeliveryLog, error) {
	if _, err := s.getTenantOwnedWebhook(tenantID, webhookID); err != nil {
		return nil, err
	}

	return s.repository.GetDeliveryLogsByWebhookID(webhookID, limit, offset)
}

// Dispatch fans an event out to every active subscribed webhook of the
// tenant. Delivery happens in a background goroutine per webhook and never
// blocks the caller; failures are recorded in webhook_logs, not returned.
func (s *WebhookService) Dispatch(tenantID uuid.UUID, eventType string, payload any) {
	webhooks, err := s.repository.GetActiveWebhooksByTenantID(tenantID)
	if err != nil {
		s.logger.Error(
			"failed to load webhooks for dispatch",
			slog.String("tenantId", tenantID.String()),
			slog.String("eventType", eventType),
			slog.String("error", err.Error()),
		)

		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(
			"failed to encode webhook payload",
			slog.String("eventType", eventType),
			slog.String("error", err.Error()),
		)

		return
	}

	for _, webhook := range webhooks {
		if !webhook.SubscribesTo(eventType) {
			continue
		}

		s.wg.Add(1)

		go func(webhook *Webhook) {
			defer s.wg.Done()

			s.Deliver(webhook, eventType, body)
		}(webhook)
	}
}

// Deliver executes a single delivery attempt and persists exactly one
// webhook_logs row for it. There are no retries.
func (s *WebhookService) Deliver(webhook *Webhook, eventType string, body []byte) {
	deliveryLog := &WebhookDeliveryLog{
		WebhookID: webhook.ID,
		EventType: eventType,
		Payload:   datatypes.JSON(body),
	}

	request, err := http.NewRequest(http.MethodPost, webhook.URL, bytes.NewReader(body))
	if err != nil {
		deliveryLog.ResponseBody = fmt.Sprintf("failed to build request: %v", err)
		s.saveDeliveryLog(deliveryLog)

		return
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Webhook-Signature", ComputeSignature(s.signatureScheme, webhook.Secret, body))
	request.Header.Set("X-Event-Type", eventType)

	response, err := s.httpClient.Do(request)
	if err != nil {
		deliveryLog.ResponseBody = fmt.Sprintf("delivery failed: %v", err)
		s.saveDeliveryLog(deliveryLog)

		return
	}

	defer func() { _ = response.Body.Close() }()

	responseBody, _ := io.ReadAll(io.LimitReader(response.Body, responseBodyMaxSize))

	deliveryLog.ResponseStatus = response.StatusCode
	deliveryLog.ResponseBody = string(responseBody)

	s.saveDeliveryLog(deliveryLog)
}

// Wait blocks until all in-flight deliveries have finished. Used on
// shutdown so pending events are not lost.
func (s *WebhookService) Wait() {
	s.wg.Wait()
}

func (s *WebhookService) saveDeliveryLog(deliveryLog *WebhookDeliveryLog) {
	if err := s.repository.CreateDeliveryLog(deliveryLog); err != nil {
		s.logger.Error(
			"failed to persist webhook delivery log",
			slog.String("webhookId", deliveryLog.WebhookID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *WebhookService) getTenantOwnedWebhook(tenantID uuid.UUID, webhookID uuid.UUID) (*Webhook, error) {
	webhook, err := s.repository.GetWebhookByID(webhookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebhookNotFound
		}

		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}

	if webhook.TenantID != tenantID {
		return nil, ErrWebhookNotFound
	}

	return webhook, nil
}
