package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/config"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"
	test_utils "github.com/git-webzoom/assistente-x-hub/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWebhookService(t *testing.T, scheme string) *WebhookService {
	test_utils.CreateTestDb(t, &Webhook{}, &WebhookDeliveryLog{})

	return NewWebhookService(&WebhookRepository{}, scheme, logger.GetLogger())
}

func createTestWebhook(t *testing.T, service *WebhookService, tenantID uuid.UUID, url string, events []string) *Webhook {
	webhook, err := service.CreateWebhook(tenantID, &CreateWebhookRequestDTO{
		URL:    url,
		Events: events,
	})
	require.NoError(t, err)

	return webhook
}

func Test_ComputeSignature_WhenSha256Concat_MatchesHashOfSecretPlusPayload(t *testing.T) {
	payload := []byte(`{"event":"contact.created"}`)

	hasher := sha256.New()
	hasher.Write([]byte("whsec"))
	hasher.Write(payload)
	expected := hex.EncodeToString(hasher.Sum(nil))

	signature := ComputeSignature(config.WebhookSignatureSchemeSha256Concat, "whsec", payload)

	assert.Equal(t, expected, signature)
}

func Test_ComputeSignature_WhenHmacSha256_MatchesHmacDigest(t *testing.T) {
	payload := []byte(`{"event":"contact.created"}`)

	mac := hmac.New(sha256.New, []byte("whsec"))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	signature := ComputeSignature(config.WebhookSignatureSchemeHmacSha256, "whsec", payload)

	assert.Equal(t, expected, signature)
}

func Test_Deliver_WhenEndpointResponds_RecordsStatusAndHeaders(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)
	tenantID := uuid.New()

	var mu sync.Mutex
	var gotSignature, gotEventType, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		gotSignature = r.Header.Get("X-Webhook-Signature")
		gotEventType = r.Header.Get("X-Event-Type")
		gotBody = string(body)
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	webhook := createTestWebhook(t, service, tenantID, server.URL, []string{"contact.created"})

	body, err := json.Marshal(map[string]string{"event": "contact.created"})
	require.NoError(t, err)

	service.Deliver(webhook, "contact.created", body)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, "contact.created", gotEventType)
	assert.Equal(t, ComputeSignature(config.WebhookSignatureSchemeSha256Concat, webhook.Secret, body), gotSignature)
	assert.JSONEq(t, string(body), gotBody)

	logs, err := service.repository.GetDeliveryLogsByWebhookID(webhook.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, http.StatusOK, logs[0].ResponseStatus)
	assert.Equal(t, "ok", logs[0].ResponseBody)
}

func Test_Deliver_WhenEndpointUnreachable_RecordsZeroStatusAttempt(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)
	tenantID := uuid.New()

	webhook := createTestWebhook(t, service, tenantID, "http://127.0.0.1:1/hook", []string{"contact.created"})

	service.Deliver(webhook, "contact.created", []byte(`{}`))

	logs, err := service.repository.GetDeliveryLogsByWebhookID(webhook.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 0, logs[0].ResponseStatus)
	assert.Contains(t, logs[0].ResponseBody, "delivery failed")
}

func Test_Dispatch_WhenWebhookNotSubscribed_DeliversNothing(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)
	tenantID := uuid.New()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := createTestWebhook(t, service, tenantID, server.URL, []string{"product.updated"})

	service.Dispatch(tenantID, "contact.created", map[string]string{"id": uuid.NewString()})
	service.Wait()

	assert.Equal(t, 0, requests)

	logs, err := service.repository.GetDeliveryLogsByWebhookID(webhook.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func Test_Dispatch_WhenWebhookInactive_DeliversNothing(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)
	tenantID := uuid.New()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := createTestWebhook(t, service, tenantID, server.URL, []string{"contact.created"})

	isActive := false
	_, err := service.UpdateWebhook(tenantID, webhook.ID, &UpdateWebhookRequestDTO{IsActive: &isActive})
	require.NoError(t, err)

	service.Dispatch(tenantID, "contact.created", map[string]string{"id": uuid.NewString()})
	service.Wait()

	assert.Equal(t, 0, requests)
}

func Test_Dispatch_WhenMultipleSubscribers_DeliversToEach(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeHmacSha256)
	tenantID := uuid.New()

	var mu sync.Mutex
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	first := createTestWebhook(t, service, tenantID, server.URL, []string{"contact.created", "contact.deleted"})
	second := createTestWebhook(t, service, tenantID, server.URL, []string{"contact.created"})

	service.Dispatch(tenantID, "contact.created", map[string]string{"id": uuid.NewString()})
	service.Wait()

	mu.Lock()
	assert.Equal(t, 2, requests)
	mu.Unlock()

	for _, webhook := range []*Webhook{first, second} {
		logs, err := service.repository.GetDeliveryLogsByWebhookID(webhook.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, http.StatusAccepted, logs[0].ResponseStatus)
		assert.Equal(t, "contact.created", logs[0].EventType)
	}
}

func Test_Dispatch_WhenOtherTenantEvent_DoesNotCrossTenants(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	createTestWebhook(t, service, uuid.New(), server.URL, []string{"contact.created"})

	service.Dispatch(uuid.New(), "contact.created", map[string]string{"id": uuid.NewString()})
	service.Wait()

	assert.Equal(t, 0, requests)
}

func Test_UpdateWebhook_WhenDifferentTenant_ReturnsNotFound(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)

	webhook := createTestWebhook(t, service, uuid.New(), "https://example.com/hook", []string{"contact.created"})

	url := "https://example.com/other"
	_, err := service.UpdateWebhook(uuid.New(), webhook.ID, &UpdateWebhookRequestDTO{URL: &url})

	assert.ErrorIs(t, err, ErrWebhookNotFound)
}

func Test_GetDeliveryLogs_WhenMultipleAttempts_ReturnsNewestFirst(t *testing.T) {
	service := newTestWebhookService(t, config.WebhookSignatureSchemeSha256Concat)
	tenantID := uuid.New()

	webhook := createTestWebhook(t, service, tenantID, "https://example.com/hook", []string{"contact.created"})

	for i, status := range []int{200, 500, 404} {
		err := service.repository.CreateDeliveryLog(&WebhookDeliveryLog{
			WebhookID:      webhook.ID,
			EventType:      "contact.created",
			Payload:        []byte(`{}`),
			ResponseStatus: status,
			CreatedAt:      time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	logs, err := service.GetDeliveryLogs(tenantID, webhook.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 404, logs[0].ResponseStatus)
	assert.Equal(t, 500, logs[1].ResponseStatus)
}
