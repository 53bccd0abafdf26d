package gateway

import (
	"sync"
	"testing"

	"github.com/git-webzoom/assistente-x-hub/internal/features/api_keys"
	"github.com/git-webzoom/assistente-x-hub/internal/features/audit_logs"
	"github.com/git-webzoom/assistente-x-hub/internal/features/resources"
	users_models "github.com/git-webzoom/assistente-x-hub/internal/features/users/models"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"
	"github.com/git-webzoom/assistente-x-hub/internal/util/rate_limit"
	test_utils "github.com/git-webzoom/assistente-x-hub/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecordingDispatcher captures dispatched events instead of delivering
// webhooks.
type RecordingDispatcher struct {
	mu     sync.Mutex
	events []RecordedEvent
}

type RecordedEvent struct {
	TenantID  uuid.UUID
	EventType string
	Payload   any
}

func (d *RecordingDispatcher) Dispatch(tenantID uuid.UUID, eventType string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, RecordedEvent{TenantID: tenantID, EventType: eventType, Payload: payload})
}

func (d *RecordingDispatcher) Events() []RecordedEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]RecordedEvent(nil), d.events...)
}

// StaticLimiter answers every check with a fixed verdict.
type StaticLimiter struct {
	Allowed       bool
	RetryAfterSec int
}

func (l *StaticLimiter) CheckMinuteLimit(_ uuid.UUID, limitPerMinute int) (*rate_limit.RateLimitResult, error) {
	return &rate_limit.RateLimitResult{
		Allowed:       l.Allowed,
		Limit:         limitPerMinute,
		RetryAfterSec: l.RetryAfterSec,
	}, nil
}

// TestGateway bundles a routed engine with the services needed to seed data
// and issue keys in tests.
type TestGateway struct {
	Router        *gin.Engine
	ApiKeyService *api_keys.ApiKeyService
	Dispatcher    *RecordingDispatcher
	Limiter       *StaticLimiter
}

// NewTestGateway migrates a fresh database with every resource table and
// mounts the /v1 routes with fake limiter and dispatcher.
func NewTestGateway(t *testing.T) *TestGateway {
	t.Helper()

	test_utils.CreateTestDb(t,
		&api_keys.ApiKey{},
		&audit_logs.ApiRequestLog{},
		&resources.Contact{},
		&resources.Product{},
		&resources.Card{},
		&resources.Appointment{},
		&resources.Task{},
	)

	apiKeyService := api_keys.NewTestApiKeyService()
	dispatcher := &RecordingDispatcher{}
	limiter := &StaticLimiter{Allowed: true}

	resourceService := NewResourceService(DefaultResourceRegistry(), dispatcher, logger.GetLogger())
	middleware := NewGatewayMiddleware(
		apiKeyService,
		limiter,
		audit_logs.NewApiRequestLogService(&audit_logs.ApiRequestLogRepository{}, logger.GetLogger()),
		logger.GetLogger(),
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewGatewayController(resourceService, middleware).RegisterRoutes(router)

	return &TestGateway{
		Router:        router,
		ApiKeyService: apiKeyService,
		Dispatcher:    dispatcher,
		Limiter:       limiter,
	}
}

// IssueKey creates an API key for a fresh tenant and returns it with the
// plaintext populated.
func (g *TestGateway) IssueKey(t *testing.T, name string) *api_keys.ApiKey {
	t.Helper()

	owner := &users_models.User{ID: uuid.New(), TenantID: uuid.New()}

	return api_keys.CreateTestApiKey(t, g.ApiKeyService, owner, name)
}
