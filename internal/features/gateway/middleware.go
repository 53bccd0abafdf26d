package gateway

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/features/api_keys"
	"github.com/git-webzoom/assistente-x-hub/internal/features/audit_logs"
	"github.com/git-webzoom/assistente-x-hub/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ApiKeyHeader = "x-api-key"

	authContextKey = "gatewayAuthContext"
)

// AuthContext is the per-request tenant identity resolved from a verified
// API key.
type AuthContext struct {
	TenantID uuid.UUID
	ApiKeyID uuid.UUID
}

// MinuteLimiter is the slice of the rate limiter the gateway needs.
type MinuteLimiter interface {
	CheckMinuteLimit(apiKeyID uuid.UUID, limitPerMinute int) (*rate_limit.RateLimitResult, error)
}

type GatewayMiddleware struct {
	apiKeyService        *api_keys.ApiKeyService
	limiter              MinuteLimiter
	apiRequestLogService *audit_logs.ApiRequestLogService
	logger               *slog.Logger
}

func NewGatewayMiddleware(
	apiKeyService *api_keys.ApiKeyService,
	limiter MinuteLimiter,
	apiRequestLogService *audit_logs.ApiRequestLogService,
	logger *slog.Logger,
) *GatewayMiddleware {
	return &GatewayMiddleware{
		apiKeyService:        apiKeyService,
		limiter:              limiter,
		apiRequestLogService: apiRequestLogService,
		logger:               logger,
	}
}

// Handle authenticates the presented API key, enforces the key's per-minute
// rate limit and, after the request completes, records one api_logs row.
// Missing, unknown, inactive and expired keys all produce the same 401 to
// avoid leaking which case applied.
func (m *GatewayMiddleware) Handle(ctx *gin.Context) {
	startTime := time.Now()

	presentedKey := ctx.GetHeader(ApiKeyHeader)
	if presentedKey == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Message})
		return
	}

	cached := m.apiKeyService.VerifyKey(presentedKey)
	if cached == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Message})
		return
	}

	authContext := &AuthContext{TenantID: cached.TenantID, ApiKeyID: cached.ID}
	ctx.Set(authContextKey, authContext)

	result, err := m.limiter.CheckMinuteLimit(cached.ID, cached.RateLimitPerMinute)
	if err != nil {
		// fail open: a limiter outage must not take the gateway down
		m.logger.Error(
			"rate limit check failed",
			slog.String("apiKeyId", cached.ID.String()),
			slog.String("error", err.Error()),
		)
	} else if !result.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
		ctx.Abort()

		m.recordRequest(ctx, authContext, startTime)

		return
	}

	go m.apiKeyService.TouchLastUsed(cached.ID)

	ctx.Next()

	m.recordRequest(ctx, authContext, startTime)
}

func (m *GatewayMiddleware) recordRequest(ctx *gin.Context, authContext *AuthContext, startTime time.Time) {
	apiKeyID := authContext.ApiKeyID

	m.apiRequestLogService.RecordRequest(&audit_logs.ApiRequestLog{
		TenantID:       authContext.TenantID,
		ApiKeyID:       &apiKeyID,
		Method:         ctx.Request.Method,
		Path:           ctx.Request.URL.Path,
		StatusCode:     ctx.Writer.Status(),
		ResponseTimeMs: time.Since(startTime).Milliseconds(),
		IPAddress:      ctx.ClientIP(),
		UserAgent:      ctx.Request.UserAgent(),
		Timestamp:      time.Now().UTC(),
	})
}

// GetAuthContext returns the tenant identity set by Handle.
func GetAuthContext(ctx *gin.Context) (*AuthContext, bool) {
	value, exists := ctx.Get(authContextKey)
	if !exists {
		return nil, false
	}

	authContext, ok := value.(*AuthContext)
	return authContext, ok
}
