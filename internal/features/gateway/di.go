package gateway

import (
	"sync"

	"github.com/git-webzoom/assistente-x-hub/internal/features/api_keys"
	"github.com/git-webzoom/assistente-x-hub/internal/features/audit_logs"
	"github.com/git-webzoom/assistente-x-hub/internal/features/webhooks"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"
	"github.com/git-webzoom/assistente-x-hub/internal/util/rate_limit"
)

var (
	once              sync.Once
	resourceService   *ResourceService
	gatewayMiddleware *GatewayMiddleware
	gatewayController *GatewayController
)

func GetResourceService() *ResourceService {
	initDependencies()
	return resourceService
}

func GetGatewayController() *GatewayController {
	initDependencies()
	return gatewayController
}

func initDependencies() {
	once.Do(func() {
		resourceService = NewResourceService(
			DefaultResourceRegistry(),
			webhooks.GetWebhookService(),
			logger.GetLogger(),
		)

		gatewayMiddleware = NewGatewayMiddleware(
			api_keys.GetApiKeyService(),
			rate_limit.NewRateLimiter(),
			audit_logs.GetApiRequestLogService(),
			logger.GetLogger(),
		)

		gatewayController = NewGatewayController(resourceService, gatewayMiddleware)
	})
}
