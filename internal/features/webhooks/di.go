package webhooks

import (
	"sync"

	"github.com/git-webzoom/assistente-x-hub/internal/config"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"
)

var (
	webhookRepository = &WebhookRepository{}

	once              sync.Once
	webhookService    *WebhookService
	webhookController *WebhookController
)

func GetWebhookService() *WebhookService {
	initDependencies()
	return webhookService
}

func GetWebhookController() *WebhookController {
	initDependencies()
	return webhookController
}

func initDependencies() {
	once.Do(func() {
		webhookService = NewWebhookService(
			webhookRepository,
			config.GetEnv().WebhookSignatureScheme,
			logger.GetLogger(),
		)

		webhookController = NewWebhookController(webhookService)
	})
}
