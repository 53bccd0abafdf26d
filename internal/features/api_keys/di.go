package api_keys

import (
	"sync"

	"github.com/git-webzoom/assistente-x-hub/internal/cache"
	cache_utils "github.com/git-webzoom/assistente-x-hub/internal/util/cache"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"
)

var (
	apiKeyRepository = &ApiKeyRepository{}

	once             sync.Once
	apiKeyService    *ApiKeyService
	apiKeyController *ApiKeyController
)

func GetApiKeyService() *ApiKeyService {
	initDependencies()
	return apiKeyService
}

func GetApiKeyController() *ApiKeyController {
	initDependencies()
	return apiKeyController
}

func initDependencies() {
	once.Do(func() {
		apiKeyService = NewApiKeyService(
			apiKeyRepository,
			cache_utils.NewCacheUtil[CachedApiKey](cache.GetCache(), "axh_apikey:"),
			logger.GetLogger(),
		)

		apiKeyController = NewApiKeyController(apiKeyService)
	})
}
