package audit_logs

import (
	"sync"

	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"
)

var (
	apiRequestLogRepository = &ApiRequestLogRepository{}

	once                    sync.Once
	apiRequestLogService    *ApiRequestLogService
	apiRequestLogController *ApiRequestLogController
)

func GetApiRequestLogService() *ApiRequestLogService {
	initDependencies()
	return apiRequestLogService
}

func GetApiRequestLogController() *ApiRequestLogController {
	initDependencies()
	return apiRequestLogController
}

func initDependencies() {
	once.Do(func() {
		apiRequestLogService = NewApiRequestLogService(apiRequestLogRepository, logger.GetLogger())
		apiRequestLogController = NewApiRequestLogController(apiRequestLogService)
	})
}
