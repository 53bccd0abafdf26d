package audit_logs

import (
	"net/http"
	"strconv"
	"time"

	users_middleware "github.com/git-webzoom/assistente-x-hub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiRequestLogController struct {
	apiRequestLogService *ApiRequestLogService
}

func NewApiRequestLogController(apiRequestLogService *ApiRequestLogService) *ApiRequestLogController {
	return &ApiRequestLogController{apiRequestLogService: apiRequestLogService}
}

func (c *ApiRequestLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api-logs", c.GetApiRequestLogs)
}

// GetApiRequestLogs
// @Summary List gateway request logs
// @Description Most recent requests first. Filterable by API key, status code and time.
// @Tags api-logs
// @Produce json
// @Security BearerAuth
// @Param apiKeyId query string false "Filter by API key ID"
// @Param statusCode query int false "Filter by response status code"
// @Param since query string false "RFC3339 lower bound on timestamp"
// @Param limit query int false "Max rows to return (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} GetApiRequestLogsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api-logs [get]
func (c *ApiRequestLogController) GetApiRequestLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filter := &GetApiRequestLogsFilter{}

	if raw := ctx.Query("apiKeyId"); raw != "" {
		apiKeyID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
			return
		}
		filter.ApiKeyID = &apiKeyID
	}

	if raw := ctx.Query("statusCode"); raw != "" {
		statusCode, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status code"})
			return
		}
		filter.StatusCode = &statusCode
	}

	if raw := ctx.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since timestamp, expected RFC3339"})
			return
		}
		filter.Since = &since
	}

	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	logs, err := c.apiRequestLogService.GetLogs(user.TenantID, filter)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, GetApiRequestLogsResponseDTO{Logs: logs})
}
