package webhooks

import (
	"errors"
	"net/http"
	"strconv"

	users_middleware "github.com/git-webzoom/assistente-x-hub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultDeliveryLogsLimit = 50
	maxDeliveryLogsLimit     = 200
)

type WebhookController struct {
	webhookService *WebhookService
}

func NewWebhookController(webhookService *WebhookService) *WebhookController {
	return &WebhookController{webhookService: webhookService}
}

func (c *WebhookController) RegisterRoutes(router *gin.RouterGroup) {
	webhookRoutes := router.Group("/webhooks")

	webhookRoutes.POST("", c.CreateWebhook)
	webhookRoutes.GET("", c.GetWebhooks)
	webhookRoutes.PUT("/:webhookId", c.UpdateWebhook)
	webhookRoutes.DELETE("/:webhookId", c.DeleteWebhook)
	webhookRoutes.GET("/:webhookId/deliveries", c.GetDeliveryLogs)
}

// CreateWebhook
// @Summary Create a webhook subscription
// @Description Subscribe a URL to one or more event types. The signing secret is generated server-side.
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWebhookRequestDTO true "Webhook creation data"
// @Success 200 {object} Webhook
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks [post]
func (c *WebhookController) CreateWebhook(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateWebhookRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	webhook, err := c.webhookService.CreateWebhook(user.TenantID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, webhook)
}

// GetWebhooks
// @Summary List tenant webhooks
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GetWebhooksResponseDTO
// @Failure 401 {object} map[string]string
// @Router /webhooks [get]
func (c *WebhookController) GetWebhooks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	webhooks, err := c.webhookService.GetWebhooks(user.TenantID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, GetWebhooksResponseDTO{Webhooks: webhooks})
}

// UpdateWebhook
// @Summary Update webhook
// @Description Update webhook URL, subscribed events or active state
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param webhookId path string true "Webhook ID"
// @Param request body UpdateWebhookRequestDTO true "Webhook update data"
// @Success 200 {object} Webhook
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/{webhookId} [put]
func (c *WebhookController) UpdateWebhook(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	webhookID, err := uuid.Parse(ctx.Param("webhookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook ID"})
		return
	}

	var request UpdateWebhookRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	webhook, err := c.webhookService.UpdateWebhook(user.TenantID, webhookID, &request)
	if err != nil {
		if errors.Is(err, ErrWebhookNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, webhook)
}

// DeleteWebhook
// @Summary Delete webhook
// @Tags webhooks
// @Security BearerAuth
// @Param webhookId path string true "Webhook ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/{webhookId} [delete]
func (c *WebhookController) DeleteWebhook(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	webhookID, err := uuid.Parse(ctx.Param("webhookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook ID"})
		return
	}

	if err := c.webhookService.DeleteWebhook(user.TenantID, webhookID); err != nil {
		if errors.Is(err, ErrWebhookNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully"})
}

// GetDeliveryLogs
// @Summary List webhook delivery attempts
// @Description Most recent deliveries first. Supports limit and offset query params.
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param webhookId path string true "Webhook ID"
// @Param limit query int false "Max rows to return (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} GetDeliveryLogsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/{webhookId}/deliveries [get]
func (c *WebhookController) GetDeliveryLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	webhookID, err := uuid.Parse(ctx.Param("webhookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook ID"})
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultDeliveryLogsLimit)))
	if err != nil || limit < 1 {
		limit = defaultDeliveryLogsLimit
	}
	if limit > maxDeliveryLogsLimit {
		limit = maxDeliveryLogsLimit
	}

	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	deliveries, err := c.webhookService.GetDeliveryLogs(user.TenantID, webhookID, limit, offset)
	if err != nil {
		if errors.Is(err, ErrWebhookNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, GetDeliveryLogsResponseDTO{Deliveries: deliveries})
}
