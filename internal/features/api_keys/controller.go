package api_keys

import (
	"net/http"

	users_middleware "github.com/git-webzoom/assistente-x-hub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiKeyController struct {
	apiKeyService *ApiKeyService
}

func NewApiKeyController(apiKeyService *ApiKeyService) *ApiKeyController {
	return &ApiKeyController{apiKeyService: apiKeyService}
}

func (c *ApiKeyController) RegisterRoutes(router *gin.RouterGroup) {
	apiKeyRoutes := router.Group("/api-keys")

	apiKeyRoutes.POST("", c.CreateApiKey)
	apiKeyRoutes.GET("", c.GetApiKeys)
	apiKeyRoutes.PUT("/:apiKeyId", c.UpdateApiKey)
	apiKeyRoutes.DELETE("/:apiKeyId", c.DeleteApiKey)
}

// CreateApiKey
// @Summary Create a new API key
// @Description Create a new API key for the caller's tenant. The plaintext key is returned only in this response.
// @Tags api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateApiKeyRequestDTO true "API key creation data"
// @Success 200 {object} ApiKey
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api-keys [post]
func (c *ApiKeyController) CreateApiKey(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateApiKeyRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.apiKeyService.CreateApiKey(&request, user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetApiKeys
// @Summary List tenant API keys
// @Tags api-keys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GetApiKeysResponseDTO
// @Failure 401 {object} map[string]string
// @Router /api-keys [get]
func (c *ApiKeyController) GetApiKeys(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.apiKeyService.GetTenantApiKeys(user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateApiKey
// @Summary Update API key
// @Description Update API key name, active state, rate limit or expiry
// @Tags api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param apiKeyId path string true "API Key ID"
// @Param request body UpdateApiKeyRequestDTO true "API key update data"
// @Success 200 {object} ApiKey
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api-keys/{apiKeyId} [put]
func (c *ApiKeyController) UpdateApiKey(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	apiKeyID, err := uuid.Parse(ctx.Param("apiKeyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	var request UpdateApiKeyRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	apiKey, err := c.apiKeyService.UpdateApiKey(apiKeyID, &request, user)
	if err != nil {
		if err.Error() == "API key not found" {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, apiKey)
}

// DeleteApiKey
// @Summary Delete API key
// @Tags api-keys
// @Security BearerAuth
// @Param apiKeyId path string true "API Key ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api-keys/{apiKeyId} [delete]
func (c *ApiKeyController) DeleteApiKey(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	apiKeyID, err := uuid.Parse(ctx.Param("apiKeyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	if err := c.apiKeyService.DeleteApiKey(apiKeyID, user); err != nil {
		if err.Error() == "API key not found" {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "API key deleted successfully"})
}
