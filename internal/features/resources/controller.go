package resources

import (
	"net/http"

	users_middleware "github.com/git-webzoom/assistente-x-hub/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type CustomFieldDefController struct {
	customFieldDefService *CustomFieldDefService
}

func NewCustomFieldDefController(customFieldDefService *CustomFieldDefService) *CustomFieldDefController {
	return &CustomFieldDefController{customFieldDefService: customFieldDefService}
}

func (c *CustomFieldDefController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/custom-field-defs", c.CreateCustomFieldDef)
	router.GET("/custom-field-defs", c.GetCustomFieldDefs)
}

// CreateCustomFieldDef
// @Summary Define a custom field for an entity
// @Tags custom-field-defs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomFieldDefRequestDTO true "Custom field definition"
// @Success 200 {object} CustomFieldDef
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /custom-field-defs [post]
func (c *CustomFieldDefController) CreateCustomFieldDef(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateCustomFieldDefRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	def, err := c.customFieldDefService.CreateDef(user.TenantID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, def)
}

// GetCustomFieldDefs
// @Summary List custom field definitions
// @Tags custom-field-defs
// @Produce json
// @Security BearerAuth
// @Param entityName query string false "Filter by entity name"
// @Success 200 {object} GetCustomFieldDefsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /custom-field-defs [get]
func (c *CustomFieldDefController) GetCustomFieldDefs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	defs, err := c.customFieldDefService.GetDefs(user.TenantID, ctx.Query("entityName"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, GetCustomFieldDefsResponseDTO{Defs: defs})
}
