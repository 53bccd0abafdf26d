package gateway

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GatewayController struct {
	resourceService *ResourceService
	middleware      *GatewayMiddleware
}

func NewGatewayController(resourceService *ResourceService, middleware *GatewayMiddleware) *GatewayController {
	return &GatewayController{
		resourceService: resourceService,
		middleware:      middleware,
	}
}

// RegisterRoutes mounts the external API under /v1. Every registered
// resource shares the same handler; dispatch happens on the path segment
// and method.
func (c *GatewayController) RegisterRoutes(router gin.IRouter) {
	gatewayRoutes := router.Group("/v1")
	gatewayRoutes.Use(c.middleware.Handle)

	gatewayRoutes.Any("/:resource", c.Handle)
	gatewayRoutes.Any("/:resource/:id", c.Handle)
}

func (c *GatewayController) Handle(ctx *gin.Context) {
	authContext, ok := GetAuthContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Message})
		return
	}

	def, ok := c.resourceService.Lookup(ctx.Param("resource"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrResourceNotFound.Message})
		return
	}

	idParam := ctx.Param("id")

	switch {
	case ctx.Request.Method == http.MethodGet && idParam != "":
		c.getOne(ctx, authContext, def, idParam)
	case ctx.Request.Method == http.MethodGet:
		c.list(ctx, authContext, def)
	case ctx.Request.Method == http.MethodPost && idParam == "":
		c.create(ctx, authContext, def)
	case (ctx.Request.Method == http.MethodPut || ctx.Request.Method == http.MethodPatch) && idParam != "":
		c.update(ctx, authContext, def, idParam)
	case ctx.Request.Method == http.MethodDelete && idParam != "":
		c.delete(ctx, authContext, def, idParam)
	default:
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": ErrMethodNotAllowed.Message})
	}
}

func (c *GatewayController) list(ctx *gin.Context, authContext *AuthContext, def *ResourceDef) {
	query, apiErr := ParseResourceQuery(ctx.Request.URL.Query())
	if apiErr != nil {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	result, apiErr := c.resourceService.List(authContext.TenantID, def, query)
	if apiErr != nil {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, NewListResponseEnvelope(result))
}

func (c *GatewayController) getOne(ctx *gin.Context, authContext *AuthContext, def *ResourceDef, idParam string) {
	id, err := uuid.Parse(idParam)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Message})
		return
	}

	includes := parseIncludeList(ctx.Query("include"))

	entity, apiErr := c.resourceService.Get(authContext.TenantID, def, id, includes)
	if apiErr != nil {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, NewResponseEnvelope(entity))
}

func (c *GatewayController) create(ctx *gin.Context, authContext *AuthContext, def *ResourceDef) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	entity, apiErr := c.resourceService.Create(authContext.TenantID, def, body)
	if apiErr != nil {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, NewResponseEnvelope(entity))
}

func (c *GatewayController) update(ctx *gin.Context, authContext *AuthContext, def *ResourceDef, idParam string) {
	id, err := uuid.Parse(idParam)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	entity, apiErr := c.resourceService.Update(authContext.TenantID, def, id, body)
	if apiErr != nil {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, NewResponseEnvelope(entity))
}

func (c *GatewayController) delete(ctx *gin.Context, authContext *AuthContext, def *ResourceDef, idParam string) {
	id, err := uuid.Parse(idParam)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	if apiErr := c.resourceService.Delete(authContext.TenantID, def, id); apiErr != nil {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIncludeList(raw string) []string {
	if raw == "" {
		return nil
	}

	var includes []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			includes = append(includes, name)
		}
	}

	return includes
}
