package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct{}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Healthcheck)
}

// Healthcheck
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (c *HealthcheckController) Healthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
