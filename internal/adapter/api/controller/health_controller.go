package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger verifica a disponibilidade do armazenamento
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController responde às verificações de saúde
type HealthController struct {
	driver string
	pinger Pinger
}

// NewHealthController cria o controller. pinger pode ser nil (armazenamento em memória).
func NewHealthController(driver string, pinger Pinger) *HealthController {
	return &HealthController{driver: driver, pinger: pinger}
}

// Health informa o estado da API e do armazenamento
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.pinger.Ping(pingCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "store": c.driver, "error": err.Error()})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "store": c.driver})
}
