package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/domain/dashboard"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// DashboardController expõe o painel principal
type DashboardController struct {
	service  *dashboard.Service
	recorder Recorder
	logger   logger.Logger
}

// NewDashboardController cria uma nova instância de DashboardController
func NewDashboardController(service *dashboard.Service, recorder Recorder, logger logger.Logger) *DashboardController {
	return &DashboardController{service: service, recorder: recorderOrNop(recorder), logger: logger}
}

// Get retorna o snapshot do painel
// @Summary Painel
// @Description Resumo, receita por mês e por status, faturas recentes e indicadores de pagamento
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dashboard.Snapshot
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (c *DashboardController) Get(ctx *gin.Context) {
	snap, err := c.service.Snapshot(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, "erro ao montar painel", err)
		return
	}
	if snap.Stale {
		c.recorder.StaleServed()
	}

	ctx.JSON(http.StatusOK, snap)
}
