package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
)

// RegisterDashboardRoutes registra as rotas do painel e do feed de alterações
func RegisterDashboardRoutes(r *gin.RouterGroup, dashboardController *controller.DashboardController, feedController *controller.FeedController) {
	r.GET("/dashboard", dashboardController.Get)
	r.GET("/feed", feedController.Stream)
}
