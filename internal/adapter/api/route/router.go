package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
)

// Controllers agrupa os controllers da API
type Controllers struct {
	Client    *controller.ClientController
	Invoice   *controller.InvoiceController
	Payment   *controller.PaymentController
	Profile   *controller.ProfileController
	Dashboard *controller.DashboardController
	Feed      *controller.FeedController
	Health    *controller.HealthController
}

// SetupRoutes registra todas as rotas. auth protege o grupo /api/v1.
func SetupRoutes(router *gin.Engine, c Controllers, auth gin.HandlerFunc) {
	router.GET("/health", c.Health.Health)

	v1 := router.Group("/api/v1")
	v1.Use(auth)

	RegisterClientRoutes(v1, c.Client)
	RegisterInvoiceRoutes(v1, c.Invoice)
	RegisterPaymentRoutes(v1, c.Payment)
	RegisterProfileRoutes(v1, c.Profile)
	RegisterDashboardRoutes(v1, c.Dashboard, c.Feed)
}
