package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
)

// RegisterClientRoutes registra as rotas do módulo de clientes
func RegisterClientRoutes(r *gin.RouterGroup, clientController *controller.ClientController) {
	clients := r.Group("/clients")
	{
		clients.POST("", clientController.Create)
		clients.GET("", clientController.List)
		clients.GET("/:id", clientController.Get)
		clients.PATCH("/:id", clientController.Update)
		clients.DELETE("/:id", clientController.Delete)
	}
}
