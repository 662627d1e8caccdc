package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
)

// RegisterProfileRoutes registra as rotas do perfil da empresa
func RegisterProfileRoutes(r *gin.RouterGroup, profileController *controller.ProfileController) {
	r.GET("/profile", profileController.Get)
	r.PATCH("/profile", profileController.Update)
}
