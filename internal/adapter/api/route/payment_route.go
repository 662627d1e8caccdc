package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
)

// RegisterPaymentRoutes registra as rotas do módulo de pagamentos.
// Pagamentos não são alterados nem removidos.
func RegisterPaymentRoutes(r *gin.RouterGroup, paymentController *controller.PaymentController) {
	payments := r.Group("/payments")
	{
		payments.POST("", paymentController.Create)
		payments.GET("", paymentController.List)
		payments.GET("/payable", paymentController.Payable)
		payments.GET("/stats", paymentController.Stats)
		payments.GET("/:id", paymentController.Get)
	}
}
