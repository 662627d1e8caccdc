package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
)

// RegisterInvoiceRoutes registra as rotas do módulo de faturas
func RegisterInvoiceRoutes(r *gin.RouterGroup, invoiceController *controller.InvoiceController) {
	invoices := r.Group("/invoices")
	{
		invoices.POST("", invoiceController.Create)
		invoices.GET("", invoiceController.List)
		invoices.GET("/:id", invoiceController.Get)
		invoices.PATCH("/:id", invoiceController.Update)
		invoices.DELETE("/:id", invoiceController.Delete)
		invoices.GET("/:id/totals", invoiceController.Totals)
		invoices.GET("/:id/payments", invoiceController.Payments)
		invoices.GET("/:id/document", invoiceController.Document)
	}
}
