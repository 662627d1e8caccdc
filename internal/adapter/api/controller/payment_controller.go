package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/dto"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/dashboard"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// PaymentController gerencia as requisições relacionadas a pagamentos
type PaymentController struct {
	paymentRepo payment.Repository
	invoiceRepo invoice.Repository
	clientRepo  client.Repository
	logger      logger.Logger
	now         Clock
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(paymentRepo payment.Repository, invoiceRepo invoice.Repository, clientRepo client.Repository, logger logger.Logger, now Clock) *PaymentController {
	return &PaymentController{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		logger:      logger,
		now:         clockOrNow(now),
	}
}

// Create registra um pagamento para uma fatura existente
// @Summary Registrar pagamento
// @Description Registra um pagamento. Sem data assume hoje.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments [post]
func (c *PaymentController) Create(ctx *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	fields, err := req.ToFields(c.now())
	if err != nil {
		respondError(ctx, c.logger, "dados inválidos", err)
		return
	}

	entity, err := payment.NewPayment(fields, c.now())
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar pagamento", err)
		return
	}

	reqCtx := ctx.Request.Context()
	if _, err := c.invoiceRepo.FindByID(reqCtx, entity.InvoiceID); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
				http.StatusUnprocessableEntity,
				"fatura não encontrada",
				fmt.Sprintf("a fatura %q não existe", entity.InvoiceID),
			))
			return
		}
		respondError(ctx, c.logger, "erro ao buscar fatura", err)
		return
	}

	if err := c.paymentRepo.Create(reqCtx, entity); err != nil {
		respondError(ctx, c.logger, "erro ao salvar pagamento", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FromPayment(entity))
}

// List lista os pagamentos com fatura e cliente
// @Summary Listar pagamentos
// @Description Busca por referência, número da fatura ou nome do cliente
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param q query string false "Termo de busca"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments [get]
func (c *PaymentController) List(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	payments, err := c.paymentRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar pagamentos", err)
		return
	}
	invoices, err := c.invoiceRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar faturas", err)
		return
	}
	clients, err := c.clientRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar clientes", err)
		return
	}

	rows := dashboard.FilterPayments(dashboard.PaymentRows(payments, invoices, clients), ctx.Query("q"))
	ctx.JSON(http.StatusOK, dto.NewListResponse(rows, len(rows)))
}

// Get retorna um pagamento pelo ID
// @Summary Buscar pagamento
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pagamento"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /payments/{id} [get]
func (c *PaymentController) Get(ctx *gin.Context) {
	entity, err := c.paymentRepo.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar pagamento", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FromPayment(entity))
}

// Stats retorna os indicadores da página de pagamentos
// @Summary Indicadores de pagamentos
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dashboard.PaymentStats
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments/stats [get]
func (c *PaymentController) Stats(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	payments, err := c.paymentRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar pagamentos", err)
		return
	}
	invoices, err := c.invoiceRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar faturas", err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard.Stats(payments, invoices, c.now()))
}

// Payable lista as faturas que podem receber pagamento
// @Summary Faturas a receber
// @Description Faturas que não são rascunho e têm saldo positivo
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /payments/payable [get]
func (c *PaymentController) Payable(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	invoices, err := c.invoiceRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar faturas", err)
		return
	}
	payments, err := c.paymentRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar pagamentos", err)
		return
	}
	clients, err := c.clientRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar clientes", err)
		return
	}

	rows := dashboard.InvoiceRows(dashboard.PayableInvoices(invoices, payments), clients, payments, c.now())
	ctx.JSON(http.StatusOK, dto.NewListResponse(rows, len(rows)))
}
