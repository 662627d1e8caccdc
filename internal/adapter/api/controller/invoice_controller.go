package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/dto"
	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/dashboard"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/hugohenrick/billing-dashboard/internal/render"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// InvoiceController gerencia as requisições relacionadas a faturas
type InvoiceController struct {
	invoiceRepo invoice.Repository
	clientRepo  client.Repository
	paymentRepo payment.Repository
	profileRepo profile.Repository
	recorder    Recorder
	logger      logger.Logger
	now         Clock
}

// NewInvoiceController cria uma nova instância de InvoiceController
func NewInvoiceController(
	invoiceRepo invoice.Repository,
	clientRepo client.Repository,
	paymentRepo payment.Repository,
	profileRepo profile.Repository,
	recorder Recorder,
	logger logger.Logger,
	now Clock,
) *InvoiceController {
	return &InvoiceController{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		recorder:    recorderOrNop(recorder),
		logger:      logger,
		now:         clockOrNow(now),
	}
}

// Create cria uma nova fatura com o próximo número da sequência
// @Summary Criar fatura
// @Description Cria uma fatura. Sem status assume draft, sem data de emissão assume hoje.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invoice body dto.InvoiceRequest true "Dados da fatura"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [post]
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.InvoiceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	fields, err := req.ToFields(c.now())
	if err != nil {
		respondError(ctx, c.logger, "dados inválidos", err)
		return
	}

	entity, err := invoice.NewInvoice(fields, c.now())
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar fatura", err)
		return
	}

	reqCtx := ctx.Request.Context()
	ownerClient, ok := c.requireClient(ctx, entity.ClientID)
	if !ok {
		return
	}

	if err := c.invoiceRepo.Create(reqCtx, entity); err != nil {
		respondError(ctx, c.logger, "erro ao salvar fatura", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FromInvoice(entity, ownerClient.Name, billing.Compute(entity, nil), c.now()))
}

// List lista as faturas
// @Summary Listar faturas
// @Description Lista as faturas com cliente e totais. Busca por número ou nome do cliente, filtro por status.
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param q query string false "Termo de busca"
// @Param status query string false "Status (all, draft, sent, paid, overdue)"
// @Success 200 {object} dto.ListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /invoices [get]
func (c *InvoiceController) List(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

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
	payments, err := c.paymentRepo.List(reqCtx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar pagamentos", err)
		return
	}

	status := invoice.Status(strings.ToLower(ctx.Query("status")))
	if status == "all" {
		status = ""
	}

	rows := dashboard.InvoiceRows(invoices, clients, payments, c.now())
	rows = dashboard.FilterInvoices(rows, ctx.Query("q"), status)
	ctx.JSON(http.StatusOK, dto.NewListResponse(rows, len(rows)))
}

// Get retorna uma fatura com os totais calculados
// @Summary Buscar fatura
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da fatura"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id} [get]
func (c *InvoiceController) Get(ctx *gin.Context) {
	in, ok := c.loadDocumentInput(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.FromInvoice(in.Invoice, clientName(in.Client), in.Totals, c.now()))
}

// Update atualiza parcialmente uma fatura. ID e número não mudam.
// @Summary Atualizar fatura
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da fatura"
// @Param invoice body dto.InvoiceUpdateRequest true "Campos a alterar"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /invoices/{id} [patch]
func (c *InvoiceController) Update(ctx *gin.Context) {
	var req dto.InvoiceUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		respondError(ctx, c.logger, "dados inválidos", err)
		return
	}
	if patch.ClientID != nil && strings.TrimSpace(*patch.ClientID) != "" {
		if _, ok := c.requireClient(ctx, *patch.ClientID); !ok {
			return
		}
	}

	reqCtx := ctx.Request.Context()
	updated, err := c.invoiceRepo.Update(reqCtx, ctx.Param("id"), patch)
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar fatura", err)
		return
	}

	payments, err := c.paymentRepo.FindByInvoice(reqCtx, updated.ID)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar pagamentos", err)
		return
	}
	found, err := c.findClient(reqCtx, updated.ClientID)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FromInvoice(updated, clientName(found), billing.Compute(updated, payments), c.now()))
}

// Delete remove uma fatura. Os pagamentos da fatura são mantidos.
// @Summary Remover fatura
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "ID da fatura"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id} [delete]
func (c *InvoiceController) Delete(ctx *gin.Context) {
	if err := c.invoiceRepo.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao remover fatura", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Totals retorna os totais da fatura
// @Summary Totais da fatura
// @Description Subtotal, desconto, imposto, total, pago e saldo
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da fatura"
// @Success 200 {object} billing.Totals
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id}/totals [get]
func (c *InvoiceController) Totals(ctx *gin.Context) {
	in, ok := c.loadDocumentInput(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, in.Totals)
}

// Payments lista os pagamentos de uma fatura
// @Summary Pagamentos da fatura
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da fatura"
// @Success 200 {object} dto.ListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id}/payments [get]
func (c *InvoiceController) Payments(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	entity, err := c.invoiceRepo.FindByID(reqCtx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar fatura", err)
		return
	}

	payments, err := c.paymentRepo.FindByInvoice(reqCtx, entity.ID)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar pagamentos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.FromPayments(payments), len(payments)))
}

// Document gera o documento imprimível da fatura
// @Summary Documento da fatura
// @Description Gera a fatura em HTML (padrão) ou PDF
// @Tags invoices
// @Produce html
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID da fatura"
// @Param format query string false "html ou pdf"
// @Param download query bool false "Força o download do arquivo"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /invoices/{id}/document [get]
func (c *InvoiceController) Document(ctx *gin.Context) {
	format := ctx.DefaultQuery("format", render.FormatHTML)
	renderer, err := render.ForFormat(format)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "formato inválido", err.Error()))
		return
	}

	in, ok := c.loadDocumentInput(ctx)
	if !ok {
		return
	}

	out, err := renderer.Render(in)
	c.recorder.ObserveRender(renderer.Extension()[1:], err)
	if err != nil {
		respondError(ctx, c.logger, "erro ao gerar documento", err)
		return
	}

	disposition := "inline"
	if ctx.Query("download") == "true" {
		disposition = "attachment"
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s%s"`, disposition, in.Invoice.Number, renderer.Extension()))
	ctx.Data(http.StatusOK, renderer.ContentType(), out)
}

// loadDocumentInput carrega a fatura, o cliente, os pagamentos e o perfil
func (c *InvoiceController) loadDocumentInput(ctx *gin.Context) (render.Input, bool) {
	in, err := render.LoadInput(ctx.Request.Context(), render.Sources{
		Invoices: c.invoiceRepo,
		Clients:  c.clientRepo,
		Payments: c.paymentRepo,
		Profile:  c.profileRepo,
	}, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar fatura", err)
		return render.Input{}, false
	}
	return in, true
}

// findClient busca o cliente da fatura; cliente removido retorna nil sem erro
func (c *InvoiceController) findClient(ctx context.Context, id string) (*client.Client, error) {
	found, err := c.clientRepo.FindByID(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		return nil, nil
	}
	return found, err
}

// requireClient responde 422 quando o cliente informado não existe
func (c *InvoiceController) requireClient(ctx *gin.Context, id string) (*client.Client, bool) {
	found, err := c.findClient(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar cliente", err)
		return nil, false
	}
	if found == nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
			http.StatusUnprocessableEntity,
			"cliente não encontrado",
			fmt.Sprintf("o cliente %q não existe", id),
		))
		return nil, false
	}
	return found, true
}

func clientName(c *client.Client) string {
	if c == nil {
		return dashboard.UnknownLabel
	}
	return c.Name
}
