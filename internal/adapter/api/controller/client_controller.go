package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/dto"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/dashboard"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// ClientController gerencia as requisições relacionadas a clientes
type ClientController struct {
	clientRepo client.Repository
	logger     logger.Logger
	now        Clock
}

// NewClientController cria uma nova instância de ClientController
func NewClientController(clientRepo client.Repository, logger logger.Logger, now Clock) *ClientController {
	return &ClientController{
		clientRepo: clientRepo,
		logger:     logger,
		now:        clockOrNow(now),
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entity, err := client.NewClient(req.ToFields(), c.now())
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar cliente", err)
		return
	}

	if err := c.clientRepo.Create(ctx.Request.Context(), entity); err != nil {
		respondError(ctx, c.logger, "erro ao salvar cliente", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FromClient(entity))
}

// List lista os clientes
// @Summary Listar clientes
// @Description Lista os clientes, do mais recente para o mais antigo, com busca por nome, email ou empresa
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param q query string false "Termo de busca"
// @Success 200 {object} dto.ListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	clients, err := c.clientRepo.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar clientes", err)
		return
	}

	filtered := dashboard.FilterClients(clients, ctx.Query("q"))
	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.FromClients(filtered), len(filtered)))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	entity, err := c.clientRepo.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FromClient(entity))
}

// Update atualiza parcialmente um cliente
// @Summary Atualizar cliente
// @Description Atualiza apenas os campos informados
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param client body dto.ClientUpdateRequest true "Campos a alterar"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [patch]
func (c *ClientController) Update(ctx *gin.Context) {
	var req dto.ClientUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := c.clientRepo.Update(ctx.Request.Context(), ctx.Param("id"), req.ToPatch())
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FromClient(updated))
}

// Delete remove um cliente. As faturas do cliente são mantidas.
// @Summary Remover cliente
// @Tags clients
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	if err := c.clientRepo.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao remover cliente", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
