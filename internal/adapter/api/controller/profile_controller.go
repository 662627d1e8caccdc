package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/dto"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// ProfileController gerencia o perfil da empresa emissora
type ProfileController struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

// NewProfileController cria uma nova instância de ProfileController
func NewProfileController(profileRepo profile.Repository, logger logger.Logger) *ProfileController {
	return &ProfileController{profileRepo: profileRepo, logger: logger}
}

// Get retorna o perfil da empresa
// @Summary Perfil da empresa
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.BusinessProfile
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	business, err := c.profileRepo.Get(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar perfil", err)
		return
	}

	ctx.JSON(http.StatusOK, business)
}

// Update atualiza parcialmente o perfil da empresa
// @Summary Atualizar perfil da empresa
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.ProfileUpdateRequest true "Campos a alterar"
// @Success 200 {object} profile.BusinessProfile
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile [patch]
func (c *ProfileController) Update(ctx *gin.Context) {
	var req dto.ProfileUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	business, err := c.profileRepo.Update(ctx.Request.Context(), req.ToPatch())
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar perfil", err)
		return
	}

	ctx.JSON(http.StatusOK, business)
}
