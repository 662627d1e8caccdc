package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/dto"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

// Recorder recebe as métricas de domínio registradas pelos controllers
type Recorder interface {
	ObserveRender(format string, err error)
	StaleServed()
	FeedSubscribed(delta int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRender(string, error) {}
func (nopRecorder) StaleServed()                {}
func (nopRecorder) FeedSubscribed(int)          {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// Clock retorna o instante atual
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// respondError converte erros do domínio em respostas HTTP. Erros inesperados
// são registrados no log e retornam 500.
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, owner.ErrNoOwner):
		status = http.StatusUnauthorized
	case errors.Is(err, dto.ErrInvalidDate),
		client.IsValidationError(err),
		invoice.IsValidationError(err),
		payment.IsValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, client.ErrNotFound),
		errors.Is(err, invoice.ErrNotFound),
		errors.Is(err, payment.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.Request.URL.Path)
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

// bindJSON faz o bind do corpo e responde 400 em caso de erro
func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return false
	}
	return true
}
