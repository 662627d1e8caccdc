package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
)

// ErrInvalidDate ocorre quando uma data não está no formato 2006-01-02
var ErrInvalidDate = errors.New("data inválida, use o formato AAAA-MM-DD")

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse representa uma resposta genérica de sucesso
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse representa uma lista de itens com o total
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewListResponse cria uma resposta de lista
func NewListResponse(items interface{}, total int) ListResponse {
	return ListResponse{Items: items, Total: total}
}

// parseDate interpreta uma data opcional. Vazio retorna o valor zero.
func parseDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := invoice.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, ErrInvalidDate)
	}
	return t, nil
}

// parseDatePtr interpreta uma data de patch. nil mantém o campo inalterado.
func parseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// today retorna a data atual sem horário, em UTC
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// formatDate formata uma data no padrão da API
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(invoice.DateLayout)
}
