package dto

import (
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentRequest representa a requisição de registro de pagamento
type PaymentRequest struct {
	InvoiceID string          `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"5700.00"`
	Date      string          `json:"date" example:"2026-01-28"`
	Method    payment.Method  `json:"method" example:"bank_transfer"`
	Reference string          `json:"reference"`
}

// ToFields converte a requisição nos campos do domínio. Sem data, usa o dia atual.
func (r PaymentRequest) ToFields(now time.Time) (payment.Fields, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return payment.Fields{}, err
	}
	if date.IsZero() {
		date = today(now)
	}
	return payment.Fields{
		InvoiceID: r.InvoiceID,
		Amount:    r.Amount,
		Date:      date,
		Method:    r.Method,
		Reference: r.Reference,
	}, nil
}

// PaymentResponse representa a resposta de pagamento
type PaymentResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Date        string          `json:"date"`
	Method      payment.Method  `json:"method"`
	MethodLabel string          `json:"method_label"`
	Reference   string          `json:"reference"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FromPayment converte um pagamento em resposta
func FromPayment(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		Date:        formatDate(p.Date),
		Method:      p.Method,
		MethodLabel: p.Method.Label(),
		Reference:   p.Reference,
		CreatedAt:   p.CreatedAt,
	}
}

// FromPayments converte uma lista de pagamentos
func FromPayments(payments []*payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = FromPayment(p)
	}
	return out
}
