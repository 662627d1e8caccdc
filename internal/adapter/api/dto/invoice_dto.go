package dto

import (
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest representa um item da fatura. ID vazio gera um novo.
type InvoiceItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate" swaggertype:"string" example:"1200.00"`
}

// InvoiceRequest representa a requisição de criação de fatura
type InvoiceRequest struct {
	ClientID  string               `json:"client_id" binding:"required"`
	Items     []InvoiceItemRequest `json:"items"`
	Status    invoice.Status       `json:"status" example:"draft"`
	IssueDate string               `json:"issue_date" example:"2026-01-05"`
	DueDate   string               `json:"due_date" example:"2026-02-05"`
	Notes     string               `json:"notes"`
	TaxRate   decimal.Decimal      `json:"tax_rate" swaggertype:"string" example:"8.5"`
	Discount  decimal.Decimal      `json:"discount" swaggertype:"string" example:"0"`
	Terms     *string              `json:"terms"`
	Signatory string               `json:"signatory"`
}

// ToFields converte a requisição nos campos do domínio. Sem data de emissão,
// usa o dia atual; sem termos, usa os termos padrão.
func (r InvoiceRequest) ToFields(now time.Time) (invoice.Fields, error) {
	issue, err := parseDate("issue_date", r.IssueDate)
	if err != nil {
		return invoice.Fields{}, err
	}
	if issue.IsZero() {
		issue = today(now)
	}
	due, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return invoice.Fields{}, err
	}

	terms := invoice.DefaultTerms
	if r.Terms != nil {
		terms = *r.Terms
	}

	return invoice.Fields{
		ClientID:  r.ClientID,
		Items:     toItems(r.Items),
		Status:    r.Status,
		IssueDate: issue,
		DueDate:   due,
		Notes:     r.Notes,
		TaxRate:   r.TaxRate,
		Discount:  r.Discount,
		Terms:     terms,
		Signatory: r.Signatory,
	}, nil
}

// InvoiceUpdateRequest representa uma atualização parcial de fatura
type InvoiceUpdateRequest struct {
	ClientID  *string               `json:"client_id"`
	Items     *[]InvoiceItemRequest `json:"items"`
	Status    *invoice.Status       `json:"status"`
	IssueDate *string               `json:"issue_date"`
	DueDate   *string               `json:"due_date"`
	Notes     *string               `json:"notes"`
	TaxRate   *decimal.Decimal      `json:"tax_rate" swaggertype:"string"`
	Discount  *decimal.Decimal      `json:"discount" swaggertype:"string"`
	Terms     *string               `json:"terms"`
	Signatory *string               `json:"signatory"`
}

// ToPatch converte a requisição em um patch do domínio
func (r InvoiceUpdateRequest) ToPatch() (invoice.Patch, error) {
	issue, err := parseDatePtr("issue_date", r.IssueDate)
	if err != nil {
		return invoice.Patch{}, err
	}
	due, err := parseDatePtr("due_date", r.DueDate)
	if err != nil {
		return invoice.Patch{}, err
	}

	p := invoice.Patch{
		ClientID:  r.ClientID,
		Status:    r.Status,
		IssueDate: issue,
		DueDate:   due,
		Notes:     r.Notes,
		TaxRate:   r.TaxRate,
		Discount:  r.Discount,
		Terms:     r.Terms,
		Signatory: r.Signatory,
	}
	if r.Items != nil {
		items := toItems(*r.Items)
		p.Items = &items
	}
	return p, nil
}

func toItems(items []InvoiceItemRequest) []invoice.Item {
	out := make([]invoice.Item, len(items))
	for i, item := range items {
		out[i] = invoice.Item{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		}
	}
	return out
}

// InvoiceItemResponse representa um item da fatura com o valor da linha
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate" swaggertype:"string"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
}

// InvoiceResponse representa a resposta de fatura com os totais calculados
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	Number             string                `json:"number"`
	ClientID           string                `json:"client_id"`
	ClientName         string                `json:"client_name"`
	Items              []InvoiceItemResponse `json:"items"`
	Status             invoice.Status        `json:"status"`
	StatusLabel        string                `json:"status_label"`
	EffectivelyOverdue bool                  `json:"effectively_overdue"`
	IssueDate          string                `json:"issue_date"`
	DueDate            string                `json:"due_date"`
	Notes              string                `json:"notes"`
	TaxRate            decimal.Decimal       `json:"tax_rate" swaggertype:"string"`
	Discount           decimal.Decimal       `json:"discount" swaggertype:"string"`
	Terms              string                `json:"terms"`
	Signatory          string                `json:"signatory"`
	Totals             billing.Totals        `json:"totals"`
	CreatedAt          time.Time             `json:"created_at"`
}

// FromInvoice converte uma fatura em resposta. clientName vazio indica cliente
// inexistente.
func FromInvoice(inv *invoice.Invoice, clientName string, totals billing.Totals, asOf time.Time) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      billing.LineAmount(item),
		}
	}

	return InvoiceResponse{
		ID:                 inv.ID,
		Number:             inv.Number,
		ClientID:           inv.ClientID,
		ClientName:         clientName,
		Items:              items,
		Status:             inv.Status,
		StatusLabel:        inv.Status.Label(),
		EffectivelyOverdue: billing.IsEffectivelyOverdue(inv, asOf),
		IssueDate:          formatDate(inv.IssueDate),
		DueDate:            formatDate(inv.DueDate),
		Notes:              inv.Notes,
		TaxRate:            inv.TaxRate,
		Discount:           inv.Discount,
		Terms:              inv.Terms,
		Signatory:          inv.Signatory,
		Totals:             totals,
		CreatedAt:          inv.CreatedAt,
	}
}
