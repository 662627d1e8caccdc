// Package billing contém o cálculo financeiro das faturas.
// Todas as funções são puras: não alteram a fatura nem os pagamentos recebidos.
package billing

import (
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// Totals agrupa todos os valores derivados de uma fatura
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"after_discount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Tax           decimal.Decimal `json:"tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Paid          decimal.Decimal `json:"paid"`
	Balance       decimal.Decimal `json:"balance"`
}

// LineAmount retorna quantidade × valor unitário
func LineAmount(item invoice.Item) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Quantity)).Mul(item.Rate)
}

// Subtotal soma os valores de todos os itens
func Subtotal(inv *invoice.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(LineAmount(item))
	}
	return total
}

// AfterDiscount retorna o subtotal menos o desconto. Pode ser negativo.
func AfterDiscount(inv *invoice.Invoice) decimal.Decimal {
	return Subtotal(inv).Sub(inv.Discount)
}

// Tax aplica a alíquota percentual sobre o valor com desconto
func Tax(inv *invoice.Invoice) decimal.Decimal {
	return AfterDiscount(inv).Mul(inv.TaxRate.Shift(-2))
}

// GrandTotal retorna o valor devido: valor com desconto mais imposto
func GrandTotal(inv *invoice.Invoice) decimal.Decimal {
	return AfterDiscount(inv).Add(Tax(inv))
}

// Paid soma os pagamentos que referenciam a fatura informada
func Paid(invoiceID string, payments []*payment.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.InvoiceID == invoiceID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Balance retorna o total menos os pagamentos. Negativo significa pago a mais.
func Balance(inv *invoice.Invoice, payments []*payment.Payment) decimal.Decimal {
	return GrandTotal(inv).Sub(Paid(inv.ID, payments))
}

// Compute calcula todos os valores da fatura de uma vez
func Compute(inv *invoice.Invoice, payments []*payment.Payment) Totals {
	subtotal := Subtotal(inv)
	after := subtotal.Sub(inv.Discount)
	tax := after.Mul(inv.TaxRate.Shift(-2))
	grand := after.Add(tax)
	paid := Paid(inv.ID, payments)

	return Totals{
		Subtotal:      subtotal,
		Discount:      inv.Discount,
		AfterDiscount: after,
		TaxRate:       inv.TaxRate,
		Tax:           tax,
		GrandTotal:    grand,
		Paid:          paid,
		Balance:       grand.Sub(paid),
	}
}

// IsEffectivelyOverdue indica se uma fatura enviada já passou do vencimento.
// O status gravado não é alterado.
func IsEffectivelyOverdue(inv *invoice.Invoice, asOf time.Time) bool {
	if inv.Status == invoice.StatusOverdue {
		return true
	}
	if inv.Status != invoice.StatusSent {
		return false
	}
	return dayOf(inv.DueDate).Before(dayOf(asOf))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
