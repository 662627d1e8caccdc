// Package dashboard deriva os números e séries exibidos no painel a partir
// das coleções de clientes, faturas e pagamentos.
package dashboard

import (
	"strings"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// UnknownLabel é exibido quando uma referência não existe mais
const UnknownLabel = "Unknown"

// MonthRevenue é o faturamento de um mês do calendário
type MonthRevenue struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Label  string          `json:"label"` // Jan, Feb, ...
	Amount decimal.Decimal `json:"amount"`
}

// StatusRevenue é o faturamento agrupado por status
type StatusRevenue struct {
	Status invoice.Status  `json:"status"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary contém os totais do painel
type Summary struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	PaidCount        int             `json:"paid_count"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	SentCount        int             `json:"sent_count"`
	OverdueCount     int             `json:"overdue_count"`
	TotalClients     int             `json:"total_clients"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
	PaymentCount     int             `json:"payment_count"`
	PendingBalance   decimal.Decimal `json:"pending_balance"`
}

// PaymentStats contém os totais da tela de pagamentos
type PaymentStats struct {
	Total     decimal.Decimal `json:"total"`
	ThisMonth decimal.Decimal `json:"this_month"`
	Pending   decimal.Decimal `json:"pending"`
	Count     int             `json:"count"`
}

// RevenueByMonth soma o total das faturas por mês de emissão, nos últimos
// months meses terminando no mês de asOf. Meses sem faturas ficam com zero.
func RevenueByMonth(invoices []*invoice.Invoice, asOf time.Time, months int) []MonthRevenue {
	if months <= 0 {
		return []MonthRevenue{}
	}

	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	out := make([]MonthRevenue, months)
	index := make(map[[2]int]int, months)
	for i := range out {
		m := first.AddDate(0, i, 0)
		out[i] = MonthRevenue{Year: m.Year(), Month: m.Month(), Label: m.Month().String()[:3], Amount: decimal.Zero}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}

	for _, inv := range invoices {
		key := [2]int{inv.IssueDate.Year(), int(inv.IssueDate.Month())}
		if i, ok := index[key]; ok {
			out[i].Amount = out[i].Amount.Add(billing.GrandTotal(inv))
		}
	}
	return out
}

// RevenueByStatus soma o total das faturas por status. Grupos com soma zero são omitidos.
func RevenueByStatus(invoices []*invoice.Invoice) []StatusRevenue {
	sums := make(map[invoice.Status]decimal.Decimal, len(invoice.Statuses))
	for _, inv := range invoices {
		sums[inv.Status] = sums[inv.Status].Add(billing.GrandTotal(inv))
	}

	out := make([]StatusRevenue, 0, len(invoice.Statuses))
	for _, status := range invoice.Statuses {
		amount, ok := sums[status]
		if !ok || amount.IsZero() {
			continue
		}
		out = append(out, StatusRevenue{Status: status, Label: status.Label(), Amount: amount})
	}
	return out
}

// PendingBalance soma o saldo (total - pago) das faturas enviadas ou vencidas
func PendingBalance(invoices []*invoice.Invoice, payments []*payment.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if isPending(inv) {
			total = total.Add(billing.Balance(inv, payments))
		}
	}
	return total
}

// Summarize calcula os totais do painel
func Summarize(clients []*client.Client, invoices []*invoice.Invoice, payments []*payment.Payment) Summary {
	s := Summary{
		TotalRevenue:     decimal.Zero,
		Outstanding:      decimal.Zero,
		TotalClients:     len(clients),
		PaymentsReceived: decimal.Zero,
		PaymentCount:     len(payments),
		PendingBalance:   PendingBalance(invoices, payments),
	}

	for _, inv := range invoices {
		switch inv.Status {
		case invoice.StatusPaid:
			s.TotalRevenue = s.TotalRevenue.Add(billing.GrandTotal(inv))
			s.PaidCount++
		case invoice.StatusSent:
			s.Outstanding = s.Outstanding.Add(billing.GrandTotal(inv))
			s.SentCount++
		case invoice.StatusOverdue:
			s.Outstanding = s.Outstanding.Add(billing.GrandTotal(inv))
			s.OverdueCount++
		}
	}
	for _, p := range payments {
		s.PaymentsReceived = s.PaymentsReceived.Add(p.Amount)
	}
	return s
}

// Stats calcula os totais de pagamentos; ThisMonth considera o mês e o ano de asOf
func Stats(payments []*payment.Payment, invoices []*invoice.Invoice, asOf time.Time) PaymentStats {
	st := PaymentStats{
		Total:     decimal.Zero,
		ThisMonth: decimal.Zero,
		Pending:   PendingBalance(invoices, payments),
		Count:     len(payments),
	}
	for _, p := range payments {
		st.Total = st.Total.Add(p.Amount)
		if p.Date.Year() == asOf.Year() && p.Date.Month() == asOf.Month() {
			st.ThisMonth = st.ThisMonth.Add(p.Amount)
		}
	}
	return st
}

// PayableInvoices retorna as faturas que ainda aceitam pagamento:
// saldo positivo e status diferente de rascunho
func PayableInvoices(invoices []*invoice.Invoice, payments []*payment.Payment) []*invoice.Invoice {
	out := make([]*invoice.Invoice, 0)
	for _, inv := range invoices {
		if inv.Status == invoice.StatusDraft {
			continue
		}
		if billing.Balance(inv, payments).IsPositive() {
			out = append(out, inv)
		}
	}
	return out
}

// FilterClients filtra clientes por nome, e-mail ou empresa
func FilterClients(clients []*client.Client, query string) []*client.Client {
	out := make([]*client.Client, 0, len(clients))
	for _, c := range clients {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

func isPending(inv *invoice.Invoice) bool {
	return inv.Status == invoice.StatusSent || inv.Status == invoice.StatusOverdue
}

func contains(value, query string) bool {
	return strings.Contains(strings.ToLower(value), query)
}
