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

// InvoiceRow é uma linha da tabela de faturas
type InvoiceRow struct {
	ID                 string          `json:"id"`
	Number             string          `json:"number"`
	ClientID           string          `json:"client_id"`
	ClientName         string          `json:"client_name"`
	ClientCompany      string          `json:"client_company"`
	Status             invoice.Status  `json:"status"`
	StatusLabel        string          `json:"status_label"`
	IssueDate          time.Time       `json:"issue_date"`
	DueDate            time.Time       `json:"due_date"`
	Total              decimal.Decimal `json:"total"`
	Paid               decimal.Decimal `json:"paid"`
	Balance            decimal.Decimal `json:"balance"`
	EffectivelyOverdue bool            `json:"effectively_overdue"`

	clientFound bool
}

// PaymentRow é uma linha da tabela de pagamentos
type PaymentRow struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        payment.Method  `json:"method"`
	MethodLabel   string          `json:"method_label"`
	Reference     string          `json:"reference"`

	invoiceFound bool
	clientFound  bool
}

// InvoiceRows monta as linhas da tabela de faturas, mantendo a ordem recebida.
// Clientes removidos aparecem como "Unknown".
func InvoiceRows(invoices []*invoice.Invoice, clients []*client.Client, payments []*payment.Payment, asOf time.Time) []InvoiceRow {
	byID := indexClients(clients)
	rows := make([]InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		totals := billing.Compute(inv, payments)
		row := InvoiceRow{
			ID:                 inv.ID,
			Number:             inv.Number,
			ClientID:           inv.ClientID,
			ClientName:         UnknownLabel,
			Status:             inv.Status,
			StatusLabel:        inv.Status.Label(),
			IssueDate:          inv.IssueDate,
			DueDate:            inv.DueDate,
			Total:              totals.GrandTotal,
			Paid:               totals.Paid,
			Balance:            totals.Balance,
			EffectivelyOverdue: billing.IsEffectivelyOverdue(inv, asOf),
		}
		if c, ok := byID[inv.ClientID]; ok {
			row.ClientName = c.Name
			row.ClientCompany = c.Company
			row.clientFound = true
		}
		rows = append(rows, row)
	}
	return rows
}

// RecentInvoices retorna as n primeiras linhas (as listas já vêm das mais recentes)
func RecentInvoices(rows []InvoiceRow, n int) []InvoiceRow {
	if n < 0 {
		n = 0
	}
	if len(rows) < n {
		n = len(rows)
	}
	return rows[:n]
}

// PaymentRows monta as linhas da tabela de pagamentos. Faturas ou clientes
// que não existem mais aparecem como "Unknown".
func PaymentRows(payments []*payment.Payment, invoices []*invoice.Invoice, clients []*client.Client) []PaymentRow {
	byClient := indexClients(clients)
	byInvoice := make(map[string]*invoice.Invoice, len(invoices))
	for _, inv := range invoices {
		byInvoice[inv.ID] = inv
	}

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		row := PaymentRow{
			ID:            p.ID,
			InvoiceID:     p.InvoiceID,
			InvoiceNumber: UnknownLabel,
			ClientName:    UnknownLabel,
			Amount:        p.Amount,
			Date:          p.Date,
			Method:        p.Method,
			MethodLabel:   p.Method.Label(),
			Reference:     p.Reference,
		}
		if inv, ok := byInvoice[p.InvoiceID]; ok {
			row.InvoiceNumber = inv.Number
			row.invoiceFound = true
			if c, ok := byClient[inv.ClientID]; ok {
				row.ClientName = c.Name
				row.clientFound = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FilterInvoices filtra por número ou nome do cliente e, se informado, pelo status
func FilterInvoices(rows []InvoiceRow, query string, status invoice.Status) []InvoiceRow {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]InvoiceRow, 0, len(rows))
	for _, row := range rows {
		if status != "" && row.Status != status {
			continue
		}
		if q == "" || contains(row.Number, q) || (row.clientFound && contains(row.ClientName, q)) {
			out = append(out, row)
		}
	}
	return out
}

// FilterPayments filtra por referência, número da fatura ou nome do cliente
func FilterPayments(rows []PaymentRow, query string) []PaymentRow {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]PaymentRow, 0, len(rows))
	for _, row := range rows {
		if q == "" ||
			contains(row.Reference, q) ||
			(row.invoiceFound && contains(row.InvoiceNumber, q)) ||
			(row.clientFound && contains(row.ClientName, q)) {
			out = append(out, row)
		}
	}
	return out
}

func indexClients(clients []*client.Client) map[string]*client.Client {
	byID := make(map[string]*client.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return byID
}
