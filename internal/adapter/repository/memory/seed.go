package memory

import (
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// NewSeededStore cria um Store com os dados de demonstração.
// O contador de faturas começa em 7, depois de INV-006.
func NewSeededStore(opts ...Option) *Store {
	s := NewStore(opts...)
	s.clients = seedClients()
	s.invoices = seedInvoices()
	s.payments = seedPayments()
	s.counter = 7
	return s
}

func date(value string) time.Time {
	t, err := time.Parse(invoice.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func seedClients() []*client.Client {
	return []*client.Client{
		{ID: "c1", Name: "Sarah Mitchell", Email: "sarah@acmecorp.io", Phone: "+1 (555) 234-5678", Company: "Acme Corp", Address: "123 Business Ave, New York, NY 10001", CreatedAt: date("2025-08-15")},
		{ID: "c2", Name: "James Rivera", Email: "james@brightlabs.co", Phone: "+1 (555) 345-6789", Company: "Bright Labs", Address: "456 Innovation Dr, San Francisco, CA 94102", CreatedAt: date("2025-09-02")},
		{ID: "c3", Name: "Emily Chen", Email: "emily@novanet.com", Phone: "+1 (555) 456-7890", Company: "NovaNet", Address: "789 Tech Blvd, Austin, TX 73301", CreatedAt: date("2025-10-11")},
		{ID: "c4", Name: "Marcus Thompson", Email: "marcus@greenleaf.co", Phone: "+1 (555) 567-8901", Company: "Greenleaf Solutions", Address: "321 Eco Lane, Portland, OR 97201", CreatedAt: date("2025-11-03")},
		{ID: "c5", Name: "Olivia Park", Email: "olivia@zenithdesign.com", Phone: "+1 (555) 678-9012", Company: "Zenith Design", Address: "654 Creative St, Chicago, IL 60601", CreatedAt: date("2025-12-20")},
	}
}

func seedItem(id, description string, qty int, rate int64) invoice.Item {
	return invoice.Item{ID: id, Description: description, Quantity: qty, Rate: decimal.NewFromInt(rate)}
}

type seedEntry struct {
	id, number, clientID string
	status               invoice.Status
	issued, due, notes   string
	taxRate              string
	discount             int64
	items                []invoice.Item
}

func seedInvoices() []*invoice.Invoice {
	entries := []seedEntry{
		{"inv1", "INV-001", "c1", invoice.StatusPaid, "2026-01-05", "2026-02-05", "Thank you for your business.", "8.5", 0,
			[]invoice.Item{seedItem("i1", "Website Redesign", 1, 4500), seedItem("i2", "SEO Optimization", 1, 1200)}},
		{"inv2", "INV-002", "c2", invoice.StatusSent, "2026-01-18", "2026-02-18", "Net 30 terms apply.", "8.5", 500,
			[]invoice.Item{seedItem("i3", "Mobile App Development - Phase 1", 1, 8500), seedItem("i4", "UX Consultation", 3, 350)}},
		{"inv3", "INV-003", "c3", invoice.StatusOverdue, "2025-12-01", "2026-01-01", "Please remit payment at your earliest convenience.", "8.5", 0,
			[]invoice.Item{seedItem("i5", "Cloud Infrastructure Setup", 1, 3200), seedItem("i6", "Monthly Monitoring (3 months)", 3, 600)}},
		{"inv4", "INV-004", "c4", invoice.StatusDraft, "2026-02-10", "2026-03-10", "", "0", 0,
			[]invoice.Item{seedItem("i7", "Brand Strategy Workshop", 1, 2800)}},
		{"inv5", "INV-005", "c5", invoice.StatusPaid, "2025-11-20", "2025-12-20", "Thank you for prompt payment!", "8.5", 200,
			[]invoice.Item{seedItem("i8", "UI/UX Design System", 1, 6200), seedItem("i9", "Component Library", 1, 3800)}},
		{"inv6", "INV-006", "c1", invoice.StatusSent, "2026-02-01", "2026-03-01", "", "8.5", 0,
			[]invoice.Item{seedItem("i10", "Email Campaign Setup", 1, 1500), seedItem("i11", "A/B Testing (4 variants)", 4, 300)}},
	}

	out := make([]*invoice.Invoice, len(entries))
	for i, e := range entries {
		out[i] = &invoice.Invoice{
			ID:        e.id,
			Number:    e.number,
			ClientID:  e.clientID,
			Items:     e.items,
			Status:    e.status,
			IssueDate: date(e.issued),
			DueDate:   date(e.due),
			Notes:     e.notes,
			TaxRate:   decimal.RequireFromString(e.taxRate),
			Discount:  decimal.NewFromInt(e.discount),
			Terms:     invoice.DefaultTerms,
			Signatory: "Alex Morgan",
			CreatedAt: date(e.issued),
		}
	}
	return out
}

func seedPayments() []*payment.Payment {
	return []*payment.Payment{
		{ID: "p1", InvoiceID: "inv1", Amount: decimal.NewFromInt(5700), Date: date("2026-01-28"), Method: payment.MethodBankTransfer, Reference: "TXN-20260128-001", CreatedAt: date("2026-01-28")},
		{ID: "p2", InvoiceID: "inv5", Amount: decimal.NewFromInt(10000), Date: date("2025-12-18"), Method: payment.MethodCreditCard, Reference: "TXN-20251218-002", CreatedAt: date("2025-12-18")},
		{ID: "p3", InvoiceID: "inv3", Amount: decimal.NewFromInt(2000), Date: date("2026-01-15"), Method: payment.MethodPayPal, Reference: "TXN-20260115-003", CreatedAt: date("2026-01-15")},
	}
}
