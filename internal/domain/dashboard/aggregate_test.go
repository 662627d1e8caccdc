package dashboard

import (
	"testing"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func inv(id, number, clientID string, status invoice.Status, issued time.Time, rate string) *invoice.Invoice {
	return &invoice.Invoice{
		ID:        id,
		Number:    number,
		ClientID:  clientID,
		Status:    status,
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
		Items:     []invoice.Item{{ID: "1", Description: "Service", Quantity: 1, Rate: dec(rate)}},
		TaxRate:   decimal.Zero,
		Discount:  decimal.Zero,
	}
}

func pay(id, invoiceID, amount string, date time.Time) *payment.Payment {
	return &payment.Payment{ID: id, InvoiceID: invoiceID, Amount: dec(amount), Date: date, Method: payment.MethodBankTransfer, Reference: "TXN-" + id}
}

func fixture() ([]*client.Client, []*invoice.Invoice, []*payment.Payment) {
	clients := []*client.Client{
		{ID: "c2", Name: "Meridian Health", Email: "ap@meridian.io", Company: "Meridian Group"},
		{ID: "c1", Name: "Acme Corp", Email: "billing@acme.com", Company: "Acme"},
	}
	invoices := []*invoice.Invoice{
		inv("i5", "INV-005", "c1", invoice.StatusDraft, day(2024, time.March, 1), "300"),
		inv("i4", "INV-004", "gone", invoice.StatusOverdue, day(2024, time.February, 10), "1000"),
		inv("i3", "INV-003", "c2", invoice.StatusSent, day(2024, time.February, 5), "2000"),
		inv("i2", "INV-002", "c1", invoice.StatusPaid, day(2024, time.January, 20), "1500"),
		inv("i1", "INV-001", "c2", invoice.StatusPaid, day(2023, time.March, 3), "700"),
	}
	payments := []*payment.Payment{
		pay("p3", "i3", "500", day(2024, time.March, 2)),
		pay("p2", "i2", "1500", day(2024, time.February, 1)),
		pay("p1", "deleted", "50", day(2024, time.March, 9)),
	}
	return clients, invoices, payments
}

func TestRevenueByMonth(t *testing.T) {
	_, invoices, _ := fixture()
	asOf := day(2024, time.March, 15)

	got := RevenueByMonth(invoices, asOf, 6)

	want := []struct {
		label  string
		year   int
		amount string
	}{
		{"Oct", 2023, "0"},
		{"Nov", 2023, "0"},
		{"Dec", 2023, "0"},
		{"Jan", 2024, "1500"},
		{"Feb", 2024, "3000"},
		{"Mar", 2024, "300"}, // a fatura de março de 2023 fica fora da janela
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Year != w.year || !got[i].Amount.Equal(dec(w.amount)) {
			t.Errorf("month %d = %+v, want %s %d %s", i, got[i], w.label, w.year, w.amount)
		}
	}

	if got := RevenueByMonth(invoices, asOf, 0); len(got) != 0 {
		t.Errorf("zero window should be empty, got %d", len(got))
	}
}

func TestRevenueByStatusDropsZeroGroups(t *testing.T) {
	invoices := []*invoice.Invoice{
		inv("a", "INV-001", "c1", invoice.StatusPaid, day(2024, 1, 1), "100"),
		inv("b", "INV-002", "c1", invoice.StatusDraft, day(2024, 1, 1), "0"),
		inv("c", "INV-003", "c1", invoice.StatusSent, day(2024, 1, 1), "40"),
		inv("d", "INV-004", "c1", invoice.StatusPaid, day(2024, 1, 1), "60"),
	}

	got := RevenueByStatus(invoices)

	if len(got) != 2 {
		t.Fatalf("groups = %+v, want paid and sent only", got)
	}
	if got[0].Status != invoice.StatusPaid || got[0].Label != "Paid" || !got[0].Amount.Equal(dec("160")) {
		t.Errorf("first group = %+v", got[0])
	}
	if got[1].Status != invoice.StatusSent || !got[1].Amount.Equal(dec("40")) {
		t.Errorf("second group = %+v", got[1])
	}
}

func TestSummarize(t *testing.T) {
	clients, invoices, payments := fixture()

	s := Summarize(clients, invoices, payments)

	if !s.TotalRevenue.Equal(dec("2200")) || s.PaidCount != 2 {
		t.Errorf("revenue = %s (%d), want 2200 (2)", s.TotalRevenue, s.PaidCount)
	}
	if !s.Outstanding.Equal(dec("3000")) || s.SentCount != 1 || s.OverdueCount != 1 {
		t.Errorf("outstanding = %s sent %d overdue %d", s.Outstanding, s.SentCount, s.OverdueCount)
	}
	if s.TotalClients != 2 || s.PaymentCount != 3 {
		t.Errorf("clients %d payments %d", s.TotalClients, s.PaymentCount)
	}
	if !s.PaymentsReceived.Equal(dec("2050")) {
		t.Errorf("payments received = %s, want 2050", s.PaymentsReceived)
	}
	// 2000 - 500 (sent) + 1000 (overdue)
	if !s.PendingBalance.Equal(dec("2500")) {
		t.Errorf("pending balance = %s, want 2500", s.PendingBalance)
	}
}

func TestStats(t *testing.T) {
	_, invoices, payments := fixture()

	st := Stats(payments, invoices, day(2024, time.March, 20))

	if !st.Total.Equal(dec("2050")) || st.Count != 3 {
		t.Errorf("total = %s count %d", st.Total, st.Count)
	}
	if !st.ThisMonth.Equal(dec("550")) {
		t.Errorf("this month = %s, want 550", st.ThisMonth)
	}
	if !st.Pending.Equal(dec("2500")) {
		t.Errorf("pending = %s, want 2500", st.Pending)
	}
}

func TestPayableInvoices(t *testing.T) {
	_, invoices, payments := fixture()

	got := PayableInvoices(invoices, payments)

	ids := map[string]bool{}
	for _, i := range got {
		ids[i.ID] = true
	}
	if len(got) != 3 || !ids["i4"] || !ids["i3"] || !ids["i1"] {
		t.Errorf("payable = %v, want i4, i3, i1", ids)
	}
}

func TestInvoiceRowsUnknownClient(t *testing.T) {
	clients, invoices, payments := fixture()
	asOf := day(2024, time.March, 15)

	rows := InvoiceRows(invoices, clients, payments, asOf)

	if len(rows) != len(invoices) {
		t.Fatalf("rows = %d, want %d", len(rows), len(invoices))
	}
	if rows[1].ClientName != UnknownLabel || rows[1].Number != "INV-004" {
		t.Errorf("dangling client row = %+v", rows[1])
	}
	if rows[2].ClientName != "Meridian Health" || !rows[2].Balance.Equal(dec("1500")) {
		t.Errorf("row = %+v", rows[2])
	}
	// i3 foi enviada e venceu em 6 de março
	if !rows[1].EffectivelyOverdue || !rows[2].EffectivelyOverdue || rows[3].EffectivelyOverdue {
		t.Errorf("effectively overdue flags wrong: %v %v %v", rows[1].EffectivelyOverdue, rows[2].EffectivelyOverdue, rows[3].EffectivelyOverdue)
	}
	if rows[2].Status != invoice.StatusSent {
		t.Errorf("stored status changed to %s", rows[2].Status)
	}
	recent := RecentInvoices(rows, 2)
	if len(recent) != 2 || recent[0].ID != "i5" {
		t.Errorf("recent = %+v", recent)
	}
	if len(RecentInvoices(rows, 50)) != len(rows) {
		t.Error("recent should cap at available rows")
	}
}

func TestDeletedClientKeepsInvoices(t *testing.T) {
	clients, invoices, payments := fixture()
	var remaining []*client.Client
	for _, c := range clients {
		if c.ID != "c1" {
			remaining = append(remaining, c)
		}
	}

	rows := InvoiceRows(invoices, remaining, payments, day(2024, time.March, 15))

	for _, row := range rows {
		if row.ClientID == "c1" && row.ClientName != UnknownLabel {
			t.Errorf("row %s should be labelled Unknown, got %q", row.Number, row.ClientName)
		}
	}
	if invoices[0].ClientID != "c1" || invoices[3].ClientID != "c1" {
		t.Error("invoices were altered")
	}
}

func TestFilterInvoices(t *testing.T) {
	clients, invoices, payments := fixture()
	rows := InvoiceRows(invoices, clients, payments, day(2024, time.March, 15))

	tests := []struct {
		name   string
		query  string
		status invoice.Status
		want   []string
	}{
		{"all", "", "", []string{"i5", "i4", "i3", "i2", "i1"}},
		{"by number", "inv-003", "", []string{"i3"}},
		{"by client", "acme", "", []string{"i5", "i2"}},
		{"by status", "", invoice.StatusPaid, []string{"i2", "i1"}},
		{"client and status", "meridian", invoice.StatusPaid, []string{"i1"}},
		{"unknown is not searchable", "unknown", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterInvoices(rows, tt.query, tt.status)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %v", len(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("row %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestPaymentRowsAndFilter(t *testing.T) {
	clients, invoices, payments := fixture()

	rows := PaymentRows(payments, invoices, clients)

	if rows[0].InvoiceNumber != "INV-003" || rows[0].ClientName != "Meridian Health" || rows[0].MethodLabel != "Bank Transfer" {
		t.Errorf("row = %+v", rows[0])
	}
	if rows[2].InvoiceNumber != UnknownLabel || rows[2].ClientName != UnknownLabel {
		t.Errorf("orphan payment row = %+v", rows[2])
	}

	if got := FilterPayments(rows, "txn-p2"); len(got) != 1 || got[0].ID != "p2" {
		t.Errorf("by reference = %+v", got)
	}
	if got := FilterPayments(rows, "acme"); len(got) != 1 || got[0].ID != "p2" {
		t.Errorf("by client = %+v", got)
	}
	if got := FilterPayments(rows, "INV-003"); len(got) != 1 || got[0].ID != "p3" {
		t.Errorf("by invoice number = %+v", got)
	}
	if got := FilterPayments(rows, ""); len(got) != 3 {
		t.Errorf("empty query = %d rows", len(got))
	}
}

func TestFilterClients(t *testing.T) {
	clients, _, _ := fixture()

	if got := FilterClients(clients, "MERIDIAN.IO"); len(got) != 1 || got[0].ID != "c2" {
		t.Errorf("by email = %+v", got)
	}
	if got := FilterClients(clients, ""); len(got) != 2 {
		t.Errorf("empty query = %d", len(got))
	}
}
