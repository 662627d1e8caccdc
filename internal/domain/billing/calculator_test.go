package billing_test

import (
	"testing"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(id string, qty int, rate string) invoice.Item {
	return invoice.Item{ID: id, Description: "Item " + id, Quantity: qty, Rate: dec(rate)}
}

func pay(invoiceID, amount string) *payment.Payment {
	return &payment.Payment{ID: "p-" + amount, InvoiceID: invoiceID, Amount: dec(amount), Method: payment.MethodCash}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		items        []invoice.Item
		discount     string
		taxRate      string
		payments     []*payment.Payment
		wantSubtotal string
		wantAfter    string
		wantTax      string
		wantGrand    string
		wantPaid     string
		wantBalance  string
	}{
		{
			name:         "design and hosting with tax",
			items:        []invoice.Item{item("1", 1, "4500"), item("2", 1, "1200")},
			discount:     "0",
			taxRate:      "8.5",
			wantSubtotal: "5700",
			wantAfter:    "5700",
			wantTax:      "484.5",
			wantGrand:    "6184.5",
			wantPaid:     "0",
			wantBalance:  "6184.5",
		},
		{
			name:         "partial payment leaves the tax open",
			items:        []invoice.Item{item("1", 1, "4500"), item("2", 1, "1200")},
			discount:     "0",
			taxRate:      "8.5",
			payments:     []*payment.Payment{pay("inv", "5700.00")},
			wantSubtotal: "5700",
			wantAfter:    "5700",
			wantTax:      "484.5",
			wantGrand:    "6184.5",
			wantPaid:     "5700",
			wantBalance:  "484.5",
		},
		{
			name:         "discount before tax",
			items:        []invoice.Item{item("1", 1, "8500"), item("2", 1, "2200"), item("3", 1, "850")},
			discount:     "500",
			taxRate:      "8.5",
			wantSubtotal: "11550",
			wantAfter:    "11050",
			wantTax:      "939.25",
			wantGrand:    "11989.25",
			wantPaid:     "0",
			wantBalance:  "11989.25",
		},
		{
			name:         "no tax no discount",
			items:        []invoice.Item{item("1", 3, "120.10"), item("2", 2, "0.05")},
			discount:     "0",
			taxRate:      "0",
			wantSubtotal: "360.4",
			wantAfter:    "360.4",
			wantTax:      "0",
			wantGrand:    "360.4",
			wantPaid:     "0",
			wantBalance:  "360.4",
		},
		{
			name:         "overpaid invoice has negative balance",
			items:        []invoice.Item{item("1", 1, "100")},
			discount:     "0",
			taxRate:      "0",
			payments:     []*payment.Payment{pay("inv", "80"), pay("inv", "50"), pay("other", "1000")},
			wantSubtotal: "100",
			wantAfter:    "100",
			wantTax:      "0",
			wantGrand:    "100",
			wantPaid:     "130",
			wantBalance:  "-30",
		},
		{
			name:         "discount larger than subtotal",
			items:        []invoice.Item{item("1", 1, "100")},
			discount:     "150",
			taxRate:      "10",
			wantSubtotal: "100",
			wantAfter:    "-50",
			wantTax:      "-5",
			wantGrand:    "-55",
			wantPaid:     "0",
			wantBalance:  "-55",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &invoice.Invoice{
				ID:       "inv",
				Items:    tt.items,
				Discount: dec(tt.discount),
				TaxRate:  dec(tt.taxRate),
			}

			got := billing.Compute(inv, tt.payments)

			check := func(field string, got decimal.Decimal, want string) {
				t.Helper()
				if !got.Equal(dec(want)) {
					t.Errorf("%s = %s, want %s", field, got, want)
				}
			}
			check("Subtotal", got.Subtotal, tt.wantSubtotal)
			check("AfterDiscount", got.AfterDiscount, tt.wantAfter)
			check("Tax", got.Tax, tt.wantTax)
			check("GrandTotal", got.GrandTotal, tt.wantGrand)
			check("Paid", got.Paid, tt.wantPaid)
			check("Balance", got.Balance, tt.wantBalance)

			// As funções individuais devem concordar com Compute
			check("billing.Subtotal", billing.Subtotal(inv), tt.wantSubtotal)
			check("billing.AfterDiscount", billing.AfterDiscount(inv), tt.wantAfter)
			check("billing.Tax", billing.Tax(inv), tt.wantTax)
			check("billing.GrandTotal", billing.GrandTotal(inv), tt.wantGrand)
			check("billing.Paid", billing.Paid(inv.ID, tt.payments), tt.wantPaid)
			check("billing.Balance", billing.Balance(inv, tt.payments), tt.wantBalance)
		})
	}
}

func TestGrandTotalIdentity(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	for _, rate := range []string{"0", "5", "8.5", "12.75", "33.333"} {
		for _, discount := range []string{"0", "10", "99.99", "2500"} {
			inv := &invoice.Invoice{
				ID:       "inv",
				Items:    []invoice.Item{item("1", 7, "13.37"), item("2", 2, "1999.99"), item("3", 0, "50")},
				Discount: dec(discount),
				TaxRate:  dec(rate),
			}
			want := billing.Subtotal(inv).Sub(inv.Discount).Mul(decimal.NewFromInt(1).Add(inv.TaxRate.Div(hundred)))
			if got := billing.GrandTotal(inv); !got.Equal(want) {
				t.Errorf("rate %s discount %s: GrandTotal = %s, want %s", rate, discount, got, want)
			}
		}
	}
}

func TestBalanceDecreasesByPayment(t *testing.T) {
	inv := &invoice.Invoice{ID: "inv", Items: []invoice.Item{item("1", 2, "1500")}, TaxRate: dec("8.5")}
	payments := []*payment.Payment{pay("inv", "250")}

	before := billing.Balance(inv, payments)
	payments = append(payments, pay("inv", "333.33"))
	after := billing.Balance(inv, payments)

	if diff := before.Sub(after); !diff.Equal(dec("333.33")) {
		t.Errorf("balance decreased by %s, want 333.33", diff)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	items := []invoice.Item{item("1", 1, "4500"), item("2", 1, "1200")}
	inv := &invoice.Invoice{ID: "inv", Items: items, Discount: dec("10"), TaxRate: dec("8.5")}
	payments := []*payment.Payment{pay("inv", "100")}

	first := billing.Compute(inv, payments)
	second := billing.Compute(inv, payments)

	pairs := [][2]decimal.Decimal{
		{first.Subtotal, second.Subtotal},
		{first.AfterDiscount, second.AfterDiscount},
		{first.Tax, second.Tax},
		{first.GrandTotal, second.GrandTotal},
		{first.Paid, second.Paid},
		{first.Balance, second.Balance},
	}
	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			t.Errorf("Compute not idempotent: %+v != %+v", first, second)
		}
	}
	if !inv.Items[0].Rate.Equal(dec("4500")) || len(inv.Items) != 2 {
		t.Errorf("Compute mutated invoice items: %+v", inv.Items)
	}
	if !payments[0].Amount.Equal(dec("100")) {
		t.Errorf("Compute mutated payments: %+v", payments[0])
	}
}

func TestIsEffectivelyOverdue(t *testing.T) {
	asOf := time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)
	due := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		status invoice.Status
		due    time.Time
		want   bool
	}{
		{"sent past due", invoice.StatusSent, due(2024, time.March, 14), true},
		{"sent due today", invoice.StatusSent, due(2024, time.March, 15), false},
		{"sent future", invoice.StatusSent, due(2024, time.April, 1), false},
		{"paid past due", invoice.StatusPaid, due(2024, time.January, 1), false},
		{"draft past due", invoice.StatusDraft, due(2024, time.January, 1), false},
		{"marked overdue", invoice.StatusOverdue, due(2024, time.April, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &invoice.Invoice{Status: tt.status, DueDate: tt.due}
			if got := billing.IsEffectivelyOverdue(inv, asOf); got != tt.want {
				t.Errorf("IsEffectivelyOverdue = %v, want %v", got, tt.want)
			}
			if inv.Status != tt.status {
				t.Errorf("status changed to %s", inv.Status)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":           "0.00",
		"5":           "5.00",
		"484.5":       "484.50",
		"6184.5":      "6,184.50",
		"11989.25":    "11,989.25",
		"1234567.891": "1,234,567.89",
		"-30":         "-30.00",
		"-1234.5":     "-1,234.50",
		"999.999":     "1,000.00",
	}
	for in, want := range tests {
		if got := billing.FormatMoney(dec(in)); got != want {
			t.Errorf("FormatMoney(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[string]string{
		"8.5":   "8.5",
		"10":    "10",
		"8.50":  "8.5",
		"0":     "0",
		"8.125": "8.125",
	}
	for in, want := range tests {
		if got := billing.FormatPercent(dec(in)); got != want {
			t.Errorf("FormatPercent(%s) = %q, want %q", in, got, want)
		}
	}
}
