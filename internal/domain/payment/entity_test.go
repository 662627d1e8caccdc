package payment_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/shopspring/decimal"
)

func validFields() payment.Fields {
	return payment.Fields{
		InvoiceID: "inv1",
		Amount:    decimal.RequireFromString("5700"),
		Date:      time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Method:    payment.MethodBankTransfer,
		Reference: "TXN-20260201",
	}
}

func TestNewPaymentValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *payment.Fields)
		want   error
	}{
		{"empty invoice", func(f *payment.Fields) { f.InvoiceID = " " }, payment.ErrEmptyInvoice},
		{"zero amount", func(f *payment.Fields) { f.Amount = decimal.Zero }, payment.ErrNonPositiveAmount},
		{"negative amount", func(f *payment.Fields) { f.Amount = decimal.RequireFromString("-10") }, payment.ErrNonPositiveAmount},
		{"unknown method", func(f *payment.Fields) { f.Method = "cheque" }, payment.ErrInvalidMethod},
		{"missing date", func(f *payment.Fields) { f.Date = time.Time{} }, payment.ErrEmptyDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.modify(&f)

			p, err := payment.NewPayment(f, time.Time{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewPayment error = %v, want %v", err, tt.want)
			}
			if p != nil {
				t.Errorf("NewPayment returned %+v for invalid fields", p)
			}
			if !payment.IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestNewPaymentKeepsPrecision(t *testing.T) {
	f := validFields()
	f.Amount = decimal.RequireFromString("0.001")

	p, err := payment.NewPayment(f, time.Time{})
	if err != nil {
		t.Fatalf("NewPayment: %v", err)
	}
	if p.ID == "" {
		t.Error("id not generated")
	}
	if !p.Amount.Equal(decimal.RequireFromString("0.001")) {
		t.Errorf("amount = %s, want 0.001", p.Amount)
	}
}

func TestMethods(t *testing.T) {
	labels := map[payment.Method]string{
		payment.MethodBankTransfer: "Bank Transfer",
		payment.MethodCreditCard:   "Credit Card",
		payment.MethodPayPal:       "PayPal",
		payment.MethodCash:         "Cash",
	}
	for m, want := range labels {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
		if got := m.Label(); got != want {
			t.Errorf("Label(%q) = %q, want %q", m, got, want)
		}
	}
	if payment.Method("cheque").Valid() {
		t.Error("cheque should not be valid")
	}
	if payment.IsValidationError(payment.ErrNotFound) {
		t.Error("ErrNotFound is not a validation error")
	}
}
