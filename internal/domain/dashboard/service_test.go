package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

var errUnavailable = errors.New("conexão recusada")

type fakeClients struct {
	client.Repository
	items []*client.Client
	err   error
}

func (f *fakeClients) List(context.Context) ([]*client.Client, error) { return f.items, f.err }

type fakeInvoices struct {
	invoice.Repository
	items []*invoice.Invoice
}

func (f *fakeInvoices) List(context.Context) ([]*invoice.Invoice, error) { return f.items, nil }

type fakePayments struct {
	payment.Repository
	items []*payment.Payment
}

func (f *fakePayments) List(context.Context) ([]*payment.Payment, error) { return f.items, nil }

func newTestService() (*Service, *fakeClients) {
	clients, invoices, payments := fixture()
	fc := &fakeClients{items: clients}
	svc := NewService(fc, &fakeInvoices{items: invoices}, &fakePayments{items: payments}, 6, logger.Nop())
	svc.now = func() time.Time { return day(2024, time.March, 15) }
	return svc, fc
}

func TestServiceSnapshot(t *testing.T) {
	svc, _ := newTestService()

	snap, err := svc.Snapshot(owner.WithOwner(context.Background(), "u1"))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Stale {
		t.Error("fresh snapshot marked stale")
	}
	if snap.Summary.TotalClients != 2 || len(snap.RevenueByMonth) != 6 || len(snap.RecentInvoices) != RecentLimit {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if !snap.PaymentStats.ThisMonth.Equal(dec("550")) {
		t.Errorf("this month = %s", snap.PaymentStats.ThisMonth)
	}
}

func TestServiceServesLastKnownGood(t *testing.T) {
	svc, fc := newTestService()
	ctx := owner.WithOwner(context.Background(), "u1")

	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatalf("first Snapshot: %v", err)
	}

	fc.err = errUnavailable
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot after failure: %v", err)
	}
	if !snap.Stale || snap.Summary.TotalClients != 2 {
		t.Errorf("expected stale copy of last snapshot, got %+v", snap)
	}

	// outro usuário não tem snapshot anterior
	_, err = svc.Snapshot(owner.WithOwner(context.Background(), "u2"))
	if !errors.Is(err, errUnavailable) {
		t.Errorf("error = %v, want wrapped errUnavailable", err)
	}

	fc.err = nil
	snap, err = svc.Snapshot(ctx)
	if err != nil || snap.Stale {
		t.Errorf("recovered snapshot = %+v, %v", snap, err)
	}
}
