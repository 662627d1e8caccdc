package render

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/repository/memory"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

func seededSources() (Sources, *memory.Store) {
	store := memory.NewSeededStore()
	return Sources{
		Invoices: store.Invoices(),
		Clients:  store.Clients(),
		Payments: store.Payments(),
		Profile:  store.Profile(),
	}, store
}

func TestLoadInput(t *testing.T) {
	src, _ := seededSources()

	in, err := LoadInput(context.Background(), src, "inv1")
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if in.Client == nil || in.Client.Name != "Sarah Mitchell" {
		t.Errorf("client = %+v", in.Client)
	}
	if !in.Totals.Balance.Equal(decimal.RequireFromString("484.5")) {
		t.Errorf("balance = %s", in.Totals.Balance)
	}
	if in.Profile.Name == "" {
		t.Error("profile should be loaded")
	}
}

func TestLoadInputDeletedClient(t *testing.T) {
	src, _ := seededSources()
	ctx := context.Background()

	if err := src.Clients.Delete(ctx, "c3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	in, err := LoadInput(ctx, src, "inv3")
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if in.Client != nil {
		t.Errorf("client should be nil, got %+v", in.Client)
	}
}

func TestLoadInputMissingInvoice(t *testing.T) {
	src, _ := seededSources()
	if _, err := LoadInput(context.Background(), src, "nope"); !errors.Is(err, invoice.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
