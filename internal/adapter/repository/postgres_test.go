package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

// Sem owner no contexto nenhum repositório chega a usar o pool
func TestRepositoriesWithoutOwner(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(nil)

	clients, err := repos.Clients.List(ctx)
	if err != nil || len(clients) != 0 {
		t.Errorf("Clients.List = %v, %v", clients, err)
	}
	invoices, err := repos.Invoices.List(ctx)
	if err != nil || len(invoices) != 0 {
		t.Errorf("Invoices.List = %v, %v", invoices, err)
	}
	payments, err := repos.Payments.List(ctx)
	if err != nil || len(payments) != 0 {
		t.Errorf("Payments.List = %v, %v", payments, err)
	}
	byInvoice, err := repos.Payments.FindByInvoice(ctx, "inv1")
	if err != nil || len(byInvoice) != 0 {
		t.Errorf("Payments.FindByInvoice = %v, %v", byInvoice, err)
	}
	if got, err := repos.Profile.Get(ctx); err != nil || got != profile.Default() {
		t.Errorf("Profile.Get = %+v, %v", got, err)
	}

	id := "4b3b7c9e-1d2f-4a5b-8c6d-7e8f9a0b1c2d"
	if _, err := repos.Clients.FindByID(ctx, id); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Clients.FindByID error = %v", err)
	}
	if _, err := repos.Invoices.FindByID(ctx, id); !errors.Is(err, invoice.ErrNotFound) {
		t.Errorf("Invoices.FindByID error = %v", err)
	}
	if _, err := repos.Payments.FindByID(ctx, id); !errors.Is(err, payment.ErrNotFound) {
		t.Errorf("Payments.FindByID error = %v", err)
	}

	name := "Nina"
	writes := map[string]error{
		"Clients.Create":  repos.Clients.Create(ctx, &client.Client{Name: "Nina", Email: "nina@example.com"}),
		"Clients.Delete":  repos.Clients.Delete(ctx, id),
		"Invoices.Create": repos.Invoices.Create(ctx, &invoice.Invoice{ClientID: "c1"}),
		"Invoices.Delete": repos.Invoices.Delete(ctx, id),
		"Payments.Create": repos.Payments.Create(ctx, &payment.Payment{InvoiceID: "inv1", Amount: decimal.NewFromInt(1)}),
	}
	_, writes["Clients.Update"] = repos.Clients.Update(ctx, id, client.Patch{Name: &name})
	_, writes["Invoices.Update"] = repos.Invoices.Update(ctx, id, invoice.Patch{Notes: &name})
	_, writes["Profile.Update"] = repos.Profile.Update(ctx, profile.Patch{Name: &name})

	for op, err := range writes {
		if !errors.Is(err, owner.ErrNoOwner) {
			t.Errorf("%s error = %v, want ErrNoOwner", op, err)
		}
	}
}

type recordingTx struct {
	pgx.Tx
	stmts []string
	row   profile.BusinessProfile
}

func (tx *recordingTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.stmts = append(tx.stmts, sql)
	return pgconn.NewCommandTag("OK"), nil
}

func (tx *recordingTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	tx.stmts = append(tx.stmts, sql)
	return profileRow(tx.row)
}

func (tx *recordingTx) Commit(context.Context) error   { return nil }
func (tx *recordingTx) Rollback(context.Context) error { return nil }

type profileRow profile.BusinessProfile

func (r profileRow) Scan(dest ...any) error {
	values := []string{r.Name, r.Tagline, r.Email, r.Phone, r.Website, r.Address,
		r.TaxID, r.BankName, r.BankAccount, r.BankRouting}
	for i, d := range dest {
		*d.(*string) = values[i]
	}
	return nil
}

type txDB struct{ tx *recordingTx }

func (db txDB) Begin(context.Context) (pgx.Tx, error) { return db.tx, nil }

func (db txDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.tx.QueryRow(ctx, sql, args...)
}

func TestProfileUpdateCreatesRowBeforeLocking(t *testing.T) {
	tx := &recordingTx{row: profile.Default()}
	repo := &ProfileRepository{db: txDB{tx: tx}}
	ctx := owner.WithOwner(context.Background(), "user-1")

	name := "Orbit Studio"
	got, err := repo.Update(ctx, profile.Patch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := profile.Default()
	want.Name = name
	if got != want {
		t.Errorf("Update = %+v, want %+v", got, want)
	}

	if len(tx.stmts) != 3 {
		t.Fatalf("statements = %d, want 3: %q", len(tx.stmts), tx.stmts)
	}
	if !strings.Contains(tx.stmts[0], "ON CONFLICT (owner_id) DO NOTHING") {
		t.Errorf("first statement should insert the default row: %s", tx.stmts[0])
	}
	if !strings.Contains(tx.stmts[1], "FOR UPDATE") {
		t.Errorf("second statement should lock the row: %s", tx.stmts[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(tx.stmts[2]), "UPDATE business_profiles") {
		t.Errorf("third statement should update the row: %s", tx.stmts[2])
	}
}
