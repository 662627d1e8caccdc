package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/dashboard"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/hugohenrick/billing-dashboard/internal/feed"
	"github.com/shopspring/decimal"
)

type recorder struct {
	events []feed.Event
}

func (r *recorder) Publish(e feed.Event) { r.events = append(r.events, e) }

func tickingClock() func() time.Time {
	t := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newInvoice(t *testing.T, clientID string) *invoice.Invoice {
	t.Helper()
	inv, err := invoice.NewInvoice(invoice.Fields{
		ClientID:  clientID,
		Items:     []invoice.Item{{Description: "Consulting", Quantity: 2, Rate: decimal.NewFromInt(150)}},
		IssueDate: date("2026-02-01"),
		DueDate:   date("2026-03-01"),
		TaxRate:   decimal.RequireFromString("8.5"),
		Discount:  decimal.Zero,
		Terms:     invoice.DefaultTerms,
	}, time.Time{})
	if err != nil {
		t.Fatalf("NewInvoice: %v", err)
	}
	return inv
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(WithClock(tickingClock()))
	repo := store.Clients()

	c, err := client.NewClient(client.Fields{Name: "Acme", Email: "ap@acme.io", Phone: "1", Company: "Acme Inc", Address: "Main St"}, time.Time{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *got != *c {
		t.Errorf("round trip mismatch: %+v != %+v", got, c)
	}
	if got.CreatedAt.IsZero() {
		t.Error("store should assign creation time")
	}

	got.Name = "mutated"
	again, _ := repo.FindByID(ctx, c.ID)
	if again.Name != "Acme" {
		t.Error("FindByID should return a copy")
	}
}

func TestClientValidationLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Clients()

	if err := repo.Create(ctx, &client.Client{Name: "No email"}); !errors.Is(err, client.ErrEmptyEmail) {
		t.Fatalf("Create error = %v, want ErrEmptyEmail", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Fatalf("store changed: %d clients", len(list))
	}

	c, _ := client.NewClient(client.Fields{Name: "Acme", Email: "ap@acme.io"}, time.Time{})
	_ = repo.Create(ctx, c)
	empty := ""
	if _, err := repo.Update(ctx, c.ID, client.Patch{Name: &empty}); !errors.Is(err, client.ErrEmptyName) {
		t.Fatalf("Update error = %v, want ErrEmptyName", err)
	}
	got, _ := repo.FindByID(ctx, c.ID)
	if got.Name != "Acme" {
		t.Errorf("failed update changed the record: %+v", got)
	}
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	name := "x"
	if _, err := store.Clients().Update(ctx, "missing", client.Patch{Name: &name}); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("client update: %v", err)
	}
	if err := store.Clients().Delete(ctx, "missing"); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("client delete: %v", err)
	}
	if _, err := store.Invoices().Update(ctx, "missing", invoice.Patch{}); !errors.Is(err, invoice.ErrNotFound) {
		t.Errorf("invoice update: %v", err)
	}
	if err := store.Invoices().Delete(ctx, "missing"); !errors.Is(err, invoice.ErrNotFound) {
		t.Errorf("invoice delete: %v", err)
	}
	if _, err := store.Payments().FindByID(ctx, "missing"); !errors.Is(err, payment.ErrNotFound) {
		t.Errorf("payment find: %v", err)
	}
}

func TestInvoiceNumberingSurvivesDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Invoices()

	var numbers []string
	for i := 0; i < 5; i++ {
		inv := newInvoice(t, "c1")
		if err := repo.Create(ctx, inv); err != nil {
			t.Fatalf("Create: %v", err)
		}
		numbers = append(numbers, inv.Number)
		if i%2 == 0 {
			if err := repo.Delete(ctx, inv.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
		}
	}

	want := []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("number %d = %s, want %s", i, numbers[i], want[i])
		}
	}
}

func TestListIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(WithClock(tickingClock())).Invoices()

	first, second := newInvoice(t, "c1"), newInvoice(t, "c2")
	_ = repo.Create(ctx, first)
	_ = repo.Create(ctx, second)

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("order = %v, want newest first", []string{list[0].ID, list[1].ID})
	}
	if !list[0].CreatedAt.After(list[1].CreatedAt) {
		t.Error("creation times should increase")
	}
}

func TestInvoiceCreateGeneratesItemIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Invoices()

	inv := &invoice.Invoice{
		ClientID: "c1",
		Status:   invoice.StatusDraft,
		DueDate:  date("2026-03-01"),
		Items: []invoice.Item{
			{Description: "A", Quantity: 1, Rate: decimal.NewFromInt(1)},
			{Description: "B", Quantity: 1, Rate: decimal.NewFromInt(2)},
		},
	}
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.ID == "" || inv.Items[0].ID == "" || inv.Items[0].ID == inv.Items[1].ID {
		t.Errorf("ids not generated: %+v", inv)
	}
}

func TestInvoicePatchKeepsNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Invoices()
	inv := newInvoice(t, "c1")
	_ = repo.Create(ctx, inv)

	status := invoice.StatusSent
	notes := "Net 30"
	updated, err := repo.Update(ctx, inv.ID, invoice.Patch{Status: &status, Notes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Number != inv.Number || updated.Status != invoice.StatusSent || updated.Notes != "Net 30" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.TaxRate.Equal(inv.TaxRate) || len(updated.Items) != 1 {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	bad := []invoice.Item{{Description: "Negative", Quantity: -1, Rate: decimal.NewFromInt(10)}}
	if _, err := repo.Update(ctx, inv.ID, invoice.Patch{Items: &bad}); !errors.Is(err, invoice.ErrNegativeQuantity) {
		t.Errorf("Update error = %v, want ErrNegativeQuantity", err)
	}
}

func TestPaymentsAppendOnlyAndBalance(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	inv := newInvoice(t, "c1")
	_ = store.Invoices().Create(ctx, inv)

	if err := store.Payments().Create(ctx, &payment.Payment{InvoiceID: inv.ID, Amount: decimal.Zero, Date: date("2026-02-02"), Method: payment.MethodCash}); !errors.Is(err, payment.ErrNonPositiveAmount) {
		t.Fatalf("zero payment error = %v", err)
	}

	p, err := payment.NewPayment(payment.Fields{InvoiceID: inv.ID, Amount: decimal.NewFromInt(100), Date: date("2026-02-02"), Method: payment.MethodCash}, time.Time{})
	if err != nil {
		t.Fatalf("NewPayment: %v", err)
	}
	if err := store.Payments().Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	payments, _ := store.Payments().FindByInvoice(ctx, inv.ID)
	if len(payments) != 1 {
		t.Fatalf("payments = %d", len(payments))
	}
	// 300 * 1.085 = 325.5
	if got := billing.Balance(inv, payments); !got.Equal(decimal.RequireFromString("225.5")) {
		t.Errorf("balance = %s, want 225.5", got)
	}

	// remover a fatura mantém o pagamento
	_ = store.Invoices().Delete(ctx, inv.ID)
	all, _ := store.Payments().List(ctx)
	if len(all) != 1 || all[0].InvoiceID != inv.ID {
		t.Errorf("payment should remain orphaned: %+v", all)
	}
}

func TestProfilePatch(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Profile()

	got, _ := repo.Get(ctx)
	if got != profile.Default() {
		t.Fatalf("initial profile = %+v", got)
	}

	name := "Ledger & Co"
	updated, err := repo.Update(ctx, profile.Patch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != name || updated.BankName != profile.Default().BankName {
		t.Errorf("updated = %+v", updated)
	}
	if again, _ := repo.Get(ctx); again.Name != name {
		t.Errorf("Get after update = %+v", again)
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	store := NewStore(WithPublisher(rec))

	c, _ := client.NewClient(client.Fields{Name: "Acme", Email: "ap@acme.io"}, time.Time{})
	_ = store.Clients().Create(ctx, c)
	_ = store.Clients().Delete(ctx, c.ID)
	inv := newInvoice(t, c.ID)
	_ = store.Invoices().Create(ctx, inv)

	want := []feed.Event{
		{Collection: feed.CollectionClients, Action: feed.ActionCreated, ID: c.ID},
		{Collection: feed.CollectionClients, Action: feed.ActionDeleted, ID: c.ID},
		{Collection: feed.CollectionInvoices, Action: feed.ActionCreated, ID: inv.ID},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %+v", rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, rec.events[i], want[i])
		}
	}
}

func TestSeededStore(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore()

	invoices, _ := store.Invoices().List(ctx)
	if len(invoices) != 6 || invoices[0].Number != "INV-001" {
		t.Fatalf("seed invoices = %d", len(invoices))
	}
	totals := billing.Compute(invoices[0], mustPayments(t, store))
	if !totals.GrandTotal.Equal(decimal.RequireFromString("6184.5")) || !totals.Balance.Equal(decimal.RequireFromString("484.5")) {
		t.Errorf("INV-001 totals = %+v", totals)
	}

	inv := newInvoice(t, "c1")
	_ = store.Invoices().Create(ctx, inv)
	if inv.Number != "INV-007" {
		t.Errorf("next number = %s, want INV-007", inv.Number)
	}
}

func TestDeletedClientShowsUnknown(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore()

	if err := store.Clients().Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	clients, _ := store.Clients().List(ctx)
	invoices, _ := store.Invoices().List(ctx)

	rows := dashboard.InvoiceRows(invoices, clients, mustPayments(t, store), date("2026-02-15"))
	for _, row := range rows {
		if row.ClientID == "c1" && row.ClientName != dashboard.UnknownLabel {
			t.Errorf("%s client = %q", row.Number, row.ClientName)
		}
	}
	if len(invoices) != 6 {
		t.Errorf("invoices removed: %d", len(invoices))
	}
}

func mustPayments(t *testing.T, store *Store) []*payment.Payment {
	t.Helper()
	payments, err := store.Payments().List(context.Background())
	if err != nil {
		t.Fatalf("List payments: %v", err)
	}
	return payments
}

func TestRejectedInvoiceUpdateKeepsStoredRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Invoices()
	inv := newInvoice(t, "c1")
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, _ := repo.FindByID(ctx, inv.ID)

	notes := "should not stick"
	discount := decimal.RequireFromString("-0.004")
	if _, err := repo.Update(ctx, inv.ID, invoice.Patch{Notes: &notes, Discount: &discount}); !errors.Is(err, invoice.ErrNegativeDiscount) {
		t.Fatalf("Update error = %v, want ErrNegativeDiscount", err)
	}

	after, err := repo.FindByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if after.Notes != before.Notes || !after.Discount.Equal(before.Discount) || after.Number != before.Number {
		t.Errorf("stored invoice changed: before %+v, after %+v", before, after)
	}
}
