package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `id, number, client_id, items, status, issue_date, due_date, notes,
	tax_rate::text, discount::text, terms, signatory, created_at`

// InvoiceRepository implementa a interface invoice.Repository
type InvoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository cria uma nova instância de InvoiceRepository
func NewInvoiceRepository(db *pgxpool.Pool) invoice.Repository {
	return &InvoiceRepository{db: db}
}

// List implementa invoice.Repository.List
func (r *InvoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok {
		return []*invoice.Invoice{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+`
		FROM invoices
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar faturas: %w", err)
	}
	defer rows.Close()

	invoices := make([]*invoice.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler fatura: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar faturas: %w", err)
	}

	return invoices, nil
}

// FindByID implementa invoice.Repository.FindByID
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok || !validID(id) {
		return nil, invoice.ErrNotFound
	}

	inv, err := scanInvoice(r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE owner_id = $1 AND id = $2`,
		ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar fatura: %w", err)
	}

	return inv, nil
}

// Create implementa invoice.Repository.Create. O número vem do contador do
// owner, incrementado na mesma transação da inserção.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return err
	}
	inv.EnsureItemIDs()
	if err := inv.Validate(); err != nil {
		return err
	}

	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	id := inv.ID
	if id == "" {
		id = uuid.New().String()
	}

	var number string
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var next int64
		err := tx.QueryRow(ctx,
			`INSERT INTO invoice_counters (owner_id, value) VALUES ($1, 1)
			ON CONFLICT (owner_id) DO UPDATE SET value = invoice_counters.value + 1
			RETURNING value`,
			ownerID).Scan(&next)
		if err != nil {
			return fmt.Errorf("erro ao gerar número da fatura: %w", err)
		}
		number = invoice.FormatNumber(next)

		err = tx.QueryRow(ctx,
			`INSERT INTO invoices (
				id, owner_id, number, client_id, items, status, issue_date, due_date,
				notes, tax_rate, discount, terms, signatory
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at`,
			id, ownerID, number, inv.ClientID, items, string(inv.Status), inv.IssueDate, inv.DueDate,
			inv.Notes, inv.TaxRate.String(), inv.Discount.String(), inv.Terms, inv.Signatory).Scan(&inv.CreatedAt)
		if err != nil {
			return fmt.Errorf("erro ao criar fatura: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	inv.ID = id
	inv.Number = number
	return nil
}

// Update implementa invoice.Repository.Update
func (r *InvoiceRepository) Update(ctx context.Context, id string, p invoice.Patch) (*invoice.Invoice, error) {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, invoice.ErrNotFound
	}

	var updated *invoice.Invoice
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanInvoice(tx.QueryRow(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE owner_id = $1 AND id = $2 FOR UPDATE`,
			ownerID, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return invoice.ErrNotFound
			}
			return fmt.Errorf("erro ao buscar fatura: %w", err)
		}

		updated, err = current.Apply(p)
		if err != nil {
			return err
		}

		items, err := json.Marshal(updated.Items)
		if err != nil {
			return fmt.Errorf("erro ao converter itens para JSON: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE invoices SET
				client_id = $3, items = $4, status = $5, issue_date = $6, due_date = $7,
				notes = $8, tax_rate = $9, discount = $10, terms = $11, signatory = $12
			WHERE owner_id = $1 AND id = $2`,
			ownerID, id, updated.ClientID, items, string(updated.Status), updated.IssueDate, updated.DueDate,
			updated.Notes, updated.TaxRate.String(), updated.Discount.String(), updated.Terms, updated.Signatory)
		if err != nil {
			return fmt.Errorf("erro ao atualizar fatura: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete implementa invoice.Repository.Delete
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return err
	}
	if !validID(id) {
		return invoice.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover fatura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	var itemsJSON []byte
	var status, taxRate, discount string

	err := row.Scan(&inv.ID, &inv.Number, &inv.ClientID, &itemsJSON, &status, &inv.IssueDate, &inv.DueDate,
		&inv.Notes, &taxRate, &discount, &inv.Terms, &inv.Signatory, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(status)
	if err := json.Unmarshal(itemsJSON, &inv.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}
	if inv.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return nil, fmt.Errorf("erro ao converter alíquota: %w", err)
	}
	if inv.Discount, err = decimal.NewFromString(discount); err != nil {
		return nil, fmt.Errorf("erro ao converter desconto: %w", err)
	}

	return &inv, nil
}
