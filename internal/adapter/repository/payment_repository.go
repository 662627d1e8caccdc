package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, invoice_id, amount::text, date, method, reference, created_at`

// PaymentRepository implementa a interface payment.Repository.
// Pagamentos não são alterados nem removidos.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository cria uma nova instância de PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) payment.Repository {
	return &PaymentRepository{db: db}
}

// List implementa payment.Repository.List
func (r *PaymentRepository) List(ctx context.Context) ([]*payment.Payment, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok {
		return []*payment.Payment{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+`
		FROM payments
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	return scanPaymentRows(rows)
}

// FindByID implementa payment.Repository.FindByID
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok || !validID(id) {
		return nil, payment.ErrNotFound
	}

	p, err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE owner_id = $1 AND id = $2`,
		ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}

	return p, nil
}

// FindByInvoice implementa payment.Repository.FindByInvoice
func (r *PaymentRepository) FindByInvoice(ctx context.Context, invoiceID string) ([]*payment.Payment, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok {
		return []*payment.Payment{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+`
		FROM payments
		WHERE owner_id = $1 AND invoice_id = $2
		ORDER BY created_at DESC`,
		ownerID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos da fatura: %w", err)
	}
	defer rows.Close()

	return scanPaymentRows(rows)
}

// Create implementa payment.Repository.Create
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO payments (id, owner_id, invoice_id, amount, date, method, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		p.ID, ownerID, p.InvoiceID, p.Amount.String(), p.Date, string(p.Method), p.Reference).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar pagamento: %w", err)
	}

	return nil
}

func scanPaymentRows(rows pgx.Rows) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pagamento: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar pagamentos: %w", err)
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var p payment.Payment
	var amount, method string

	if err := row.Scan(&p.ID, &p.InvoiceID, &amount, &p.Date, &method, &p.Reference, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Method = payment.Method(method)
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter valor: %w", err)
	}
	p.Amount = value

	return &p, nil
}
