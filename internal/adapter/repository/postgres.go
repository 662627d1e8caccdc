package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
)

// Repositories agrupa os repositórios usados pela aplicação, seja qual for o armazenamento
type Repositories struct {
	Clients  client.Repository
	Invoices invoice.Repository
	Payments payment.Repository
	Profile  profile.Repository
}

// NewRepositories cria os repositórios PostgreSQL sobre o pool informado
func NewRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Clients:  NewClientRepository(db),
		Invoices: NewInvoiceRepository(db),
		Payments: NewPaymentRepository(db),
		Profile:  NewProfileRepository(db),
	}
}

// validID indica se o ID pode existir na tabela. IDs em outro formato
// são tratados como inexistentes em vez de erro do banco.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
