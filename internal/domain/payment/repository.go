package payment

import (
	"context"
)

// Repository define a interface para operações de repositório de pagamentos.
// Pagamentos são apenas anexados: não há Update nem Delete.
type Repository interface {
	// List lista todos os pagamentos, do mais recente para o mais antigo
	List(ctx context.Context) ([]*Payment, error)

	// FindByID busca um pagamento pelo ID
	FindByID(ctx context.Context, id string) (*Payment, error)

	// FindByInvoice lista os pagamentos de uma fatura
	FindByInvoice(ctx context.Context, invoiceID string) ([]*Payment, error)

	// Create registra um novo pagamento
	Create(ctx context.Context, p *Payment) error
}
