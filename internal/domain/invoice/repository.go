package invoice

import (
	"context"
)

// Repository define a interface para operações de repositório de faturas
type Repository interface {
	// List lista todas as faturas, da mais recente para a mais antiga
	List(ctx context.Context) ([]*Invoice, error)

	// FindByID busca uma fatura pelo ID
	FindByID(ctx context.Context, id string) (*Invoice, error)

	// Create persiste uma nova fatura e atribui o próximo número sequencial
	Create(ctx context.Context, inv *Invoice) error

	// Update aplica uma atualização parcial e retorna a fatura atualizada
	Update(ctx context.Context, id string, p Patch) (*Invoice, error)

	// Delete remove uma fatura. Pagamentos que a referenciam não são removidos.
	Delete(ctx context.Context, id string) error
}
