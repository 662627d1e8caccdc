package client

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// List lista todos os clientes, do mais recente para o mais antigo
	List(ctx context.Context) ([]*Client, error)

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Client, error)

	// Create persiste um novo cliente
	Create(ctx context.Context, c *Client) error

	// Update aplica uma atualização parcial e retorna o cliente atualizado
	Update(ctx context.Context, id string, p Patch) (*Client, error)

	// Delete remove um cliente. Faturas que o referenciam não são alteradas.
	Delete(ctx context.Context, id string) error
}
