package profile

import (
	"context"
)

// Repository define o acesso ao perfil da empresa
type Repository interface {
	// Get retorna o perfil atual (o padrão, se nunca foi alterado)
	Get(ctx context.Context) (BusinessProfile, error)

	// Update aplica uma atualização parcial e retorna o perfil resultante
	Update(ctx context.Context, p Patch) (BusinessProfile, error)
}
