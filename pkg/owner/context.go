// Package owner carrega a identidade do usuário autenticado no contexto.
// Todos os registros do repositório PostgreSQL pertencem a um owner.
package owner

import (
	"context"
	"errors"
)

// ErrNoOwner ocorre quando uma escrita é feita sem usuário autenticado
var ErrNoOwner = errors.New("nenhum usuário autenticado")

type contextKey string

const (
	// ownerIDKey é a chave usada para armazenar o owner ID no contexto
	ownerIDKey contextKey = "owner_id"

	// GinKey é a chave usada no contexto do Gin
	GinKey = "owner_id"
)

// WithOwner define o owner ID no contexto
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// FromContext obtém o owner ID do contexto. O booleano indica se há usuário autenticado.
func FromContext(ctx context.Context) (string, bool) {
	if ownerID, ok := ctx.Value(ownerIDKey).(string); ok && ownerID != "" {
		return ownerID, true
	}
	return "", false
}

// Require obtém o owner ID ou retorna ErrNoOwner
func Require(ctx context.Context) (string, error) {
	ownerID, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoOwner
	}
	return ownerID, nil
}

// GetOwnerID obtém o owner ID de um contexto do Gin
func GetOwnerID(c interface{ GetString(string) string }) string {
	return c.GetString(GinKey)
}
