package dto

import (
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
)

// ClientRequest representa a requisição de criação de cliente
type ClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
}

// ToFields converte a requisição nos campos do domínio
func (r ClientRequest) ToFields() client.Fields {
	return client.Fields{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Address: r.Address,
	}
}

// ClientUpdateRequest representa uma atualização parcial de cliente
type ClientUpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
}

// ToPatch converte a requisição em um patch do domínio
func (r ClientUpdateRequest) ToPatch() client.Patch {
	return client.Patch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Address: r.Address,
	}
}

// ClientResponse representa a resposta de cliente
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// FromClient converte uma entidade de cliente em resposta
func FromClient(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

// FromClients converte uma lista de clientes
func FromClients(clients []*client.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = FromClient(c)
	}
	return out
}
