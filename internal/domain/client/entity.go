package client

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName  = errors.New("nome do cliente não pode ser vazio")
	ErrEmptyEmail = errors.New("email do cliente não pode ser vazio")
	ErrNotFound   = errors.New("cliente não encontrado")
)

// Client representa um cliente faturável
type Client struct {
	ID        string    `json:"id"`         // ID do Cliente
	Name      string    `json:"name"`       // Nome do contato
	Email     string    `json:"email"`      // Email
	Phone     string    `json:"phone"`      // Telefone
	Company   string    `json:"company"`    // Empresa
	Address   string    `json:"address"`    // Endereço completo
	CreatedAt time.Time `json:"created_at"` // Data de Criação
}

// Fields contém os dados editáveis de um cliente
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
}

// Patch descreve uma atualização parcial; campos nil não são alterados
type Patch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Address *string
}

// NewClient cria um novo cliente validado, com ID e data de criação atribuídos
func NewClient(f Fields, now time.Time) (*Client, error) {
	c := &Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Phone:     f.Phone,
		Company:   f.Company,
		Address:   f.Address,
		CreatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate verifica os campos obrigatórios
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

// Apply retorna uma cópia do cliente com o patch aplicado. O original não é alterado.
func (c Client) Apply(p Patch) (*Client, error) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Matches verifica se o termo aparece no nome, email ou empresa
func (c *Client) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(c.Company), q)
}

// IsValidationError indica se o erro é de validação de dados
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyName) || errors.Is(err, ErrEmptyEmail)
}
