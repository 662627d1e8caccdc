package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, name, email, phone, company, address, created_at`

// ClientRepository implementa a interface client.Repository
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository cria uma nova instância de ClientRepository
func NewClientRepository(db *pgxpool.Pool) client.Repository {
	return &ClientRepository{db: db}
}

// List implementa client.Repository.List
func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok {
		return []*client.Client{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+`
		FROM clients
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	clients := make([]*client.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar clientes: %w", err)
	}

	return clients, nil
}

// FindByID implementa client.Repository.FindByID
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok || !validID(id) {
		return nil, client.ErrNotFound
	}

	row := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = $1 AND id = $2`,
		ownerID, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return c, nil
}

// Create implementa client.Repository.Create
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO clients (id, owner_id, name, email, phone, company, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		c.ID, ownerID, c.Name, c.Email, c.Phone, c.Company, c.Address).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// Update implementa client.Repository.Update
func (r *ClientRepository) Update(ctx context.Context, id string, p client.Patch) (*client.Client, error) {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, client.ErrNotFound
	}

	var updated *client.Client
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanClient(tx.QueryRow(ctx,
			`SELECT `+clientColumns+` FROM clients WHERE owner_id = $1 AND id = $2 FOR UPDATE`,
			ownerID, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return client.ErrNotFound
			}
			return fmt.Errorf("erro ao buscar cliente: %w", err)
		}

		updated, err = current.Apply(p)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE clients SET name = $3, email = $4, phone = $5, company = $6, address = $7
			WHERE owner_id = $1 AND id = $2`,
			ownerID, id, updated.Name, updated.Email, updated.Phone, updated.Company, updated.Address)
		if err != nil {
			return fmt.Errorf("erro ao atualizar cliente: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete implementa client.Repository.Delete
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return err
	}
	if !validID(id) {
		return client.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrNotFound
	}

	return nil
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
