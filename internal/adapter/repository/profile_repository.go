package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `name, tagline, email, phone, website, address, tax_id, bank_name, bank_account, bank_routing`

// ProfileRepository implementa a interface profile.Repository.
// Owners sem registro recebem o perfil padrão.
type ProfileRepository struct {
	db profileDB
}

// profileDB é o subconjunto de *pgxpool.Pool usado pelo repositório
type profileDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewProfileRepository cria uma nova instância de ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) profile.Repository {
	return &ProfileRepository{db: db}
}

// Get implementa profile.Repository.Get
func (r *ProfileRepository) Get(ctx context.Context) (profile.BusinessProfile, error) {
	ownerID, ok := owner.FromContext(ctx)
	if !ok {
		return profile.Default(), nil
	}

	b, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM business_profiles WHERE owner_id = $1`, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Default(), nil
		}
		return profile.BusinessProfile{}, fmt.Errorf("erro ao buscar perfil: %w", err)
	}

	return b, nil
}

// Update implementa profile.Repository.Update
func (r *ProfileRepository) Update(ctx context.Context, p profile.Patch) (profile.BusinessProfile, error) {
	ownerID, err := owner.Require(ctx)
	if err != nil {
		return profile.BusinessProfile{}, err
	}

	var updated profile.BusinessProfile
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// Garante a linha antes do lock: sem ela o FOR UPDATE não bloqueia
		// a primeira atualização concorrente.
		def := profile.Default()
		_, err := tx.Exec(ctx,
			`INSERT INTO business_profiles (owner_id, `+profileColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (owner_id) DO NOTHING`,
			ownerID, def.Name, def.Tagline, def.Email, def.Phone, def.Website,
			def.Address, def.TaxID, def.BankName, def.BankAccount, def.BankRouting)
		if err != nil {
			return fmt.Errorf("erro ao criar perfil: %w", err)
		}

		current, err := scanProfile(tx.QueryRow(ctx,
			`SELECT `+profileColumns+` FROM business_profiles WHERE owner_id = $1 FOR UPDATE`, ownerID))
		if err != nil {
			return fmt.Errorf("erro ao buscar perfil: %w", err)
		}

		updated = current.Apply(p)
		_, err = tx.Exec(ctx,
			`UPDATE business_profiles SET
				name = $2, tagline = $3, email = $4, phone = $5, website = $6, address = $7,
				tax_id = $8, bank_name = $9, bank_account = $10, bank_routing = $11,
				updated_at = NOW()
			WHERE owner_id = $1`,
			ownerID, updated.Name, updated.Tagline, updated.Email, updated.Phone, updated.Website,
			updated.Address, updated.TaxID, updated.BankName, updated.BankAccount, updated.BankRouting)
		if err != nil {
			return fmt.Errorf("erro ao salvar perfil: %w", err)
		}
		return nil
	})
	if err != nil {
		return profile.BusinessProfile{}, err
	}

	return updated, nil
}

func scanProfile(row pgx.Row) (profile.BusinessProfile, error) {
	var b profile.BusinessProfile
	err := row.Scan(&b.Name, &b.Tagline, &b.Email, &b.Phone, &b.Website, &b.Address,
		&b.TaxID, &b.BankName, &b.BankAccount, &b.BankRouting)
	return b, err
}
