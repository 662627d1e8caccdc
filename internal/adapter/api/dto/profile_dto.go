package dto

import "github.com/hugohenrick/billing-dashboard/internal/domain/profile"

// ProfileUpdateRequest representa uma atualização parcial do perfil da empresa
type ProfileUpdateRequest struct {
	Name        *string `json:"name"`
	Tagline     *string `json:"tagline"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
	TaxID       *string `json:"tax_id"`
	BankName    *string `json:"bank_name"`
	BankAccount *string `json:"bank_account"`
	BankRouting *string `json:"bank_routing"`
}

// ToPatch converte a requisição em um patch do domínio
func (r ProfileUpdateRequest) ToPatch() profile.Patch {
	return profile.Patch{
		Name:        r.Name,
		Tagline:     r.Tagline,
		Email:       r.Email,
		Phone:       r.Phone,
		Website:     r.Website,
		Address:     r.Address,
		TaxID:       r.TaxID,
		BankName:    r.BankName,
		BankAccount: r.BankAccount,
		BankRouting: r.BankRouting,
	}
}
