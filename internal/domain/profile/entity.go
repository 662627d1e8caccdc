package profile

// BusinessProfile descreve a empresa emissora das faturas. Existe sempre uma única instância.
type BusinessProfile struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Address     string `json:"address"` // Pode conter quebras de linha
	TaxID       string `json:"tax_id"`
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
	BankRouting string `json:"bank_routing"`
}

// Patch descreve uma atualização parcial; campos nil não são alterados
type Patch struct {
	Name        *string
	Tagline     *string
	Email       *string
	Phone       *string
	Website     *string
	Address     *string
	TaxID       *string
	BankName    *string
	BankAccount *string
	BankRouting *string
}

// Default retorna o perfil usado antes da primeira atualização
func Default() BusinessProfile {
	return BusinessProfile{
		Name:        "FinanceHub",
		Tagline:     "Professional Financial Services",
		Email:       "billing@financehub.io",
		Phone:       "+1 (555) 100-2000",
		Website:     "www.financehub.io",
		Address:     "100 Finance Street, Suite 400\nNew York, NY 10005",
		TaxID:       "EIN 12-3456789",
		BankName:    "First National Bank",
		BankAccount: "****-****-****-4832",
		BankRouting: "021000021",
	}
}

// Apply retorna uma cópia do perfil com o patch aplicado
func (b BusinessProfile) Apply(p Patch) BusinessProfile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&b.Name, p.Name)
	set(&b.Tagline, p.Tagline)
	set(&b.Email, p.Email)
	set(&b.Phone, p.Phone)
	set(&b.Website, p.Website)
	set(&b.Address, p.Address)
	set(&b.TaxID, p.TaxID)
	set(&b.BankName, p.BankName)
	set(&b.BankAccount, p.BankAccount)
	set(&b.BankRouting, p.BankRouting)
	return b
}
