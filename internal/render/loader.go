package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/billing-dashboard/internal/domain/billing"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
)

// Sources são os repositórios necessários para montar o documento
type Sources struct {
	Invoices invoice.Repository
	Clients  client.Repository
	Payments payment.Repository
	Profile  profile.Repository
}

// LoadInput carrega a fatura, o cliente, os pagamentos e o perfil da empresa.
// Cliente removido resulta em Client nil; fatura inexistente retorna invoice.ErrNotFound.
func LoadInput(ctx context.Context, src Sources, invoiceID string) (Input, error) {
	inv, err := src.Invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return Input{}, err
	}

	payments, err := src.Payments.FindByInvoice(ctx, inv.ID)
	if err != nil {
		return Input{}, fmt.Errorf("erro ao buscar pagamentos: %w", err)
	}

	found, err := src.Clients.FindByID(ctx, inv.ClientID)
	if errors.Is(err, client.ErrNotFound) {
		found, err = nil, nil
	}
	if err != nil {
		return Input{}, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	business, err := src.Profile.Get(ctx)
	if err != nil {
		return Input{}, fmt.Errorf("erro ao buscar perfil: %w", err)
	}

	return Input{
		Invoice: inv,
		Client:  found,
		Totals:  billing.Compute(inv, payments),
		Profile: business,
	}, nil
}
