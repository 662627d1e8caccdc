package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

// RecentLimit é o número de faturas exibidas em "Recent Invoices"
const RecentLimit = 5

// Snapshot reúne tudo o que o painel exibe
type Snapshot struct {
	Summary         Summary         `json:"summary"`
	RevenueByMonth  []MonthRevenue  `json:"revenue_by_month"`
	RevenueByStatus []StatusRevenue `json:"revenue_by_status"`
	RecentInvoices  []InvoiceRow    `json:"recent_invoices"`
	PaymentStats    PaymentStats    `json:"payment_stats"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Stale           bool            `json:"stale"` // true quando os dados vêm do último snapshot válido
}

// Service monta o snapshot do painel a partir dos repositórios
type Service struct {
	clients  client.Repository
	invoices invoice.Repository
	payments payment.Repository
	months   int
	log      logger.Logger
	now      func() time.Time

	mu   sync.Mutex
	last map[string]Snapshot
}

// NewService cria o serviço do painel. months é a janela do gráfico mensal.
func NewService(clients client.Repository, invoices invoice.Repository, payments payment.Repository, months int, log logger.Logger) *Service {
	if months <= 0 {
		months = 6
	}
	return &Service{
		clients:  clients,
		invoices: invoices,
		payments: payments,
		months:   months,
		log:      log,
		now:      time.Now,
		last:     make(map[string]Snapshot),
	}
}

// Snapshot lê as três coleções e calcula o painel. Se a leitura falhar,
// retorna o último snapshot válido do usuário marcado como Stale.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	key, _ := owner.FromContext(ctx)

	snap, err := s.build(ctx)
	if err != nil {
		s.mu.Lock()
		last, ok := s.last[key]
		s.mu.Unlock()

		if !ok {
			return Snapshot{}, err
		}
		s.log.Warn("Servindo último snapshot válido do painel", "owner_id", key, "error", err)
		last.Stale = true
		return last, nil
	}

	s.mu.Lock()
	s.last[key] = snap
	s.mu.Unlock()
	return snap, nil
}

func (s *Service) build(ctx context.Context) (Snapshot, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("erro ao listar faturas: %w", err)
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}

	now := s.now()
	return Snapshot{
		Summary:         Summarize(clients, invoices, payments),
		RevenueByMonth:  RevenueByMonth(invoices, now, s.months),
		RevenueByStatus: RevenueByStatus(invoices),
		RecentInvoices:  RecentInvoices(InvoiceRows(invoices, clients, payments, now), RecentLimit),
		PaymentStats:    Stats(payments, invoices, now),
		GeneratedAt:     now,
	}, nil
}
