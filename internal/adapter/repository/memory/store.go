// Package memory implementa os repositórios em memória, usados em testes,
// na demonstração (STORE_DRIVER=memory) e no CLI.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/billing-dashboard/internal/domain/client"
	"github.com/hugohenrick/billing-dashboard/internal/domain/invoice"
	"github.com/hugohenrick/billing-dashboard/internal/domain/payment"
	"github.com/hugohenrick/billing-dashboard/internal/domain/profile"
	"github.com/hugohenrick/billing-dashboard/internal/feed"
)

// Store guarda as coleções em memória. As listas ficam da mais recente para a
// mais antiga (inserção no início). Leituras retornam cópias.
type Store struct {
	mu       sync.RWMutex
	clients  []*client.Client
	invoices []*invoice.Invoice
	payments []*payment.Payment
	profile  profile.BusinessProfile
	counter  int64 // próximo número de fatura

	publisher feed.Publisher
	now       func() time.Time
}

// Option configura o Store
type Option func(*Store)

// WithPublisher define onde os eventos de alteração são publicados
func WithPublisher(p feed.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithClock define a função usada para as datas de criação
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore cria um Store vazio com o perfil padrão
func NewStore(opts ...Option) *Store {
	s := &Store{
		profile:   profile.Default(),
		counter:   1,
		publisher: feed.NopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clients retorna o repositório de clientes
func (s *Store) Clients() client.Repository { return &ClientRepository{store: s} }

// Invoices retorna o repositório de faturas
func (s *Store) Invoices() invoice.Repository { return &InvoiceRepository{store: s} }

// Payments retorna o repositório de pagamentos
func (s *Store) Payments() payment.Repository { return &PaymentRepository{store: s} }

// Profile retorna o repositório do perfil da empresa
func (s *Store) Profile() profile.Repository { return &ProfileRepository{store: s} }

func (s *Store) publish(collection feed.Collection, action feed.Action, id string) {
	s.publisher.Publish(feed.Event{Collection: collection, Action: action, ID: id})
}

// ClientRepository implementa client.Repository em memória
type ClientRepository struct {
	store *Store
}

// List lista os clientes, do mais recente para o mais antigo
func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*client.Client, len(r.store.clients))
	for i, c := range r.store.clients {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

// FindByID busca um cliente pelo ID
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, client.ErrNotFound
	}
	cp := *r.store.clients[i]
	return &cp, nil
}

// Create adiciona um cliente, atribuindo ID (se ausente) e data de criação
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = r.store.now()
	cp := *c
	r.store.clients = append([]*client.Client{&cp}, r.store.clients...)
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionClients, feed.ActionCreated, c.ID)
	return nil
}

// Update aplica uma atualização parcial
func (r *ClientRepository) Update(ctx context.Context, id string, p client.Patch) (*client.Client, error) {
	r.store.mu.Lock()
	i := r.index(id)
	if i < 0 {
		r.store.mu.Unlock()
		return nil, client.ErrNotFound
	}
	updated, err := r.store.clients[i].Apply(p)
	if err != nil {
		r.store.mu.Unlock()
		return nil, err
	}
	r.store.clients[i] = updated
	cp := *updated
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionClients, feed.ActionUpdated, id)
	return &cp, nil
}

// Delete remove um cliente. Faturas do cliente não são alteradas.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	i := r.index(id)
	if i < 0 {
		r.store.mu.Unlock()
		return client.ErrNotFound
	}
	r.store.clients = append(r.store.clients[:i:i], r.store.clients[i+1:]...)
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionClients, feed.ActionDeleted, id)
	return nil
}

func (r *ClientRepository) index(id string) int {
	for i, c := range r.store.clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// InvoiceRepository implementa invoice.Repository em memória
type InvoiceRepository struct {
	store *Store
}

// List lista as faturas, da mais recente para a mais antiga
func (r *InvoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*invoice.Invoice, len(r.store.invoices))
	for i, inv := range r.store.invoices {
		out[i] = inv.Clone()
	}
	return out, nil
}

// FindByID busca uma fatura pelo ID
func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, invoice.ErrNotFound
	}
	return r.store.invoices[i].Clone(), nil
}

// Create adiciona uma fatura com o próximo número da sequência.
// O contador nunca é reutilizado nem decrementado.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	inv.EnsureItemIDs()
	if err := inv.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	inv.Number = invoice.FormatNumber(r.store.counter)
	r.store.counter++
	inv.CreatedAt = r.store.now()
	r.store.invoices = append([]*invoice.Invoice{inv.Clone()}, r.store.invoices...)
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionInvoices, feed.ActionCreated, inv.ID)
	return nil
}

// Update aplica uma atualização parcial. ID e número não mudam.
func (r *InvoiceRepository) Update(ctx context.Context, id string, p invoice.Patch) (*invoice.Invoice, error) {
	r.store.mu.Lock()
	i := r.index(id)
	if i < 0 {
		r.store.mu.Unlock()
		return nil, invoice.ErrNotFound
	}
	updated, err := r.store.invoices[i].Apply(p)
	if err != nil {
		r.store.mu.Unlock()
		return nil, err
	}
	r.store.invoices[i] = updated
	out := updated.Clone()
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionInvoices, feed.ActionUpdated, id)
	return out, nil
}

// Delete remove uma fatura. Pagamentos da fatura permanecem.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	i := r.index(id)
	if i < 0 {
		r.store.mu.Unlock()
		return invoice.ErrNotFound
	}
	r.store.invoices = append(r.store.invoices[:i:i], r.store.invoices[i+1:]...)
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionInvoices, feed.ActionDeleted, id)
	return nil
}

func (r *InvoiceRepository) index(id string) int {
	for i, inv := range r.store.invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}

// PaymentRepository implementa payment.Repository em memória
type PaymentRepository struct {
	store *Store
}

// List lista os pagamentos, do mais recente para o mais antigo
func (r *PaymentRepository) List(ctx context.Context) ([]*payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*payment.Payment, len(r.store.payments))
	for i, p := range r.store.payments {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

// FindByID busca um pagamento pelo ID
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

// FindByInvoice lista os pagamentos de uma fatura
func (r *PaymentRepository) FindByInvoice(ctx context.Context, invoiceID string) ([]*payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*payment.Payment, 0)
	for _, p := range r.store.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Create registra um pagamento
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = r.store.now()
	cp := *p
	r.store.payments = append([]*payment.Payment{&cp}, r.store.payments...)
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionPayments, feed.ActionCreated, p.ID)
	return nil
}

// ProfileRepository implementa profile.Repository em memória
type ProfileRepository struct {
	store *Store
}

// Get retorna o perfil atual
func (r *ProfileRepository) Get(ctx context.Context) (profile.BusinessProfile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.profile, nil
}

// Update aplica uma atualização parcial ao perfil
func (r *ProfileRepository) Update(ctx context.Context, p profile.Patch) (profile.BusinessProfile, error) {
	r.store.mu.Lock()
	r.store.profile = r.store.profile.Apply(p)
	out := r.store.profile
	r.store.mu.Unlock()

	r.store.publish(feed.CollectionProfile, feed.ActionUpdated, "")
	return out, nil
}
