// Package feed distribui eventos de alteração dos registros para os
// clientes conectados ao stream /feed.
package feed

import (
	"sync"
)

// Collection identifica a coleção alterada
type Collection string

const (
	CollectionClients  Collection = "clients"
	CollectionInvoices Collection = "invoices"
	CollectionPayments Collection = "payments"
	CollectionProfile  Collection = "business_profiles"
)

// Action identifica o tipo de alteração
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event descreve uma alteração. OwnerID vazio significa que o evento vale para
// todos os inscritos (repositório em memória, sem usuários).
type Event struct {
	Collection Collection `json:"collection"`
	Action     Action     `json:"action"`
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id,omitempty"`
}

// Publisher publica eventos de alteração
type Publisher interface {
	Publish(e Event)
}

// NopPublisher descarta os eventos
type NopPublisher struct{}

// Publish não faz nada
func (NopPublisher) Publish(Event) {}

// BufferSize é o tamanho do buffer de cada inscrito
const BufferSize = 32

type subscriber struct {
	ownerID string
	ch      chan Event
}

// Hub mantém os inscritos por owner. Publish nunca bloqueia: inscritos lentos perdem eventos.
type Hub struct {
	mutex       sync.RWMutex
	subscribers map[*subscriber]struct{}
	dropped     func(Event)
}

// NewHub cria um novo hub
func NewHub() *Hub {
	return &Hub{subscribers: make(map[*subscriber]struct{})}
}

// OnDrop registra uma função chamada quando um evento é descartado
func (h *Hub) OnDrop(fn func(Event)) {
	h.mutex.Lock()
	h.dropped = fn
	h.mutex.Unlock()
}

// Subscribe inscreve um owner e retorna o canal de eventos e a função de cancelamento
func (h *Hub) Subscribe(ownerID string) (<-chan Event, func()) {
	sub := &subscriber{ownerID: ownerID, ch: make(chan Event, BufferSize)}

	h.mutex.Lock()
	h.subscribers[sub] = struct{}{}
	h.mutex.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mutex.Lock()
			delete(h.subscribers, sub)
			close(sub.ch)
			h.mutex.Unlock()
		})
	}
	return sub.ch, cancel
}

// Publish entrega o evento aos inscritos do mesmo owner
func (h *Hub) Publish(e Event) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for sub := range h.subscribers {
		if e.OwnerID != "" && sub.ownerID != e.OwnerID {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			if h.dropped != nil {
				h.dropped(e)
			}
		}
	}
}

// Count retorna o número de inscritos
func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.subscribers)
}
