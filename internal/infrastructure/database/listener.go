package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/billing-dashboard/internal/feed"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// ChangesChannel é o canal de NOTIFY usado pelos triggers do esquema
const ChangesChannel = "billing_changes"

// Listener repassa as notificações do PostgreSQL para um feed.Publisher
type Listener struct {
	pool      *pgxpool.Pool
	publisher feed.Publisher
	log       logger.Logger
	retry     time.Duration
}

// NewListener cria um listener sobre o pool informado
func NewListener(pool *pgxpool.Pool, publisher feed.Publisher, log logger.Logger) *Listener {
	return &Listener{pool: pool, publisher: publisher, log: log, retry: 5 * time.Second}
}

// Run escuta até o contexto ser cancelado. Se a conexão cair, reconecta após
// um intervalo; eventos emitidos nesse meio tempo são perdidos.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.log.Warn("conexão de LISTEN interrompida", "error", err, "retry_in", l.retry.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.retry):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("erro ao adquirir conexão: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangesChannel}.Sanitize()); err != nil {
		return fmt.Errorf("erro ao executar LISTEN: %w", err)
	}
	l.log.Info("escutando alterações", "channel", ChangesChannel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		event, err := ParseNotification(n.Payload)
		if err != nil {
			l.log.Warn("notificação ignorada", "error", err, "payload", n.Payload)
			continue
		}
		l.publisher.Publish(event)
	}
}

// ParseNotification converte o payload JSON do trigger em um feed.Event
func ParseNotification(payload string) (feed.Event, error) {
	var event feed.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return feed.Event{}, fmt.Errorf("payload inválido: %w", err)
	}
	if event.Collection == "" || event.Action == "" {
		return feed.Event{}, errors.New("payload sem coleção ou ação")
	}
	if event.OwnerID == "" {
		// Eventos sem owner seriam entregues a todos os inscritos
		return feed.Event{}, errors.New("payload sem owner")
	}
	return event, nil
}
