package redisevents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/pkg/logger"
)

var _ inventory.EventPublisher = (*Publisher)(nil)

// Canal al que se publican las mutaciones del ledger. Un consumidor externo
// (alertas de stock bajo, notificaciones) se suscribe y decide qué entregar.
const ledgerChannel = "inventory.ledger"

// Publisher publica eventos de mutación del ledger vía Redis Pub/Sub.
// Best-effort: las fallas se registran y se descartan, el ledger ya confirmó.
type Publisher struct {
	client *redis.Client
	log    *logger.Logger
}

// NewPublisher construye el publicador sobre un cliente Redis ya configurado.
func NewPublisher(client *redis.Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// PublishLedgerEvent serializa y publica el evento. Nunca propaga fallas de Redis
// al caller: el movimiento de inventario ya quedó confirmado en la BD.
func (p *Publisher) PublishLedgerEvent(ctx context.Context, ev inventory.LedgerEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento del ledger: %w", err)
	}
	if err := p.client.Publish(ctx, ledgerChannel, payload).Err(); err != nil {
		p.log.Warn().
			Err(err).
			Str("transaction_id", ev.TransactionID).
			Msg("no se pudo publicar evento del ledger")
	}
	return nil
}
