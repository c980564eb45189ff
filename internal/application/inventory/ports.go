package inventory

import (
	"context"
	"time"

	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de inventario: o se confirman
// el saldo, la entrada del ledger y la línea de costo juntos, o no queda rastro.
// La implementación puede reintentar fn ante conflictos de serialización; por eso
// fn debe ser idempotente respecto al estado en memoria del caller.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.InventoryLevelRepository,
		txnRepo repository.InventoryTransactionRepository,
		woPartRepo repository.WorkOrderPartRepository,
	) error) error
}

// LedgerEvent describe una mutación del ledger ya confirmada. Un colaborador
// externo (alertas, notificaciones) decide qué hacer con ella.
type LedgerEvent struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	PartID        string    `json:"part_id"`
	LocationID    string    `json:"location_id"`
	ToLocationID  *string   `json:"to_location_id,omitempty"`
	Quantity      int64     `json:"quantity"`
	Direction     int16     `json:"direction"`
	WorkOrderID   *string   `json:"work_order_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher publica eventos de mutación del ledger después del commit.
// La publicación es best-effort: el ledger nunca depende de su disponibilidad.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, ev LedgerEvent) error
}

// NopPublisher descarta los eventos. Útil cuando no hay broker configurado.
type NopPublisher struct{}

func (NopPublisher) PublishLedgerEvent(context.Context, LedgerEvent) error { return nil }
