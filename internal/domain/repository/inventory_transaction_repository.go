package repository

import (
	"context"
	"time"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// TransactionFilter filtros para el listado de auditoría del ledger.
// Todos los campos son opcionales; cero valor = sin filtro.
type TransactionFilter struct {
	PartID      string
	LocationID  string
	Type        string
	WorkOrderID string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// PairBalance suma con signo del ledger para un par (repuesto, ubicación).
type PairBalance struct {
	PartID     string
	LocationID string
	Quantity   int64
}

// InventoryTransactionRepository define el puerto de persistencia del ledger.
// Solo existe Create: el ledger es append-only, sin UPDATE ni DELETE.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, txn *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)

	// List consulta de auditoría, más reciente primero.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.InventoryTransaction, error)

	// SumByPair reconstruye los saldos por par desde el ledger: entradas suman,
	// salidas restan, un traslado resta en origen y suma en destino, los ajustes
	// aplican su dirección declarada. Base de la reconciliación.
	SumByPair(ctx context.Context) ([]PairBalance, error)
}
