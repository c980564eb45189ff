package repository

import (
	"context"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// LowStockRow resultado crudo del repositorio para un repuesto en o bajo su punto de reorden.
type LowStockRow struct {
	PartID       string
	SKU          string
	PartName     string
	LocationID   string
	LocationName string
	Quantity     int64
	ReorderPoint int64
}

// InventoryLevelRepository define el puerto para consultar/actualizar saldos por repuesto+ubicación.
// Las escrituras solo ocurren dentro de una transacción de BD (ver inventory.TxRunner).
type InventoryLevelRepository interface {
	// Get devuelve el saldo del par, o nil si la fila no existe (equivale a cantidad 0).
	Get(ctx context.Context, partID, locationID string) (*entity.InventoryLevel, error)

	// CreateIfAbsent inserta la fila del par con cantidad 0 si no existe todavía
	// (INSERT ... ON CONFLICT DO NOTHING). Garantiza que GetForUpdate siempre
	// tenga una fila real que bloquear.
	CreateIfAbsent(ctx context.Context, partID, locationID string) error

	// GetForUpdate lee el saldo bloqueando la fila (SELECT ... FOR UPDATE).
	// Devuelve nil si la fila no existe; en ese caso no se adquiere ningún bloqueo.
	GetForUpdate(ctx context.Context, partID, locationID string) (*entity.InventoryLevel, error)

	// SetQuantity escribe la nueva cantidad del par. La fila debe existir.
	SetQuantity(ctx context.Context, partID, locationID string, quantity int64) error

	// ListByLocation lista saldos de una ubicación (paginado).
	ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.InventoryLevel, error)

	// ListLowStock devuelve los pares cuyo saldo está en o bajo el punto de reorden
	// del repuesto, excluyendo repuestos inactivos, ordenados por cantidad ascendente.
	ListLowStock(ctx context.Context) ([]LowStockRow, error)

	// CountLowStock cuenta los pares en o bajo punto de reorden (repuestos activos).
	CountLowStock(ctx context.Context) (int64, error)

	// ListAll devuelve todos los saldos materializados (para reconciliación).
	ListAll(ctx context.Context) ([]*entity.InventoryLevel, error)
}
