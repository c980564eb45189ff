package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderPart línea de costo de repuesto consumido contra una orden de trabajo.
// UnitCost es una foto del costo del repuesto al momento del consumo: si el
// catálogo cambia el precio después, esta línea no se recalcula.
type WorkOrderPart struct {
	ID            string
	WorkOrderID   string
	PartID        string
	TransactionID string // entrada del ledger que respaldó el consumo
	Quantity      int64
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal // UnitCost * Quantity
	CreatedByID   string
	CreatedAt     time.Time
}
