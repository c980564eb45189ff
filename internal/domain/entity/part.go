package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del catálogo de mantenimiento.
// Para el ledger es dato de referencia de solo lectura: el costo unitario
// y el punto de reorden se consultan, nunca se modifican desde aquí.
type Part struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	ReorderPoint int64
	UnitCost     decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
