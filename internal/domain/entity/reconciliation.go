package entity

import "time"

// ReconciliationFinding discrepancia entre el saldo materializado (inventory_levels)
// y la suma con signo del ledger para un par (repuesto, ubicación).
// Una reconciliación sin hallazgos significa que el invariante se sostiene.
type ReconciliationFinding struct {
	PartID         string
	LocationID     string
	LevelQuantity  int64 // lo que dice inventory_levels (0 si la fila no existe)
	LedgerQuantity int64 // suma con signo de las entradas del ledger
	Drift          int64 // LevelQuantity - LedgerQuantity
	CheckedAt      time.Time
}
