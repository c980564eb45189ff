package dto

import "time"

// Severidades de quiebre de stock.
const (
	SeverityCritical = "critical" // cantidad 0: quiebre total
	SeverityLow      = "low"      // 0 < cantidad <= punto de reorden
)

// ApplyTransactionRequest body para POST /api/inventory/transactions.
// quantity es siempre magnitud positiva; direction (-1|1) solo aplica a adjustment.
type ApplyTransactionRequest struct {
	PartID       string `json:"part_id"`
	LocationID   string `json:"location_id"`
	ToLocationID string `json:"to_location_id,omitempty"`
	Type         string `json:"type"`
	Quantity     int64  `json:"quantity"`
	Direction    int16  `json:"direction,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

// TransactionResponse una entrada del ledger serializada.
type TransactionResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	PartID       string    `json:"part_id"`
	LocationID   string    `json:"location_id"`
	ToLocationID *string   `json:"to_location_id,omitempty"`
	Quantity     int64     `json:"quantity"`
	Direction    int16     `json:"direction"`
	Reference    string    `json:"reference,omitempty"`
	WorkOrderID  *string   `json:"work_order_id,omitempty"`
	CreatedByID  string    `json:"created_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// BalanceResponse saldo actual de un par (repuesto, ubicación).
type BalanceResponse struct {
	PartID     string `json:"part_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
}

// LowStockItemDTO un par en o bajo punto de reorden, con severidad como dato
// para que un colaborador lo convierta en notificación.
type LowStockItemDTO struct {
	PartID       string `json:"part_id"`
	SKU          string `json:"sku"`
	PartName     string `json:"part_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
	ReorderPoint int64  `json:"reorder_point"`
	Severity     string `json:"severity"`
}

// ReconciliationFindingDTO deriva detectada entre saldo materializado y ledger.
type ReconciliationFindingDTO struct {
	PartID         string    `json:"part_id"`
	LocationID     string    `json:"location_id"`
	LevelQuantity  int64     `json:"level_quantity"`
	LedgerQuantity int64     `json:"ledger_quantity"`
	Drift          int64     `json:"drift"`
	CheckedAt      time.Time `json:"checked_at"`
}
