package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumePartRequest body para POST /api/work-orders/:id/parts.
type ConsumePartRequest struct {
	PartID     string `json:"part_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Reference  string `json:"reference,omitempty"`
}

// WorkOrderPartDTO línea de costo de repuesto consumido contra una orden.
type WorkOrderPartDTO struct {
	ID            string          `json:"id"`
	WorkOrderID   string          `json:"work_order_id"`
	PartID        string          `json:"part_id"`
	TransactionID string          `json:"transaction_id"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ConsumptionResponse respuesta del consumo: entrada del ledger + línea de costo.
type ConsumptionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	LineItem    WorkOrderPartDTO    `json:"line_item"`
}

// CreateWorkOrderRequest body para POST /api/work-orders.
type CreateWorkOrderRequest struct {
	Title string `json:"title"`
}

// WorkOrderDTO orden de trabajo serializada.
type WorkOrderDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
