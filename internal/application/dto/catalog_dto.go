package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	ReorderPoint int64           `json:"reorder_point"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// UpdatePartRequest body para PUT /api/parts/:id. Punteros = campos opcionales.
type UpdatePartRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	ReorderPoint *int64           `json:"reorder_point,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// PartDTO repuesto serializado.
type PartDTO struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	ReorderPoint int64           `json:"reorder_point"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name string `json:"name"`
}

// LocationDTO ubicación serializada.
type LocationDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
