package entity

import "time"

// InventoryLevel representa la existencia actual de un repuesto en una ubicación.
// Clave natural compuesta (PartID, LocationID). Se crea al primer movimiento
// que toca el par y no se elimina nunca; la ausencia de fila equivale a cantidad 0.
// Quantity jamás puede ser negativa, ni siquiera a mitad de transacción.
type InventoryLevel struct {
	PartID     string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}
