package entity

import "time"

// Location representa una ubicación física de almacenamiento (bodega, estante, taller).
// Dato de referencia de solo lectura para el ledger.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
