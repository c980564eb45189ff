package entity

import "time"

// Estados de orden de trabajo relevantes para consumo de repuestos.
const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusComplete   = "complete"
)

// WorkOrder orden de trabajo de mantenimiento. El ledger solo necesita su
// existencia y acumular el costo de repuestos consumidos contra ella.
type WorkOrder struct {
	ID        string
	Title     string
	Status    string
	CreatedAt time.Time
}
