package repository

import (
	"context"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// WorkOrderPartRepository puerto de líneas de costo de repuestos por orden de trabajo.
type WorkOrderPartRepository interface {
	Create(ctx context.Context, line *entity.WorkOrderPart) error
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]*entity.WorkOrderPart, error)
}
