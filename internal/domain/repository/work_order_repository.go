package repository

import (
	"context"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// WorkOrderRepository puerto de órdenes de trabajo. El ledger solo necesita
// verificar existencia antes de consumir repuestos contra una orden.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
}
