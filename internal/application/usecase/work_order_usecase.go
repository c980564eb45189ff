package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// WorkOrderUseCase alta y consulta de órdenes de trabajo. La gestión completa
// de órdenes (programación, asignación) vive en otro subsistema; aquí solo lo
// mínimo para poder consumir repuestos contra una orden.
type WorkOrderUseCase struct {
	workOrderRepo repository.WorkOrderRepository
}

// NewWorkOrderUseCase construye el caso de uso de órdenes.
func NewWorkOrderUseCase(workOrderRepo repository.WorkOrderRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{workOrderRepo: workOrderRepo}
}

// Create persiste una orden nueva en estado open.
func (uc *WorkOrderUseCase) Create(ctx context.Context, title string) (*entity.WorkOrder, error) {
	if title == "" {
		return nil, &domain.InvalidInputError{Field: "title", Reason: "requerido"}
	}
	wo := &entity.WorkOrder{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    entity.WorkOrderStatusOpen,
		CreatedAt: time.Now(),
	}
	if err := uc.workOrderRepo.Create(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

// GetByID devuelve una orden o ErrNotFound.
func (uc *WorkOrderUseCase) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	wo, err := uc.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	return wo, nil
}
