package inventory

import (
	"context"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// QueryUseCase lecturas del ledger, saldos y líneas de consumo, sin bloqueo más
// allá de la consistencia normal de lectura.
type QueryUseCase struct {
	levelRepo     repository.InventoryLevelRepository
	txnRepo       repository.InventoryTransactionRepository
	woPartRepo    repository.WorkOrderPartRepository
	workOrderRepo repository.WorkOrderRepository
	locationRepo  repository.LocationRepository
}

// NewQueryUseCase construye las consultas de inventario.
func NewQueryUseCase(
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
	woPartRepo repository.WorkOrderPartRepository,
	workOrderRepo repository.WorkOrderRepository,
	locationRepo repository.LocationRepository,
) *QueryUseCase {
	return &QueryUseCase{
		levelRepo:     levelRepo,
		txnRepo:       txnRepo,
		woPartRepo:    woPartRepo,
		workOrderRepo: workOrderRepo,
		locationRepo:  locationRepo,
	}
}

// GetBalance devuelve el saldo actual del par; la ausencia de fila equivale a 0.
func (uc *QueryUseCase) GetBalance(ctx context.Context, partID, locationID string) (int64, error) {
	if partID == "" {
		return 0, &domain.InvalidInputError{Field: "part_id", Reason: "requerido"}
	}
	if locationID == "" {
		return 0, &domain.InvalidInputError{Field: "location_id", Reason: "requerido"}
	}
	level, err := uc.levelRepo.Get(ctx, partID, locationID)
	if err != nil {
		return 0, err
	}
	if level == nil {
		return 0, nil
	}
	return level.Quantity, nil
}

// GetTransaction devuelve una entrada del ledger por ID, o ErrNotFound.
func (uc *QueryUseCase) GetTransaction(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	if id == "" {
		return nil, &domain.InvalidInputError{Field: "id", Reason: "requerido"}
	}
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return txn, nil
}

// ListLocationLevels lista los saldos de una ubicación existente (paginado).
func (uc *QueryUseCase) ListLocationLevels(ctx context.Context, locationID string, limit, offset int) ([]*entity.InventoryLevel, error) {
	if locationID == "" {
		return nil, &domain.InvalidInputError{Field: "location_id", Reason: "requerido"}
	}
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return uc.levelRepo.ListByLocation(ctx, locationID, limit, offset)
}

// ListTransactions consulta de auditoría sobre el ledger, más reciente primero.
func (uc *QueryUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.txnRepo.List(ctx, filter)
}

// ListWorkOrderParts devuelve las líneas de costo de una orden de trabajo,
// para el rollup de costos de la orden.
func (uc *QueryUseCase) ListWorkOrderParts(ctx context.Context, workOrderID string) ([]*entity.WorkOrderPart, error) {
	if workOrderID == "" {
		return nil, &domain.InvalidInputError{Field: "work_order_id", Reason: "requerido"}
	}
	wo, err := uc.workOrderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	return uc.woPartRepo.ListByWorkOrder(ctx, workOrderID)
}
