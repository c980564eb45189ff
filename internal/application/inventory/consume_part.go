package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// ConsumePartUseCase emite repuestos contra una orden de trabajo: ejecuta la salida
// de inventario y crea la línea de costo de la orden en la MISMA transacción.
// El costo unitario se congela al momento del consumo; si el catálogo cambia el
// precio después, la línea registrada no se mueve.
type ConsumePartUseCase struct {
	txRunner      TxRunner
	partRepo      repository.PartRepository
	locationRepo  repository.LocationRepository
	workOrderRepo repository.WorkOrderRepository
	events        EventPublisher
}

// NewConsumePartUseCase construye el caso de uso.
func NewConsumePartUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	locationRepo repository.LocationRepository,
	workOrderRepo repository.WorkOrderRepository,
	events EventPublisher,
) *ConsumePartUseCase {
	if events == nil {
		events = NopPublisher{}
	}
	return &ConsumePartUseCase{
		txRunner:      txRunner,
		partRepo:      partRepo,
		locationRepo:  locationRepo,
		workOrderRepo: workOrderRepo,
		events:        events,
	}
}

// ConsumeInput entrada para consumir un repuesto contra una orden de trabajo.
type ConsumeInput struct {
	WorkOrderID  string
	PartID       string
	LocationID   string
	Quantity     int64
	Reference    string
	ActingUserID string
}

// ConsumptionResult resultado del consumo: la entrada del ledger y la línea de costo.
type ConsumptionResult struct {
	Transaction *entity.InventoryTransaction
	LineItem    *entity.WorkOrderPart
}

// ConsumePartForWorkOrder valida, congela el costo unitario del repuesto y ejecuta
// la salida + línea de costo como unidad atómica. Si el stock no alcanza, no se
// escribe nada: ni entrada del ledger ni línea de costo.
func (uc *ConsumePartUseCase) ConsumePartForWorkOrder(ctx context.Context, input ConsumeInput) (*ConsumptionResult, error) {
	if input.WorkOrderID == "" {
		return nil, &domain.InvalidInputError{Field: "work_order_id", Reason: "requerido"}
	}
	if input.PartID == "" {
		return nil, &domain.InvalidInputError{Field: "part_id", Reason: "requerido"}
	}
	if input.LocationID == "" {
		return nil, &domain.InvalidInputError{Field: "location_id", Reason: "requerido"}
	}
	if input.ActingUserID == "" {
		return nil, &domain.InvalidInputError{Field: "acting_user_id", Reason: "requerido"}
	}
	if input.Quantity <= 0 {
		return nil, &domain.InvalidInputError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}

	part, err := uc.partRepo.GetByID(ctx, input.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if loc, err := uc.locationRepo.GetByID(ctx, input.LocationID); err != nil {
		return nil, err
	} else if loc == nil {
		return nil, domain.ErrNotFound
	}
	workOrder, err := uc.workOrderRepo.GetByID(ctx, input.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if workOrder == nil {
		return nil, domain.ErrNotFound
	}

	// Foto del costo al momento del consumo, no un join en vivo.
	unitCost := part.UnitCost

	movement := TransactionInput{
		PartID:       input.PartID,
		LocationID:   input.LocationID,
		Type:         entity.TransactionTypeOut,
		Quantity:     input.Quantity,
		Direction:    entity.DirectionIncrease,
		Reference:    input.Reference,
		ActingUserID: input.ActingUserID,
	}

	var result *ConsumptionResult
	err = uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		txnRepo repository.InventoryTransactionRepository,
		woPartRepo repository.WorkOrderPartRepository,
	) error {
		workOrderID := input.WorkOrderID
		txn, err := applyMovement(ctx, levelRepo, txnRepo, movement, &workOrderID)
		if err != nil {
			return err
		}
		line := &entity.WorkOrderPart{
			ID:            uuid.New().String(),
			WorkOrderID:   input.WorkOrderID,
			PartID:        input.PartID,
			TransactionID: txn.ID,
			Quantity:      input.Quantity,
			UnitCost:      unitCost,
			TotalCost:     unitCost.Mul(decimal.NewFromInt(input.Quantity)),
			CreatedByID:   input.ActingUserID,
			CreatedAt:     time.Now(),
		}
		if err := woPartRepo.Create(ctx, line); err != nil {
			return err
		}
		result = &ConsumptionResult{Transaction: txn, LineItem: line}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = uc.events.PublishLedgerEvent(ctx, eventFor(result.Transaction))
	return result, nil
}
