package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// ApplyTransactionUseCase registra movimientos de inventario de forma transaccional
// (in, out, transfer, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Todos los tipos son variaciones del mismo primitivo: leer saldo bloqueado, calcular
// nuevo saldo, verificar >= 0, escribir saldo y agregar UNA entrada al ledger.
type ApplyTransactionUseCase struct {
	txRunner     TxRunner
	partRepo     repository.PartRepository
	locationRepo repository.LocationRepository
	events       EventPublisher
}

// NewApplyTransactionUseCase construye el caso de uso.
func NewApplyTransactionUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	locationRepo repository.LocationRepository,
	events EventPublisher,
) *ApplyTransactionUseCase {
	if events == nil {
		events = NopPublisher{}
	}
	return &ApplyTransactionUseCase{
		txRunner:     txRunner,
		partRepo:     partRepo,
		locationRepo: locationRepo,
		events:       events,
	}
}

// TransactionInput entrada para aplicar un movimiento.
// Quantity es siempre una magnitud positiva. Direction solo aplica a adjustment
// (+1 suma, -1 resta); en los demás tipos se ignora. ToLocationID es obligatorio
// en transfer y está prohibido en el resto.
type TransactionInput struct {
	PartID       string
	LocationID   string
	ToLocationID string
	Type         string
	Quantity     int64
	Direction    int16
	Reference    string
	ActingUserID string
}

// ApplyTransaction valida la entrada, verifica referencias y aplica el movimiento
// dentro de una transacción de BD. Devuelve la entrada del ledger creada.
func (uc *ApplyTransactionUseCase) ApplyTransaction(ctx context.Context, input TransactionInput) (*entity.InventoryTransaction, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	// Referencias: repuesto y ubicación(es) deben existir antes de tocar nada.
	if part, err := uc.partRepo.GetByID(ctx, input.PartID); err != nil {
		return nil, err
	} else if part == nil {
		return nil, domain.ErrNotFound
	}
	if loc, err := uc.locationRepo.GetByID(ctx, input.LocationID); err != nil {
		return nil, err
	} else if loc == nil {
		return nil, domain.ErrNotFound
	}
	if input.Type == entity.TransactionTypeTransfer {
		if loc, err := uc.locationRepo.GetByID(ctx, input.ToLocationID); err != nil {
			return nil, err
		} else if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	var created *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		txnRepo repository.InventoryTransactionRepository,
		_ repository.WorkOrderPartRepository,
	) error {
		txn, err := applyMovement(ctx, levelRepo, txnRepo, input, nil)
		if err != nil {
			return err
		}
		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best-effort: el ledger ya quedó escrito pase lo que pase aquí.
	_ = uc.events.PublishLedgerEvent(ctx, eventFor(created))
	return created, nil
}

func validateInput(input *TransactionInput) error {
	if input.PartID == "" {
		return &domain.InvalidInputError{Field: "part_id", Reason: "requerido"}
	}
	if input.LocationID == "" {
		return &domain.InvalidInputError{Field: "location_id", Reason: "requerido"}
	}
	if input.ActingUserID == "" {
		return &domain.InvalidInputError{Field: "acting_user_id", Reason: "requerido"}
	}
	if input.Quantity <= 0 {
		return &domain.InvalidInputError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}

	switch input.Type {
	case entity.TransactionTypeIn, entity.TransactionTypeOut:
		if input.ToLocationID != "" {
			return &domain.InvalidInputError{Field: "to_location_id", Reason: "solo permitido en transfer"}
		}
		input.Direction = entity.DirectionIncrease
	case entity.TransactionTypeAdjustment:
		if input.ToLocationID != "" {
			return &domain.InvalidInputError{Field: "to_location_id", Reason: "solo permitido en transfer"}
		}
		if input.Direction == 0 {
			input.Direction = entity.DirectionIncrease
		}
		if input.Direction != entity.DirectionIncrease && input.Direction != entity.DirectionDecrease {
			return &domain.InvalidInputError{Field: "direction", Reason: "debe ser 1 o -1"}
		}
	case entity.TransactionTypeTransfer:
		if input.ToLocationID == "" {
			return &domain.InvalidInputError{Field: "to_location_id", Reason: "requerido para transfer"}
		}
		if input.ToLocationID == input.LocationID {
			return &domain.InvalidInputError{Field: "to_location_id", Reason: "origen y destino no pueden ser iguales"}
		}
		input.Direction = entity.DirectionIncrease
	default:
		return &domain.InvalidInputError{Field: "type", Reason: "debe ser in, out, transfer o adjustment"}
	}
	return nil
}

// applyMovement ejecuta el primitivo leer-verificar-escribir-agregar para un movimiento,
// usando los repositorios atados a la transacción en curso. workOrderID se propaga a la
// entrada del ledger cuando el movimiento es un consumo contra una orden de trabajo.
func applyMovement(
	ctx context.Context,
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
	input TransactionInput,
	workOrderID *string,
) (*entity.InventoryTransaction, error) {
	switch input.Type {
	case entity.TransactionTypeTransfer:
		if err := doTransfer(ctx, levelRepo, input); err != nil {
			return nil, err
		}
	default:
		delta := input.Quantity
		if input.Type == entity.TransactionTypeOut ||
			(input.Type == entity.TransactionTypeAdjustment && input.Direction == entity.DirectionDecrease) {
			delta = -input.Quantity
		}
		if err := applyDelta(ctx, levelRepo, input.PartID, input.LocationID, delta); err != nil {
			return nil, err
		}
	}

	txn := &entity.InventoryTransaction{
		ID:          uuid.New().String(),
		Type:        input.Type,
		PartID:      input.PartID,
		LocationID:  input.LocationID,
		Quantity:    input.Quantity,
		Direction:   input.Direction,
		Reference:   input.Reference,
		WorkOrderID: workOrderID,
		CreatedByID: input.ActingUserID,
		CreatedAt:   time.Now(),
	}
	if input.Type == entity.TransactionTypeTransfer {
		to := input.ToLocationID
		txn.ToLocationID = &to
	}
	if err := txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// applyDelta suma o resta sobre el saldo del par con la fila bloqueada.
// Un delta negativo que dejaría el saldo bajo cero se rechaza sin escribir nada.
func applyDelta(
	ctx context.Context,
	levelRepo repository.InventoryLevelRepository,
	partID, locationID string,
	delta int64,
) error {
	if delta > 0 {
		// Creación perezosa: asegura la fila para que FOR UPDATE tenga qué bloquear.
		if err := levelRepo.CreateIfAbsent(ctx, partID, locationID); err != nil {
			return err
		}
	}
	level, err := levelRepo.GetForUpdate(ctx, partID, locationID)
	if err != nil {
		return err
	}
	var current int64
	if level != nil {
		current = level.Quantity
	}
	next := current + delta
	if next < 0 {
		return &domain.InsufficientStockError{
			PartID:     partID,
			LocationID: locationID,
			Current:    current,
			Requested:  -delta,
		}
	}
	return levelRepo.SetQuantity(ctx, partID, locationID, next)
}

// doTransfer mueve stock entre dos ubicaciones como unidad atómica.
// Bloquea ambas filas en orden determinista (menor LocationID primero) para que
// dos traslados opuestos entre las mismas ubicaciones no se interbloqueen.
func doTransfer(
	ctx context.Context,
	levelRepo repository.InventoryLevelRepository,
	input TransactionInput,
) error {
	// Ambas filas deben existir para poder bloquearlas; si el traslado se
	// rechaza, el rollback de la tx también deshace estas creaciones.
	if err := levelRepo.CreateIfAbsent(ctx, input.PartID, input.LocationID); err != nil {
		return err
	}
	if err := levelRepo.CreateIfAbsent(ctx, input.PartID, input.ToLocationID); err != nil {
		return err
	}

	first, second := input.LocationID, input.ToLocationID
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*entity.InventoryLevel, 2)
	for _, locID := range []string{first, second} {
		level, err := levelRepo.GetForUpdate(ctx, input.PartID, locID)
		if err != nil {
			return err
		}
		if level == nil {
			level = &entity.InventoryLevel{PartID: input.PartID, LocationID: locID}
		}
		locked[locID] = level
	}

	source := locked[input.LocationID]
	if source.Quantity < input.Quantity {
		return &domain.InsufficientStockError{
			PartID:     input.PartID,
			LocationID: input.LocationID,
			Current:    source.Quantity,
			Requested:  input.Quantity,
		}
	}
	dest := locked[input.ToLocationID]
	if err := levelRepo.SetQuantity(ctx, input.PartID, input.LocationID, source.Quantity-input.Quantity); err != nil {
		return err
	}
	return levelRepo.SetQuantity(ctx, input.PartID, input.ToLocationID, dest.Quantity+input.Quantity)
}

func eventFor(txn *entity.InventoryTransaction) LedgerEvent {
	return LedgerEvent{
		TransactionID: txn.ID,
		Type:          txn.Type,
		PartID:        txn.PartID,
		LocationID:    txn.LocationID,
		ToLocationID:  txn.ToLocationID,
		Quantity:      txn.Quantity,
		Direction:     txn.Direction,
		WorkOrderID:   txn.WorkOrderID,
		OccurredAt:    txn.CreatedAt,
	}
}
