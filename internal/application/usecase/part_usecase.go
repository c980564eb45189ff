package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// PartUseCase CRUD mínimo del catálogo de repuestos. El ledger lo consume como
// referencia de solo lectura; este caso de uso existe como soporte del catálogo.
type PartUseCase struct {
	partRepo repository.PartRepository
}

// NewPartUseCase construye el caso de uso de repuestos.
func NewPartUseCase(partRepo repository.PartRepository) *PartUseCase {
	return &PartUseCase{partRepo: partRepo}
}

// CreatePartInput datos para dar de alta un repuesto.
type CreatePartInput struct {
	SKU          string
	Name         string
	Description  string
	ReorderPoint int64
	UnitCost     decimal.Decimal
}

// Create valida y persiste un repuesto nuevo (activo por defecto).
func (uc *PartUseCase) Create(ctx context.Context, in CreatePartInput) (*entity.Part, error) {
	if in.SKU == "" {
		return nil, &domain.InvalidInputError{Field: "sku", Reason: "requerido"}
	}
	if in.Name == "" {
		return nil, &domain.InvalidInputError{Field: "name", Reason: "requerido"}
	}
	if in.ReorderPoint < 0 {
		return nil, &domain.InvalidInputError{Field: "reorder_point", Reason: "no puede ser negativo"}
	}
	if in.UnitCost.IsNegative() {
		return nil, &domain.InvalidInputError{Field: "unit_cost", Reason: "no puede ser negativo"}
	}
	if existing, err := uc.partRepo.GetBySKU(ctx, in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	part := &entity.Part{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		ReorderPoint: in.ReorderPoint,
		UnitCost:     in.UnitCost,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// GetByID devuelve un repuesto o ErrNotFound.
func (uc *PartUseCase) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// List lista repuestos paginados.
func (uc *PartUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	return uc.partRepo.List(ctx, limit, offset)
}

// UpdatePartInput campos opcionales a modificar (nil = sin cambio).
type UpdatePartInput struct {
	Name         *string
	Description  *string
	ReorderPoint *int64
	UnitCost     *decimal.Decimal
	Active       *bool
}

// Update aplica cambios parciales sobre un repuesto existente.
func (uc *PartUseCase) Update(ctx context.Context, id string, in UpdatePartInput) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, &domain.InvalidInputError{Field: "name", Reason: "no puede ser vacío"}
		}
		part.Name = *in.Name
	}
	if in.Description != nil {
		part.Description = *in.Description
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, &domain.InvalidInputError{Field: "reorder_point", Reason: "no puede ser negativo"}
		}
		part.ReorderPoint = *in.ReorderPoint
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, &domain.InvalidInputError{Field: "unit_cost", Reason: "no puede ser negativo"}
		}
		part.UnitCost = *in.UnitCost
	}
	if in.Active != nil {
		part.Active = *in.Active
	}
	part.UpdatedAt = time.Now()
	if err := uc.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}
