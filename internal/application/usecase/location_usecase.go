package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// LocationUseCase CRUD mínimo de ubicaciones de almacenamiento.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso de ubicaciones.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create valida y persiste una ubicación nueva.
func (uc *LocationUseCase) Create(ctx context.Context, name string) (*entity.Location, error) {
	if name == "" {
		return nil, &domain.InvalidInputError{Field: "name", Reason: "requerido"}
	}
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// GetByID devuelve una ubicación o ErrNotFound.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	loc, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return loc, nil
}

// List lista ubicaciones paginadas.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	return uc.locationRepo.List(ctx, limit, offset)
}
