package repository

import (
	"context"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// LocationRepository puerto de ubicaciones de almacenamiento.
type LocationRepository interface {
	Create(ctx context.Context, loc *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
}
