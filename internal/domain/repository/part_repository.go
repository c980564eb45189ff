package repository

import (
	"context"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// PartRepository puerto del catálogo de repuestos. Para el ledger es referencia
// de solo lectura; el CRUD mínimo existe como soporte del catálogo.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Part, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
}
