package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del catálogo de repuestos sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const selectPart = `
	SELECT id, sku, name, description, reorder_point, unit_cost, active, created_at, updated_at
	FROM parts`

// Create persiste un repuesto nuevo.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	query := `
		INSERT INTO parts (id, sku, name, description, reorder_point, unit_cost, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		part.ID, part.SKU, part.Name, part.Description,
		part.ReorderPoint, part.UnitCost, part.Active,
		part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID, o nil si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	row := r.q.QueryRow(ctx, selectPart+` WHERE id = $1`, id)
	part, err := scanPartRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return part, nil
}

// GetBySKU obtiene un repuesto por SKU, o nil si no existe.
func (r *PartRepo) GetBySKU(ctx context.Context, sku string) (*entity.Part, error) {
	row := r.q.QueryRow(ctx, selectPart+` WHERE sku = $1`, sku)
	part, err := scanPartRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by sku: %w", err)
	}
	return part, nil
}

// List lista repuestos paginados por SKU.
func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	query := selectPart + ` ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Part
	for rows.Next() {
		part, err := scanPartRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, part)
	}
	return list, rows.Err()
}

// Update sobrescribe los campos mutables de un repuesto.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	query := `
		UPDATE parts
		SET name = $2, description = $3, reorder_point = $4, unit_cost = $5, active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		part.ID, part.Name, part.Description,
		part.ReorderPoint, part.UnitCost, part.Active, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPartRow(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	var description *string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &description,
		&p.ReorderPoint, &p.UnitCost, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		p.Description = *description
	}
	return &p, nil
}
