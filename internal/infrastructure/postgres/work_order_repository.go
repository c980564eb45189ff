package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación de órdenes de trabajo sobre PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create persiste una orden nueva.
func (r *WorkOrderRepo) Create(ctx context.Context, wo *entity.WorkOrder) error {
	query := `INSERT INTO work_orders (id, title, status, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, wo.ID, wo.Title, wo.Status, wo.CreatedAt); err != nil {
		return fmt.Errorf("create work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID, o nil si no existe.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT id, title, status, created_at FROM work_orders WHERE id = $1`
	var wo entity.WorkOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&wo.ID, &wo.Title, &wo.Status, &wo.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return &wo, nil
}
