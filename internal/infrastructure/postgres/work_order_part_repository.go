package postgres

import (
	"context"
	"fmt"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

var _ repository.WorkOrderPartRepository = (*WorkOrderPartRepo)(nil)

// WorkOrderPartRepo implementación de líneas de costo por orden sobre PostgreSQL.
type WorkOrderPartRepo struct {
	q Querier
}

// NewWorkOrderPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderPartRepository(q Querier) *WorkOrderPartRepo {
	return &WorkOrderPartRepo{q: q}
}

// Create persiste una línea de costo. Se invoca en la misma tx que el movimiento
// de inventario que la respalda.
func (r *WorkOrderPartRepo) Create(ctx context.Context, line *entity.WorkOrderPart) error {
	query := `
		INSERT INTO work_order_parts
			(id, work_order_id, part_id, transaction_id, quantity, unit_cost, total_cost, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.WorkOrderID, line.PartID, line.TransactionID,
		line.Quantity, line.UnitCost, line.TotalCost,
		line.CreatedByID, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create work order part: %w", err)
	}
	return nil
}

// ListByWorkOrder líneas de costo de una orden, más reciente primero.
func (r *WorkOrderPartRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*entity.WorkOrderPart, error) {
	query := `
		SELECT id, work_order_id, part_id, transaction_id, quantity, unit_cost, total_cost, created_by_id, created_at
		FROM work_order_parts WHERE work_order_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list work order parts: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkOrderPart
	for rows.Next() {
		var wp entity.WorkOrderPart
		if err := rows.Scan(
			&wp.ID, &wp.WorkOrderID, &wp.PartID, &wp.TransactionID,
			&wp.Quantity, &wp.UnitCost, &wp.TotalCost,
			&wp.CreatedByID, &wp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work order part: %w", err)
		}
		list = append(list, &wp)
	}
	return list, rows.Err()
}
