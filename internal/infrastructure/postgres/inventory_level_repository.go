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

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de InventoryLevelRepository sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// Get obtiene el saldo del par, o nil si la fila no existe.
func (r *InventoryLevelRepo) Get(ctx context.Context, partID, locationID string) (*entity.InventoryLevel, error) {
	query := `
		SELECT part_id, location_id, quantity, updated_at
		FROM inventory_levels WHERE part_id = $1 AND location_id = $2`
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, partID, locationID).Scan(
		&l.PartID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return &l, nil
}

// CreateIfAbsent inserta la fila del par con cantidad 0 si no existe.
// Idempotente: dos llamadas concurrentes dejan exactamente una fila.
func (r *InventoryLevelRepo) CreateIfAbsent(ctx context.Context, partID, locationID string) error {
	query := `
		INSERT INTO inventory_levels (part_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (part_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, partID, locationID); err != nil {
		return fmt.Errorf("create inventory level: %w", err)
	}
	return nil
}

// GetForUpdate lee el saldo bloqueando la fila (SELECT ... FOR UPDATE).
// La fila bloqueada queda retenida hasta el Commit/Rollback de la tx en curso.
func (r *InventoryLevelRepo) GetForUpdate(ctx context.Context, partID, locationID string) (*entity.InventoryLevel, error) {
	query := `
		SELECT part_id, location_id, quantity, updated_at
		FROM inventory_levels WHERE part_id = $1 AND location_id = $2
		FOR UPDATE`
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, partID, locationID).Scan(
		&l.PartID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory level for update: %w", err)
	}
	return &l, nil
}

// SetQuantity escribe la nueva cantidad del par. El CHECK quantity >= 0 de la
// tabla es la última línea de defensa si algún caller se salta la verificación.
func (r *InventoryLevelRepo) SetQuantity(ctx context.Context, partID, locationID string, quantity int64) error {
	query := `
		UPDATE inventory_levels SET quantity = $3, updated_at = now()
		WHERE part_id = $1 AND location_id = $2`
	tag, err := r.q.Exec(ctx, query, partID, locationID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("set inventory level quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set inventory level quantity: fila (%s, %s) no existe", partID, locationID)
	}
	return nil
}

// ListByLocation lista saldos de una ubicación (paginado).
func (r *InventoryLevelRepo) ListByLocation(ctx context.Context, locationID string, limit, offset int) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT part_id, location_id, quantity, updated_at
		FROM inventory_levels WHERE location_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels by location: %w", err)
	}
	defer rows.Close()
	return scanLevels(rows)
}

// ListLowStock pares en o bajo punto de reorden, solo repuestos activos,
// ordenados por cantidad ascendente (quiebres totales primero).
func (r *InventoryLevelRepo) ListLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT il.part_id, p.sku, p.name, il.location_id, l.name, il.quantity, p.reorder_point
		FROM inventory_levels il
		JOIN parts p ON p.id = il.part_id
		JOIN locations l ON l.id = il.location_id
		WHERE p.active AND il.quantity <= p.reorder_point
		ORDER BY il.quantity ASC, p.sku ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockRow
	for rows.Next() {
		var item repository.LowStockRow
		if err := rows.Scan(
			&item.PartID, &item.SKU, &item.PartName,
			&item.LocationID, &item.LocationName,
			&item.Quantity, &item.ReorderPoint,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountLowStock cuenta los pares en o bajo punto de reorden (repuestos activos).
func (r *InventoryLevelRepo) CountLowStock(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM inventory_levels il
		JOIN parts p ON p.id = il.part_id
		WHERE p.active AND il.quantity <= p.reorder_point`
	var count int64
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

// ListAll devuelve todos los saldos materializados (para reconciliación).
func (r *InventoryLevelRepo) ListAll(ctx context.Context) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT part_id, location_id, quantity, updated_at
		FROM inventory_levels ORDER BY part_id, location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all inventory levels: %w", err)
	}
	defer rows.Close()
	return scanLevels(rows)
}

func scanLevels(rows pgx.Rows) ([]*entity.InventoryLevel, error) {
	var list []*entity.InventoryLevel
	for rows.Next() {
		var l entity.InventoryLevel
		if err := rows.Scan(&l.PartID, &l.LocationID, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
