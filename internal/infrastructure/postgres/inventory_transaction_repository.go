package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación del ledger sobre PostgreSQL.
// Solo inserta y consulta: el ledger es append-only por construcción, no hay
// UPDATE ni DELETE en este adaptador.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create agrega una entrada al ledger.
func (r *InventoryTransactionRepo) Create(ctx context.Context, txn *entity.InventoryTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions
			(id, type, part_id, location_id, to_location_id, quantity, direction, reference, work_order_id, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	reference := (*string)(nil)
	if txn.Reference != "" {
		reference = &txn.Reference
	}
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.Type, txn.PartID, txn.LocationID, txn.ToLocationID,
		txn.Quantity, txn.Direction, reference, txn.WorkOrderID,
		txn.CreatedByID, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *InventoryTransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	query := selectTransaction + ` WHERE id = $1`
	row := r.q.QueryRow(ctx, query, id)
	txn, err := scanTransactionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return txn, nil
}

const selectTransaction = `
	SELECT id, type, part_id, location_id, to_location_id, quantity, direction, reference, work_order_id, created_by_id, created_at
	FROM inventory_transactions`

// List consulta de auditoría del ledger, más reciente primero.
func (r *InventoryTransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	query := selectTransaction + ` WHERE 1=1`
	var args []any
	pos := 1
	add := func(clause string, value any) {
		query += fmt.Sprintf(clause, pos)
		args = append(args, value)
		pos++
	}
	if filter.PartID != "" {
		add(" AND part_id = $%d", filter.PartID)
	}
	if filter.LocationID != "" {
		add(" AND (location_id = $%d OR to_location_id = $%[1]d)", filter.LocationID)
	}
	if filter.Type != "" {
		add(" AND type = $%d", filter.Type)
	}
	if filter.WorkOrderID != "" {
		add(" AND work_order_id = $%d", filter.WorkOrderID)
	}
	if filter.From != nil {
		add(" AND created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add(" AND created_at <= $%d", *filter.To)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, txn)
	}
	return list, rows.Err()
}

// SumByPair reconstruye los saldos por par desde el ledger. Un traslado aporta
// -cantidad en origen y +cantidad en destino; los ajustes aplican su dirección.
func (r *InventoryTransactionRepo) SumByPair(ctx context.Context) ([]repository.PairBalance, error) {
	query := `
		SELECT part_id, location_id, SUM(signed_qty)::bigint AS quantity
		FROM (
			SELECT part_id, location_id,
				CASE type
					WHEN 'in' THEN quantity
					WHEN 'out' THEN -quantity
					WHEN 'transfer' THEN -quantity
					WHEN 'adjustment' THEN direction * quantity
				END AS signed_qty
			FROM inventory_transactions
			UNION ALL
			SELECT part_id, to_location_id AS location_id, quantity AS signed_qty
			FROM inventory_transactions
			WHERE type = 'transfer'
		) effects
		GROUP BY part_id, location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum ledger by pair: %w", err)
	}
	defer rows.Close()

	var sums []repository.PairBalance
	for rows.Next() {
		var s repository.PairBalance
		if err := rows.Scan(&s.PartID, &s.LocationID, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan pair balance: %w", err)
		}
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

func scanTransactionRow(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	var reference *string
	err := row.Scan(
		&t.ID, &t.Type, &t.PartID, &t.LocationID, &t.ToLocationID,
		&t.Quantity, &t.Direction, &reference, &t.WorkOrderID,
		&t.CreatedByID, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reference != nil {
		t.Reference = *reference
	}
	return &t, nil
}
