package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos ante 40001/40P01 antes de rendirse con ErrConcurrencyConflict.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con reintento
// acotado ante fallas de serialización o deadlock. Cada intento corre sobre una
// transacción nueva; un intento fallido hace rollback y no deja rastro.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o
// Rollback. Los errores de dominio (validación, stock insuficiente) se devuelven
// sin reintentar; solo los conflictos transitorios de la BD reintentan.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
	woPartRepo repository.WorkOrderPartRepository,
) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
		if ctx.Err() != nil {
			// El caller canceló o expiró: la operación queda como no aplicada.
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
	woPartRepo repository.WorkOrderPartRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	levelRepo := NewInventoryLevelRepository(tx)
	txnRepo := NewInventoryTransactionRepository(tx)
	woPartRepo := NewWorkOrderPartRepository(tx)

	if err := fn(levelRepo, txnRepo, woPartRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
