package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// ReconciliationUseCase recalcula los saldos desde la suma con signo del ledger y
// los compara con la tabla materializada. Operación de mantenimiento: una corrida
// sin hallazgos demuestra que el invariante saldo == suma del ledger se sostiene.
type ReconciliationUseCase struct {
	levelRepo repository.InventoryLevelRepository
	txnRepo   repository.InventoryTransactionRepository
}

// NewReconciliationUseCase construye el caso de uso de reconciliación.
func NewReconciliationUseCase(
	levelRepo repository.InventoryLevelRepository,
	txnRepo repository.InventoryTransactionRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{levelRepo: levelRepo, txnRepo: txnRepo}
}

type pairKey struct {
	partID     string
	locationID string
}

// Reconcile devuelve un hallazgo por cada par cuyo saldo materializado difiere de la
// suma del ledger. Considera pares presentes en cualquiera de los dos lados: una fila
// de saldo sin respaldo en el ledger también es deriva.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context) ([]entity.ReconciliationFinding, error) {
	levels, err := uc.levelRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sums, err := uc.txnRepo.SumByPair(ctx)
	if err != nil {
		return nil, err
	}

	levelByPair := lo.SliceToMap(levels, func(l *entity.InventoryLevel) (pairKey, int64) {
		return pairKey{l.PartID, l.LocationID}, l.Quantity
	})
	ledgerByPair := lo.SliceToMap(sums, func(s repository.PairBalance) (pairKey, int64) {
		return pairKey{s.PartID, s.LocationID}, s.Quantity
	})

	keys := make(map[pairKey]struct{}, len(levelByPair)+len(ledgerByPair))
	for k := range levelByPair {
		keys[k] = struct{}{}
	}
	for k := range ledgerByPair {
		keys[k] = struct{}{}
	}

	now := time.Now()
	var findings []entity.ReconciliationFinding
	for k := range keys {
		levelQty := levelByPair[k]   // 0 si la fila no existe
		ledgerQty := ledgerByPair[k] // 0 si no hay entradas
		if levelQty == ledgerQty {
			continue
		}
		findings = append(findings, entity.ReconciliationFinding{
			PartID:         k.partID,
			LocationID:     k.locationID,
			LevelQuantity:  levelQty,
			LedgerQuantity: ledgerQty,
			Drift:          levelQty - ledgerQty,
			CheckedAt:      now,
		})
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].PartID != findings[j].PartID {
			return findings[i].PartID < findings[j].PartID
		}
		return findings[i].LocationID < findings[j].LocationID
	})
	return findings, nil
}
