package inventory

import (
	"context"

	"github.com/samber/lo"

	"github.com/jcastro/mantenix-api/internal/application/dto"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// ReorderMonitorUseCase consulta de solo lectura sobre los saldos cruzados con el
// catálogo: produce el conjunto "en o bajo punto de reorden". No muta estado;
// la entrega de alertas es trabajo de un colaborador externo.
type ReorderMonitorUseCase struct {
	levelRepo repository.InventoryLevelRepository
}

// NewReorderMonitorUseCase construye el monitor de reorden.
func NewReorderMonitorUseCase(levelRepo repository.InventoryLevelRepository) *ReorderMonitorUseCase {
	return &ReorderMonitorUseCase{levelRepo: levelRepo}
}

// ListLowStock devuelve los pares (repuesto, ubicación) con saldo en o bajo el punto
// de reorden del repuesto, excluyendo repuestos inactivos, ordenados por cantidad
// ascendente (los quiebres más severos primero).
func (uc *ReorderMonitorUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	rows, err := uc.levelRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r repository.LowStockRow, _ int) dto.LowStockItemDTO {
		return dto.LowStockItemDTO{
			PartID:       r.PartID,
			SKU:          r.SKU,
			PartName:     r.PartName,
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			Quantity:     r.Quantity,
			ReorderPoint: r.ReorderPoint,
			Severity:     severityFor(r.Quantity),
		}
	}), nil
}

// CountLowStock cuenta los pares en o bajo punto de reorden (repuestos activos).
func (uc *ReorderMonitorUseCase) CountLowStock(ctx context.Context) (int64, error) {
	return uc.levelRepo.CountLowStock(ctx)
}

// severityFor clasifica la severidad como dato: 0 es quiebre total, el resto es bajo.
func severityFor(quantity int64) string {
	if quantity == 0 {
		return dto.SeverityCritical
	}
	return dto.SeverityLow
}
