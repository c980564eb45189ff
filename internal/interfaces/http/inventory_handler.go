package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/jcastro/mantenix-api/internal/application/dto"
	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario (protegido).
type InventoryHandler struct {
	apply     *inventory.ApplyTransactionUseCase
	queries   *inventory.QueryUseCase
	reorder   *inventory.ReorderMonitorUseCase
	reconcile *inventory.ReconciliationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	apply *inventory.ApplyTransactionUseCase,
	queries *inventory.QueryUseCase,
	reorder *inventory.ReorderMonitorUseCase,
	reconcile *inventory.ReconciliationUseCase,
) *InventoryHandler {
	return &InventoryHandler{apply: apply, queries: queries, reorder: reorder, reconcile: reconcile}
}

// ApplyTransaction godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyTransactionRequest  true  "part_id, location_id, type, quantity; to_location_id solo en transfer; direction solo en adjustment"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) ApplyTransaction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txn, err := h.apply.ApplyTransaction(c.Context(), inventory.TransactionInput{
		PartID:       in.PartID,
		LocationID:   in.LocationID,
		ToLocationID: in.ToLocationID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		Direction:    in.Direction,
		Reference:    in.Reference,
		ActingUserID: userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(txn))
}

// GetTransaction godoc
// @Summary      Consultar una entrada del ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions/{id} [get]
func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	txn, err := h.queries.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(txn))
}

// ListLocationLevels godoc
// @Summary      Saldos de una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        limit   query  int     false  "Máximo de filas (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/levels [get]
func (h *InventoryHandler) ListLocationLevels(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	levels, err := h.queries.ListLocationLevels(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(levels),
		"levels": lo.Map(levels, func(l *entity.InventoryLevel, _ int) dto.BalanceResponse {
			return dto.BalanceResponse{PartID: l.PartID, LocationID: l.LocationID, Quantity: l.Quantity}
		}),
	})
}

// GetBalance godoc
// @Summary      Saldo actual de un par (repuesto, ubicación)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        part_id      query  string  true  "ID del repuesto"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balance [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	partID := c.Query("part_id")
	locationID := c.Query("location_id")
	quantity, err := h.queries.GetBalance(c.Context(), partID, locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{PartID: partID, LocationID: locationID, Quantity: quantity})
}

// ListTransactions godoc
// @Summary      Auditoría del ledger (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        part_id        query  string  false  "Filtrar por repuesto"
// @Param        location_id    query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        type           query  string  false  "in | out | transfer | adjustment"
// @Param        work_order_id  query  string  false  "Filtrar por orden de trabajo"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}   dto.TransactionResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.TransactionFilter{
		PartID:      c.Query("part_id"),
		LocationID:  c.Query("location_id"),
		Type:        c.Query("type"),
		WorkOrderID: c.Query("work_order_id"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	list, err := h.queries.ListTransactions(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":        len(list),
		"transactions": lo.Map(list, func(t *entity.InventoryTransaction, _ int) dto.TransactionResponse { return toTransactionResponse(t) }),
	})
}

// ListLowStock godoc
// @Summary      Repuestos en o bajo punto de reorden
// @Description  Severidad: critical con saldo 0, low con 0 < saldo <= punto de reorden.
//
//	Excluye repuestos inactivos. Orden: cantidad ascendente.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.reorder.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// CountLowStock godoc
// @Summary      Cantidad de pares en o bajo punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/inventory/low-stock/count [get]
func (h *InventoryHandler) CountLowStock(c *fiber.Ctx) error {
	count, err := h.reorder.CountLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// Reconcile godoc
// @Summary      Reconciliación saldo materializado vs suma del ledger
// @Description  Recalcula cada par desde el ledger y reporta derivas. Sin hallazgos = consistente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReconciliationFindingDTO
// @Router       /api/inventory/reconciliation [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	findings, err := h.reconcile.Reconcile(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := lo.Map(findings, func(f entity.ReconciliationFinding, _ int) dto.ReconciliationFindingDTO {
		return dto.ReconciliationFindingDTO{
			PartID:         f.PartID,
			LocationID:     f.LocationID,
			LevelQuantity:  f.LevelQuantity,
			LedgerQuantity: f.LedgerQuantity,
			Drift:          f.Drift,
			CheckedAt:      f.CheckedAt,
		}
	})
	return c.JSON(fiber.Map{"consistent": len(out) == 0, "findings": out})
}

func toTransactionResponse(t *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           t.ID,
		Type:         t.Type,
		PartID:       t.PartID,
		LocationID:   t.LocationID,
		ToLocationID: t.ToLocationID,
		Quantity:     t.Quantity,
		Direction:    t.Direction,
		Reference:    t.Reference,
		WorkOrderID:  t.WorkOrderID,
		CreatedByID:  t.CreatedByID,
		CreatedAt:    t.CreatedAt,
	}
}
