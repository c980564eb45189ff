package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/jcastro/mantenix-api/internal/application/dto"
	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/application/usecase"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// WorkOrderHandler maneja órdenes de trabajo y el consumo de repuestos contra ellas.
type WorkOrderHandler struct {
	workOrders *usecase.WorkOrderUseCase
	consume    *inventory.ConsumePartUseCase
	queries    *inventory.QueryUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(
	workOrders *usecase.WorkOrderUseCase,
	consume *inventory.ConsumePartUseCase,
	queries *inventory.QueryUseCase,
) *WorkOrderHandler {
	return &WorkOrderHandler{workOrders: workOrders, consume: consume, queries: queries}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "Título de la orden"
// @Success      201   {object}  dto.WorkOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	wo, err := h.workOrders.Create(c.Context(), in.Title)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWorkOrderDTO(wo))
}

// GetByID godoc
// @Summary      Consultar orden de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	wo, err := h.workOrders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toWorkOrderDTO(wo))
}

// ConsumePart godoc
// @Summary      Consumir repuesto contra una orden de trabajo
// @Description  Ejecuta la salida de inventario y crea la línea de costo en la misma
//
//	transacción. Con stock insuficiente no se escribe nada.
//
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.ConsumePartRequest  true  "Repuesto, ubicación y cantidad"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/parts [post]
func (h *WorkOrderHandler) ConsumePart(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConsumePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.consume.ConsumePartForWorkOrder(c.Context(), inventory.ConsumeInput{
		WorkOrderID:  c.Params("id"),
		PartID:       in.PartID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		Reference:    in.Reference,
		ActingUserID: userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ConsumptionResponse{
		Transaction: toTransactionResponse(result.Transaction),
		LineItem:    toWorkOrderPartDTO(result.LineItem),
	})
}

// ListParts godoc
// @Summary      Líneas de costo de repuestos de una orden
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}   dto.WorkOrderPartDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/parts [get]
func (h *WorkOrderHandler) ListParts(c *fiber.Ctx) error {
	lines, err := h.queries.ListWorkOrderParts(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(lines),
		"parts": lo.Map(lines, func(l *entity.WorkOrderPart, _ int) dto.WorkOrderPartDTO { return toWorkOrderPartDTO(l) }),
	})
}

func toWorkOrderDTO(wo *entity.WorkOrder) dto.WorkOrderDTO {
	return dto.WorkOrderDTO{
		ID:        wo.ID,
		Title:     wo.Title,
		Status:    wo.Status,
		CreatedAt: wo.CreatedAt,
	}
}

func toWorkOrderPartDTO(l *entity.WorkOrderPart) dto.WorkOrderPartDTO {
	return dto.WorkOrderPartDTO{
		ID:            l.ID,
		WorkOrderID:   l.WorkOrderID,
		PartID:        l.PartID,
		TransactionID: l.TransactionID,
		Quantity:      l.Quantity,
		UnitCost:      l.UnitCost,
		TotalCost:     l.TotalCost,
		CreatedAt:     l.CreatedAt,
	}
}
