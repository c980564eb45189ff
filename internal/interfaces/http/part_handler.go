package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/jcastro/mantenix-api/internal/application/dto"
	"github.com/jcastro/mantenix-api/internal/application/usecase"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

// PartHandler CRUD del catálogo de repuestos.
type PartHandler struct {
	parts *usecase.PartUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(parts *usecase.PartUseCase) *PartHandler {
	return &PartHandler{parts: parts}
}

// Create godoc
// @Summary      Dar de alta un repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "SKU, nombre, punto de reorden y costo unitario"
// @Success      201   {object}  dto.PartDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.parts.Create(c.Context(), usecase.CreatePartInput{
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		ReorderPoint: in.ReorderPoint,
		UnitCost:     in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPartDTO(part))
}

// GetByID godoc
// @Summary      Consultar un repuesto
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.PartDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	part, err := h.parts.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPartDTO(part))
}

// List godoc
// @Summary      Listar repuestos
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.PartDTO
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	parts, err := h.parts.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(parts),
		"parts": lo.Map(parts, func(p *entity.Part, _ int) dto.PartDTO { return toPartDTO(p) }),
	})
}

// Update godoc
// @Summary      Modificar un repuesto
// @Description  Actualización parcial: los campos ausentes no cambian. Desactivar un
//
//	repuesto lo saca del monitor de reorden sin tocar su historial.
//
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del repuesto"
// @Param        body  body  dto.UpdatePartRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PartDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.parts.Update(c.Context(), c.Params("id"), usecase.UpdatePartInput{
		Name:         in.Name,
		Description:  in.Description,
		ReorderPoint: in.ReorderPoint,
		UnitCost:     in.UnitCost,
		Active:       in.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPartDTO(part))
}

func toPartDTO(p *entity.Part) dto.PartDTO {
	return dto.PartDTO{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		ReorderPoint: p.ReorderPoint,
		UnitCost:     p.UnitCost,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
