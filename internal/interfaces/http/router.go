package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/application/usecase"
)

// Roles reconocidos en el claim del token.
const (
	RoleAdmin       = "admin"
	RoleAlmacenista = "almacenista"
	RoleTecnico     = "tecnico"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PartUC      *usecase.PartUseCase
	LocationUC  *usecase.LocationUseCase
	WorkOrderUC *usecase.WorkOrderUseCase
	Apply       *inventory.ApplyTransactionUseCase
	Consume     *inventory.ConsumePartUseCase
	Queries     *inventory.QueryUseCase
	Reorder     *inventory.ReorderMonitorUseCase
	Reconcile   *inventory.ReconciliationUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Toda la superficie es protegida: la
// identidad viene de un token emitido por el sistema de usuarios externo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	canMove := RequireRole(RoleAdmin, RoleAlmacenista)
	canConsume := RequireRole(RoleAdmin, RoleAlmacenista, RoleTecnico)
	adminOnly := RequireRole(RoleAdmin)

	// Parts (catálogo)
	parts := api.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", canMove, partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", canMove, partHandler.Update)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", canMove, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Inventory (ledger, saldos, reorden, reconciliación)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Apply, deps.Queries, deps.Reorder, deps.Reconcile)
	locations.Get("/:id/levels", inventoryHandler.ListLocationLevels)
	inv.Post("/transactions", canMove, inventoryHandler.ApplyTransaction)
	inv.Get("/transactions", inventoryHandler.ListTransactions)
	inv.Get("/transactions/:id", inventoryHandler.GetTransaction)
	inv.Get("/balance", inventoryHandler.GetBalance)
	inv.Get("/low-stock", inventoryHandler.ListLowStock)
	inv.Get("/low-stock/count", inventoryHandler.CountLowStock)
	inv.Post("/reconciliation", adminOnly, inventoryHandler.Reconcile)

	// Work orders y consumo de repuestos
	workOrders := api.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.Consume, deps.Queries)
	workOrders.Post("/", canMove, workOrderHandler.Create)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Post("/:id/parts", canConsume, workOrderHandler.ConsumePart)
	workOrders.Get("/:id/parts", workOrderHandler.ListParts)
}
