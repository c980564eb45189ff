package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/application/usecase"
	"github.com/jcastro/mantenix-api/internal/infrastructure/postgres"
	"github.com/jcastro/mantenix-api/internal/infrastructure/redisevents"
	httpRouter "github.com/jcastro/mantenix-api/internal/interfaces/http"
	"github.com/jcastro/mantenix-api/pkg/config"
	"github.com/jcastro/mantenix-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	partRepo := postgres.NewPartRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	txnRepo := postgres.NewInventoryTransactionRepository(pool)
	woPartRepo := postgres.NewWorkOrderPartRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos del ledger: Redis si está configurado, si no el publicador nulo.
	var events inventory.EventPublisher = inventory.NopPublisher{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		events = redisevents.NewPublisher(rdb, log.Component("redisevents"))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("eventos del ledger habilitados")
	}

	partUC := usecase.NewPartUseCase(partRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo)
	applyUC := inventory.NewApplyTransactionUseCase(txRunner, partRepo, locationRepo, events)
	consumeUC := inventory.NewConsumePartUseCase(txRunner, partRepo, locationRepo, workOrderRepo, events)
	queryUC := inventory.NewQueryUseCase(levelRepo, txnRepo, woPartRepo, workOrderRepo, locationRepo)
	reorderUC := inventory.NewReorderMonitorUseCase(levelRepo)
	reconcileUC := inventory.NewReconciliationUseCase(levelRepo, txnRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mantenix API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PartUC:      partUC,
		LocationUC:  locationUC,
		WorkOrderUC: workOrderUC,
		Apply:       applyUC,
		Consume:     consumeUC,
		Queries:     queryUC,
		Reorder:     reorderUC,
		Reconcile:   reconcileUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
