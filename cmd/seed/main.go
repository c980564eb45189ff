package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/application/usecase"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/infrastructure/postgres"
	"github.com/jcastro/mantenix-api/pkg/config"
	"github.com/jcastro/mantenix-api/pkg/logger"
)

// Siembra datos de demostración a través de los casos de uso, no con INSERTs
// directos, para que cada saldo quede respaldado por entradas reales del ledger.
func main() {
	var (
		parts     = flag.Int("parts", 12, "cantidad de repuestos a crear")
		locations = flag.Int("locations", 3, "cantidad de ubicaciones a crear")
		movements = flag.Int("movements", 60, "cantidad de movimientos aleatorios")
		seed      = flag.Uint64("seed", 0, "semilla del generador (0 = aleatoria)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

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
	txRunner := postgres.NewTxRunner(pool)

	partUC := usecase.NewPartUseCase(partRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo)
	applyUC := inventory.NewApplyTransactionUseCase(txRunner, partRepo, locationRepo, nil)
	consumeUC := inventory.NewConsumePartUseCase(txRunner, partRepo, locationRepo, workOrderRepo, nil)

	// Identidad sintética del sembrador; created_by_id es UUID en el esquema.
	seedUser := uuid.New().String()

	locationIDs := make([]string, 0, *locations)
	for i := 0; i < *locations; i++ {
		loc, err := locationUC.Create(ctx, fmt.Sprintf("Bodega %s", gofakeit.City()))
		if err != nil {
			log.Fatal().Err(err).Msg("crear ubicación")
		}
		locationIDs = append(locationIDs, loc.ID)
	}

	partIDs := make([]string, 0, *parts)
	for i := 0; i < *parts; i++ {
		sku := fmt.Sprintf("%s-%04d", strings.ToUpper(gofakeit.LetterN(3)), gofakeit.Number(1, 9999))
		part, err := partUC.Create(ctx, usecase.CreatePartInput{
			SKU:          sku,
			Name:         gofakeit.ProductName(),
			Description:  gofakeit.Sentence(8),
			ReorderPoint: int64(gofakeit.Number(2, 10)),
			UnitCost:     decimal.NewFromFloat(gofakeit.Price(1, 500)),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear repuesto")
		}
		partIDs = append(partIDs, part.ID)

		// Stock inicial en una ubicación al azar para que haya qué mover.
		_, err = applyUC.ApplyTransaction(ctx, inventory.TransactionInput{
			PartID:       part.ID,
			LocationID:   locationIDs[gofakeit.Number(0, len(locationIDs)-1)],
			Type:         entity.TransactionTypeIn,
			Quantity:     int64(gofakeit.Number(10, 80)),
			Reference:    fmt.Sprintf("PO-%d", gofakeit.Number(1000, 9999)),
			ActingUserID: seedUser,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("stock inicial")
		}
	}

	wo, err := workOrderUC.Create(ctx, fmt.Sprintf("Mantenimiento %s", gofakeit.VerbAction()))
	if err != nil {
		log.Fatal().Err(err).Msg("crear orden de trabajo")
	}

	applied, rejected := 0, 0
	for i := 0; i < *movements; i++ {
		partID := partIDs[gofakeit.Number(0, len(partIDs)-1)]
		locID := locationIDs[gofakeit.Number(0, len(locationIDs)-1)]
		qty := int64(gofakeit.Number(1, 8))

		switch gofakeit.Number(0, 3) {
		case 0:
			_, err = applyUC.ApplyTransaction(ctx, inventory.TransactionInput{
				PartID: partID, LocationID: locID,
				Type: entity.TransactionTypeIn, Quantity: qty,
				Reference:    fmt.Sprintf("PO-%d", gofakeit.Number(1000, 9999)),
				ActingUserID: seedUser,
			})
		case 1:
			_, err = applyUC.ApplyTransaction(ctx, inventory.TransactionInput{
				PartID: partID, LocationID: locID,
				Type: entity.TransactionTypeOut, Quantity: qty,
				ActingUserID: seedUser,
			})
		case 2:
			toID := locationIDs[gofakeit.Number(0, len(locationIDs)-1)]
			if toID == locID {
				continue
			}
			_, err = applyUC.ApplyTransaction(ctx, inventory.TransactionInput{
				PartID: partID, LocationID: locID, ToLocationID: toID,
				Type: entity.TransactionTypeTransfer, Quantity: qty,
				ActingUserID: seedUser,
			})
		default:
			_, err = consumeUC.ConsumePartForWorkOrder(ctx, inventory.ConsumeInput{
				WorkOrderID: wo.ID, PartID: partID, LocationID: locID,
				Quantity: qty, ActingUserID: seedUser,
			})
		}
		if err != nil {
			// Stock insuficiente es normal en datos aleatorios; el rechazo no deja rastro.
			rejected++
			continue
		}
		applied++
	}

	log.Info().
		Int("parts", len(partIDs)).
		Int("locations", len(locationIDs)).
		Int("applied", applied).
		Int("rejected", rejected).
		Msg("siembra completa")
}
