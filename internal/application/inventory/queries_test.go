package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/domain"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
	"github.com/jcastro/mantenix-api/internal/domain/repository"
)

func TestGetBalance_ParNuncaMovidoEsCero(t *testing.T) {
	env := newTestEnv()
	part := env.store.addPart(5, "10.00")
	loc := env.store.addLocation("Bodega Central")

	qty, err := env.queries.GetBalance(context.Background(), part.ID, loc.ID)
	require.NoError(t, err)
	assert.Zero(t, qty, "un par sin movimientos equivale a saldo 0, no a error")
}

func TestGetBalance_RequiereAmbosIDs(t *testing.T) {
	env := newTestEnv()

	_, err := env.queries.GetBalance(context.Background(), "", "loc")
	var inputErr *domain.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "part_id", inputErr.Field)

	_, err = env.queries.GetBalance(context.Background(), "part", "")
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "location_id", inputErr.Field)
}

func TestListTransactions_FiltrosYOrden(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	part := env.store.addPart(5, "10.00")
	otro := env.store.addPart(5, "10.00")
	bodega := env.store.addLocation("Bodega Central")
	taller := env.store.addLocation("Taller Norte")

	receive(t, env, part.ID, bodega.ID, 10)
	receive(t, env, otro.ID, bodega.ID, 10)
	_, err := env.apply.ApplyTransaction(ctx, inventory.TransactionInput{
		PartID: part.ID, LocationID: bodega.ID, ToLocationID: taller.ID,
		Type: entity.TransactionTypeTransfer, Quantity: 3, ActingUserID: testActor,
	})
	require.NoError(t, err)

	// Filtro por repuesto.
	list, err := env.queries.ListTransactions(ctx, repository.TransactionFilter{PartID: part.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Filtro por tipo.
	list, err = env.queries.ListTransactions(ctx, repository.TransactionFilter{Type: entity.TransactionTypeTransfer})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, part.ID, list[0].PartID)

	// Filtrar por ubicación destino también encuentra el traslado.
	list, err = env.queries.ListTransactions(ctx, repository.TransactionFilter{LocationID: taller.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransactionTypeTransfer, list[0].Type)

	// Sin filtros: todo, más reciente primero.
	list, err = env.queries.ListTransactions(ctx, repository.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt),
			"el listado debe ir de más reciente a más antiguo")
	}

	// Ventana de tiempo que excluye todo lo anterior.
	future := time.Now().Add(time.Hour)
	list, err = env.queries.ListTransactions(ctx, repository.TransactionFilter{From: &future})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTransactions_PaginacionConTope(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	part := env.store.addPart(5, "10.00")
	loc := env.store.addLocation("Bodega Central")
	for i := 0; i < 5; i++ {
		receive(t, env, part.ID, loc.ID, 1)
	}

	list, err := env.queries.ListTransactions(ctx, repository.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = env.queries.ListTransactions(ctx, repository.TransactionFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Limit fuera de rango se normaliza en vez de fallar.
	list, err = env.queries.ListTransactions(ctx, repository.TransactionFilter{Limit: 10000})
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestGetTransaction_PorID(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	part := env.store.addPart(5, "10.00")
	loc := env.store.addLocation("Bodega Central")

	created, err := env.apply.ApplyTransaction(ctx, inventory.TransactionInput{
		PartID: part.ID, LocationID: loc.ID,
		Type: entity.TransactionTypeIn, Quantity: 5, ActingUserID: testActor,
	})
	require.NoError(t, err)

	got, err := env.queries.GetTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Quantity, got.Quantity)

	_, err = env.queries.GetTransaction(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListLocationLevels_SoloLaUbicacionPedida(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	part := env.store.addPart(5, "10.00")
	bodega := env.store.addLocation("Bodega Central")
	taller := env.store.addLocation("Taller Norte")
	receive(t, env, part.ID, bodega.ID, 10)
	receive(t, env, part.ID, taller.ID, 2)

	levels, err := env.queries.ListLocationLevels(ctx, bodega.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, int64(10), levels[0].Quantity)

	_, err = env.queries.ListLocationLevels(ctx, "no-existe", 50, 0)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListWorkOrderParts_OrdenInexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.queries.ListWorkOrderParts(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
