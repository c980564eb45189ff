package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastro/mantenix-api/internal/application/dto"
	"github.com/jcastro/mantenix-api/internal/application/inventory"
	"github.com/jcastro/mantenix-api/internal/domain/entity"
)

func TestListLowStock_SeveridadYOrden(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	loc := env.store.addLocation("Bodega Central")

	agotado := env.store.addPart(5, "10.00")  // quedará en 0 -> critical
	bajo := env.store.addPart(5, "10.00")     // quedará en 3 -> low
	enLimite := env.store.addPart(5, "10.00") // quedará en 5 -> low (límite inclusivo)
	sobrado := env.store.addPart(5, "10.00")  // quedará en 20 -> fuera del reporte

	receive(t, env, agotado.ID, loc.ID, 4)
	_, err := env.apply.ApplyTransaction(ctx, inventory.TransactionInput{
		PartID: agotado.ID, LocationID: loc.ID,
		Type: entity.TransactionTypeOut, Quantity: 4, ActingUserID: testActor,
	})
	require.NoError(t, err)
	receive(t, env, bajo.ID, loc.ID, 3)
	receive(t, env, enLimite.ID, loc.ID, 5)
	receive(t, env, sobrado.ID, loc.ID, 20)

	items, err := env.reorder.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Orden por cantidad ascendente: el agotado encabeza el reporte.
	assert.Equal(t, agotado.ID, items[0].PartID)
	assert.Equal(t, dto.SeverityCritical, items[0].Severity)
	assert.Equal(t, int64(0), items[0].Quantity)

	for _, it := range items[1:] {
		assert.Equal(t, dto.SeverityLow, it.Severity)
	}

	count, err := env.reorder.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestListLowStock_ExcluyeRepuestosInactivos(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	loc := env.store.addLocation("Bodega Central")

	part := env.store.addPart(5, "10.00")
	receive(t, env, part.ID, loc.ID, 2) // bajo el punto de reorden

	items, err := env.reorder.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Descatalogado: desaparece del monitor aunque su saldo siga bajo.
	env.store.parts[part.ID].Active = false

	items, err = env.reorder.ListLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	count, err := env.reorder.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
