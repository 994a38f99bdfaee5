package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/dreamshub/backend/internal/domain/shared"
)

func setupWarehouseTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&location.Warehouse{})
	require.NoError(t, err)

	return db
}

func TestGormWarehouseRepository_FindByName(t *testing.T) {
	db := setupWarehouseTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	warehouse, err := location.NewWarehouse("Main Store", location.TypeStoreFront, "12 High Street")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, warehouse))

	t.Run("matches regardless of case", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "main store")
		require.NoError(t, err)
		assert.Equal(t, warehouse.ID, found.ID)
	})

	t.Run("returns not-found for unknown name", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Offsite Depot")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestGormWarehouseRepository_Delete(t *testing.T) {
	db := setupWarehouseTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	t.Run("deletes an existing warehouse", func(t *testing.T) {
		warehouse, err := location.NewWarehouse("Backroom", location.TypeBackroom, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, warehouse))

		require.NoError(t, repo.Delete(ctx, warehouse.ID))

		_, err = repo.FindByID(ctx, warehouse.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("returns not-found for missing warehouse", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestGormWarehouseRepository_FindAll(t *testing.T) {
	db := setupWarehouseTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zeta Annex", "Main Store", "Backroom"} {
		warehouse, err := location.NewWarehouse(name, location.TypeWarehouse, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, warehouse))
	}

	warehouses, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, warehouses, 3)
	assert.Equal(t, "Backroom", warehouses[0].Name)
	assert.Equal(t, "Zeta Annex", warehouses[2].Name)
}
