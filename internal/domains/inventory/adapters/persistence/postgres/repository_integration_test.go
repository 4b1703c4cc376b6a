//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
	"github.com/vibecart/scm-service/internal/domains/inventory/ports"
	"github.com/vibecart/scm-service/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("scm_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// Run migrations
	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestPostgresRecordStore_SaveAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewRecordStore(db)
	ctx := context.Background()

	record := &domain.InventoryRecord{
		ItemID:      10,
		SKU:         1276,
		WarehouseID: "INV0001",
		Available:   45,
		LastUpdated: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, record))
	assert.NotZero(t, record.ID)

	found, err := store.FindBySKUAndWarehouse(ctx, 1276, "INV0001")
	require.NoError(t, err)
	assert.Equal(t, 45, found.Available)
	assert.Equal(t, int64(10), found.ItemID)

	_, err = store.FindBySKUAndWarehouse(ctx, 9999, "INV0001")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRecordStore_UpsertOnSKUAndWarehouse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewRecordStore(db)
	ctx := context.Background()

	record := &domain.InventoryRecord{ItemID: 10, SKU: 1276, WarehouseID: "INV0001", Available: 45}
	require.NoError(t, store.Save(ctx, record))

	// Second save with the same identity updates the counters in place.
	record.Available = 30
	record.OnHold = 15
	record.OnOrder = 15
	require.NoError(t, store.Save(ctx, record))

	all, err := store.FindBySKU(ctx, 1276)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 30, all[0].Available)
	assert.Equal(t, 15, all[0].OnHold)
	assert.Equal(t, 15, all[0].OnOrder)
}

func TestPostgresRecordStore_FindAvailableExcluding(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewRecordStore(db)
	ctx := context.Background()

	seed := []*domain.InventoryRecord{
		{ItemID: 20, SKU: 2001, WarehouseID: "INV0001", Available: 30},
		{ItemID: 20, SKU: 2001, WarehouseID: "INV0002", Available: 20},
		{ItemID: 20, SKU: 2001, WarehouseID: "INV0003", Available: 50},
		{ItemID: 20, SKU: 2001, WarehouseID: "INV0004", Available: 0},
	}
	for _, rec := range seed {
		require.NoError(t, store.Save(ctx, rec))
	}

	// Excludes the named warehouse and empty records, best stocked first.
	others, err := store.FindAvailableExcluding(ctx, 2001, "INV0001")
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, "INV0003", others[0].WarehouseID)
	assert.Equal(t, "INV0002", others[1].WarehouseID)
}

func TestPostgresRecordStore_FindOnHoldBySKU(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewRecordStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.InventoryRecord{ItemID: 20, SKU: 2001, WarehouseID: "INV0001", Available: 10, OnHold: 5}))
	require.NoError(t, store.Save(ctx, &domain.InventoryRecord{ItemID: 20, SKU: 2001, WarehouseID: "INV0002", Available: 10}))

	held, err := store.FindOnHoldBySKU(ctx, 2001)
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "INV0001", held[0].WarehouseID)
}

func TestPostgresRecordStore_FindByWarehouseAndItem(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewRecordStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.InventoryRecord{ItemID: 10, SKU: 1276, WarehouseID: "INV0001", Available: 45}))
	require.NoError(t, store.Save(ctx, &domain.InventoryRecord{ItemID: 20, SKU: 2001, WarehouseID: "INV0001", Available: 30}))
	require.NoError(t, store.Save(ctx, &domain.InventoryRecord{ItemID: 20, SKU: 2002, WarehouseID: "INV0002", Available: 20}))

	byWarehouse, err := store.FindByWarehouse(ctx, "INV0001")
	require.NoError(t, err)
	assert.Len(t, byWarehouse, 2)

	byItem, err := store.FindByItem(ctx, 20)
	require.NoError(t, err)
	assert.Len(t, byItem, 2)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPostgresWarehouseStore_FindByZip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewWarehouseStore(db)
	ctx := context.Background()

	warehouses := []*domain.Warehouse{
		{ID: "INV0001", Name: "Mumbai Warehouse", Location: "Mumbai", ZipStart: 400001, ZipEnd: 400706},
		{ID: "INV0002", Name: "Delhi Warehouse", Location: "Delhi", ZipStart: 110001, ZipEnd: 110096},
	}
	for _, w := range warehouses {
		require.NoError(t, store.Save(ctx, w))
	}

	found, err := store.FindByZip(ctx, 400050)
	require.NoError(t, err)
	assert.Equal(t, "INV0001", found.ID)

	// Range bounds are inclusive.
	found, err = store.FindByZip(ctx, 110096)
	require.NoError(t, err)
	assert.Equal(t, "INV0002", found.ID)

	_, err = store.FindByZip(ctx, 560001)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
