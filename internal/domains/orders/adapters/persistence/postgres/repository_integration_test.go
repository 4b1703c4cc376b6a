//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vibecart/scm-service/internal/domains/orders/domain"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
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

func sampleOrder(id string, customerID int64) *domain.Order {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:         id,
		CustomerID: customerID,
		Items: []domain.Item{
			{ItemID: 10, SKU: 1276, Name: "Trail Shoe", Quantity: 2, Price: 100},
			{ItemID: 20, SKU: 2001, Name: "Day Pack", Quantity: 1, Price: 50},
		},
		TotalAmount:   250,
		TotalQuantity: 3,
		ShippingAddress: domain.Address{
			Address: "12 Hill Road",
			City:    "Mumbai",
			State:   "MH",
			Zipcode: "400050",
		},
		ShippingZip:       400050,
		Status:            domain.StatusConfirmed,
		PaymentStatus:     domain.PaymentPending,
		PaymentMethod:     domain.PaymentCOD,
		EstimatedDelivery: now.AddDate(0, 0, 2),
		OrderDate:         now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, sampleOrder("ord-0001", 42))
	require.NoError(t, err)
	assert.Equal(t, "ord-0001", saved.ID)
	assert.Len(t, saved.Items, 2)

	retrieved, err := repo.GetByID(ctx, "ord-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(42), retrieved.CustomerID)
	assert.Equal(t, domain.StatusConfirmed, retrieved.Status)
	assert.Equal(t, "Mumbai", retrieved.ShippingAddress.City)
	assert.Equal(t, []int64{1276, 2001}, retrieved.SKUs())

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_SaveReplacesItems(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := sampleOrder("ord-0001", 42)
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	// Saving again with fewer items must not leave orphan rows behind.
	order.Items = order.Items[:1]
	order.Status = domain.StatusShipped
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, domain.StatusShipped, updated.Status)
}

func TestPostgresRepository_FindByCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := repo.Save(ctx, sampleOrder(fmt.Sprintf("ord-%04d", i), 42))
		require.NoError(t, err)
	}
	_, err := repo.Save(ctx, sampleOrder("ord-9999", 77))
	require.NoError(t, err)

	mine, err := repo.FindByCustomer(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	none, err := repo.FindByCustomer(ctx, 123)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
