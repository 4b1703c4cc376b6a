package ports

import (
	"context"
	"errors"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
)

var ErrNotFound = errors.New("inventory record not found")

// RecordStore persists inventory counters per (SKU, warehouse) pair.
//
// FindAvailableExcluding returns records with available quantity above zero,
// ordered by available quantity descending; an empty excluded warehouse means
// no exclusion. The store must surface row-level locking through the enclosing
// transaction; the engines do no locking of their own.
type RecordStore interface {
	FindBySKUAndWarehouse(ctx context.Context, sku int64, warehouseID string) (*domain.InventoryRecord, error)
	FindBySKU(ctx context.Context, sku int64) ([]*domain.InventoryRecord, error)
	FindAvailableExcluding(ctx context.Context, sku int64, excludedWarehouseID string) ([]*domain.InventoryRecord, error)
	FindOnHoldBySKU(ctx context.Context, sku int64) ([]*domain.InventoryRecord, error)
	FindByWarehouse(ctx context.Context, warehouseID string) ([]*domain.InventoryRecord, error)
	FindByItem(ctx context.Context, itemID int64) ([]*domain.InventoryRecord, error)
	List(ctx context.Context) ([]*domain.InventoryRecord, error)
	Save(ctx context.Context, record *domain.InventoryRecord) error
}

// WarehouseStore resolves warehouses; read-only from the engines' perspective.
type WarehouseStore interface {
	FindByZip(ctx context.Context, zip int64) (*domain.Warehouse, error)
	List(ctx context.Context) ([]*domain.Warehouse, error)
}
