package ports

import (
	"context"
	"time"

	"github.com/vibecart/scm-service/internal/domains/inventory/application/types"
)

// Service exposes the inventory engines to adapters and the orders collaborator.
type Service interface {
	Reserve(ctx context.Context, lines []types.DemandLine, customerZip int64) (types.ReservationOutcome, error)
	Revert(ctx context.Context, lines []types.DemandLine, customerZip int64) error
	Confirm(ctx context.Context, skus []int64) error
	EstimateDelivery(ctx context.Context, sku, zip int64) (time.Time, error)

	CheckQuantities(ctx context.Context, skus []int64) ([]int, error)
	QuantityBySKU(ctx context.Context, sku int64) (int, error)
	QuantityByItem(ctx context.Context, itemID int64) (int, error)
	AddStock(ctx context.Context, additions []types.StockAddition) error

	WarehouseReport(ctx context.Context) ([]types.WarehouseStock, error)
	SKUReport(ctx context.Context) ([]types.SKUStock, error)
	LocationDetails(ctx context.Context) ([]types.LocationStock, error)
}
