package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
	"github.com/vibecart/scm-service/internal/domains/orders/application"
	orderstypes "github.com/vibecart/scm-service/internal/domains/orders/application/types"
	ordersports "github.com/vibecart/scm-service/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName reserves stock, persists the order, and confirms the hold.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// RevertStockActivityName compensates a failed checkout by releasing reserved stock.
	RevertStockActivityName = "orders.activities.RevertStock"

	// StockShortageErrorType marks a shortage rejection. The engine already
	// released any partial reservation, so the workflow must not compensate.
	StockShortageErrorType = "StockShortage"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	orderService ordersports.Service
	inventory    invports.Service
}

// NewActivities wires the orders and inventory services into the Temporal
// activities bundle.
func NewActivities(orderService ordersports.Service, inventory invports.Service) *Activities {
	return &Activities{orderService: orderService, inventory: inventory}
}

// PlaceOrder runs the full order creation flow and returns the result.
func (a *Activities) PlaceOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orderService == nil {
		logger.Error("place order activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", input.CustomerID, "items", len(input.Items))
	result, err := a.orderService.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", input.CustomerID, "error", err)
		if errors.Is(err, application.ErrStockShortage) {
			return result, temporal.NewNonRetryableApplicationError(err.Error(), StockShortageErrorType, err)
		}
		return result, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", result.Order.ID)
	return result, nil
}

// RevertStockInput identifies the reservation to release.
type RevertStockInput struct {
	Lines       []invtypes.DemandLine
	CustomerZip int64
}

// RevertStock releases a stock reservation as checkout compensation. Lines
// that were never reserved are reported as not-found by the engine; the
// compensation treats that as already-released.
func (a *Activities) RevertStock(ctx context.Context, input RevertStockInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.inventory == nil {
		logger.Error("revert stock activity not initialized")
		return errors.New("revert stock activity not initialized")
	}
	logger.Info("RevertStock activity started", "lines", len(input.Lines), "zip", input.CustomerZip)
	if err := a.inventory.Revert(ctx, input.Lines, input.CustomerZip); err != nil {
		logger.Error("RevertStock activity failed", "zip", input.CustomerZip, "error", err)
		return err
	}
	logger.Info("RevertStock activity completed", "lines", len(input.Lines))
	return nil
}
