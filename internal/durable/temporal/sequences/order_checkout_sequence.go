package sequences

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	orderstypes "github.com/vibecart/scm-service/internal/domains/orders/application/types"
	orderactivities "github.com/vibecart/scm-service/internal/platform/temporal/activities/orders"
)

// RunOrderCheckoutSequence executes the ordered set of activities needed to
// place an order. On failure it releases any stock the attempt may have held.
func RunOrderCheckoutSequence(ctx workflow.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order checkout sequence started", "customerId", input.CustomerID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result orderstypes.CreateOrderResult
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("order checkout sequence failed", "customerId", input.CustomerID, "error", err)
		if !isStockShortage(err) {
			compensate(ctx, input)
		}
		return nil, err
	}
	if result.Order != nil {
		logger.Info("order checkout sequence completed", "orderId", result.Order.ID)
	} else {
		logger.Info("order checkout sequence completed")
	}
	return &result, nil
}

// compensate releases whatever the failed attempt reserved. Best effort: a
// reservation that never happened reports not-found and is ignored.
func compensate(ctx workflow.Context, input orderstypes.CreateOrderInput) {
	logger := workflow.GetLogger(ctx)
	lines := make([]invtypes.DemandLine, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, invtypes.DemandLine{SKU: item.SKU, Quantity: item.Quantity})
	}
	revert := orderactivities.RevertStockInput{Lines: lines, CustomerZip: input.ShippingZip}
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)
	if err := workflow.ExecuteActivity(ctx, orderactivities.RevertStockActivityName, revert).Get(ctx, nil); err != nil {
		logger.Error("checkout compensation failed", "customerId", input.CustomerID, "error", err)
	}
}

func isStockShortage(err error) bool {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Type() == orderactivities.StockShortageErrorType
	}
	return false
}
