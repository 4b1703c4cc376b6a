package orders

import (
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/durable/temporal/sequences"
)

const (
	// OrderCheckoutWorkflowName is the public identifier for registering the workflow.
	OrderCheckoutWorkflowName = "orders.workflows.Checkout"
	// OrderCheckoutTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCheckoutTaskQueue = "ORDER_CHECKOUT"
)

// OrderCheckoutWorkflowInput captures the payload required to place an order.
type OrderCheckoutWorkflowInput struct {
	Command orderstypes.CreateOrderInput
	TraceID string
}

// OrderCheckoutWorkflow orchestrates the activities needed to place an order
// with its stock reservation.
func OrderCheckoutWorkflow(ctx workflow.Context, input OrderCheckoutWorkflowInput) (*orderstypes.CreateOrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderCheckoutWorkflow started", withTraceID(input.TraceID, "customerId", input.Command.CustomerID)...)
	result, err := sequences.RunOrderCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderCheckoutWorkflow failed", withTraceID(input.TraceID, "customerId", input.Command.CustomerID, "error", err)...)
		return nil, err
	}
	if result != nil && result.Order != nil {
		logger.Info("OrderCheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", result.Order.ID)...)
	} else {
		logger.Info("OrderCheckoutWorkflow completed", withTraceID(input.TraceID)...)
	}
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
