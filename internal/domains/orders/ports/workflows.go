package ports

import (
	"context"

	"github.com/vibecart/scm-service/internal/domains/orders/application/types"
)

// WorkflowOrchestrator starts the durable checkout flow for a new order.
// Implementations either run the sequence inline or hand it to Temporal.
type WorkflowOrchestrator interface {
	Checkout(ctx context.Context, input types.CreateOrderInput) (*types.CreateOrderResult, error)
}
