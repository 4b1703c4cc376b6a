package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/vibecart/scm-service/internal/domains/orders/application"
	orderstypes "github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
	orderworkflows "github.com/vibecart/scm-service/internal/durable/temporal/workflows/orders"
	orderactivities "github.com/vibecart/scm-service/internal/platform/temporal/activities/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts checkout workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCheckoutTaskQueue}
}

// Checkout starts the Temporal workflow that places an order.
func (o *TemporalOrderWorkflows) Checkout(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCheckoutWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCheckoutWorkflow,
		orderworkflows.OrderCheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result orderstypes.CreateOrderResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, err
			}
			return &result, nil
		}
		return nil, err
	}
	var result orderstypes.CreateOrderResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &result, nil
}

// mapWorkflowError restores the typed shortage error that the workflow
// surfaced as an application error.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == orderactivities.StockShortageErrorType {
		return fmt.Errorf("%s: %w", appErr.Message(), ordersapp.ErrStockShortage)
	}
	return err
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// Checkout delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) Checkout(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CreateOrder(ctx, input)
}

func buildCheckoutWorkflowID(input orderstypes.CreateOrderInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-checkout-idem-%s", hashIdempotencyKey(key))
	}
	idComponent := input.CustomerID
	if idComponent == 0 {
		idComponent = time.Now().UnixNano()
	}
	return fmt.Sprintf("order-checkout-%d-%s", idComponent, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// Use the first 16 hex chars to keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
