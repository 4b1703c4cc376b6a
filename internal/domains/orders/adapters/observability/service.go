package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/domain"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
)

const tracerName = "github.com/vibecart/scm-service/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.CreateOrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.Int64("customer.id", input.CustomerID), attribute.Int("items", len(input.Items))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.Int64("customer_id", input.CustomerID), slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return result, s.handleError(ctx, span, err, "order creation failed", slog.Int64("customer_id", input.CustomerID))
	}
	s.metrics.recordCreated(ctx)
	span.SetAttributes(attribute.String("order.id", result.Order.ID))
	s.logInfo(ctx, "order created", slog.String("order_id", result.Order.ID))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()
	order, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "order lookup failed", slog.String("order_id", id))
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()
	orders, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "order listing failed")
	}
	span.SetAttributes(attribute.Int("orders", len(orders)))
	return orders, nil
}

func (s *Service) OrderHistory(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.OrderHistory", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()
	orders, err := s.inner.OrderHistory(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "order history lookup failed", slog.Int64("customer_id", customerID))
	}
	return orders, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id string, input types.UpdateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.UpdateOrder(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "order update failed", slog.String("order_id", id))
	}
	s.logInfo(ctx, "order updated", slog.String("order_id", id), slog.String("status", string(order.Status)))
	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, id string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order_id", id))
	msg, err := s.inner.CancelOrder(ctx, id)
	if err != nil {
		return "", s.handleError(ctx, span, err, "order cancellation failed", slog.String("order_id", id))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.String("order_id", id))
	return msg, nil
}

func (s *Service) TrackOrder(ctx context.Context, id string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.TrackOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()
	msg, err := s.inner.TrackOrder(ctx, id)
	if err != nil {
		return "", s.handleError(ctx, span, err, "order tracking failed", slog.String("order_id", id))
	}
	return msg, nil
}

func (s *Service) ReserveStock(ctx context.Context, lines []invtypes.DemandLine, customerZip int64) (invtypes.ReservationOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ReserveStock",
		trace.WithAttributes(attribute.Int("demand.lines", len(lines)), attribute.Int64("customer.zip", customerZip)))
	defer span.End()
	outcome, err := s.inner.ReserveStock(ctx, lines, customerZip)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "stock reservation failed", slog.Int64("zip", customerZip))
	}
	return outcome, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated   metric.Int64Counter
	ordersRejected  metric.Int64Counter
	ordersCancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	rejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of orders rejected during creation"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	return serviceMetrics{ordersCreated: created, ordersRejected: rejected, ordersCancelled: cancelled}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
