package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

const tracerName = "github.com/vibecart/scm-service/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory engines with tracing, logging, and metrics.
type Service struct {
	inner   invports.Service
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

// New wraps the core inventory service.
func New(inner invports.Service, opts ...Option) invports.Service {
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

func (s *Service) Reserve(ctx context.Context, lines []types.DemandLine, customerZip int64) (types.ReservationOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Reserve",
		trace.WithAttributes(attribute.Int("demand.lines", len(lines)), attribute.Int64("customer.zip", customerZip)))
	defer span.End()

	s.logInfo(ctx, "reserving stock", slog.Int("lines", len(lines)), slog.Int64("zip", customerZip))
	outcome, err := s.inner.Reserve(ctx, lines, customerZip)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "stock reservation failed", slog.Int64("zip", customerZip))
	}
	reserved, shortages := 0, 0
	for sku := range outcome {
		if outcome.Reserved(sku) {
			reserved++
		} else {
			shortages++
		}
	}
	s.metrics.recordReservation(ctx, reserved, shortages)
	span.SetAttributes(attribute.Int("reservation.reserved", reserved), attribute.Int("reservation.shortages", shortages))
	s.logInfo(ctx, "stock reserved", slog.Int("reserved", reserved), slog.Int("shortages", shortages))
	return outcome, nil
}

func (s *Service) Revert(ctx context.Context, lines []types.DemandLine, customerZip int64) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Revert",
		trace.WithAttributes(attribute.Int("demand.lines", len(lines)), attribute.Int64("customer.zip", customerZip)))
	defer span.End()

	s.logInfo(ctx, "reverting stock reservation", slog.Int("lines", len(lines)), slog.Int64("zip", customerZip))
	if err := s.inner.Revert(ctx, lines, customerZip); err != nil {
		return s.handleError(ctx, span, err, "stock reversal failed", slog.Int64("zip", customerZip))
	}
	s.metrics.recordReversal(ctx)
	s.logInfo(ctx, "stock reservation reverted", slog.Int("lines", len(lines)))
	return nil
}

func (s *Service) Confirm(ctx context.Context, skus []int64) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Confirm",
		trace.WithAttributes(attribute.Int("skus", len(skus))))
	defer span.End()

	if err := s.inner.Confirm(ctx, skus); err != nil {
		return s.handleError(ctx, span, err, "reservation confirmation failed", slog.Int("skus", len(skus)))
	}
	s.logInfo(ctx, "reservation confirmed", slog.Int("skus", len(skus)))
	return nil
}

func (s *Service) EstimateDelivery(ctx context.Context, sku, zip int64) (time.Time, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.EstimateDelivery",
		trace.WithAttributes(attribute.Int64("sku", sku), attribute.Int64("customer.zip", zip)))
	defer span.End()

	estimate, err := s.inner.EstimateDelivery(ctx, sku, zip)
	if err != nil {
		return time.Time{}, s.handleError(ctx, span, err, "delivery estimation failed", slog.Int64("sku", sku))
	}
	return estimate, nil
}

func (s *Service) CheckQuantities(ctx context.Context, skus []int64) ([]int, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CheckQuantities")
	defer span.End()
	totals, err := s.inner.CheckQuantities(ctx, skus)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "quantity check failed")
	}
	return totals, nil
}

func (s *Service) QuantityBySKU(ctx context.Context, sku int64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.QuantityBySKU", trace.WithAttributes(attribute.Int64("sku", sku)))
	defer span.End()
	total, err := s.inner.QuantityBySKU(ctx, sku)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "quantity lookup failed", slog.Int64("sku", sku))
	}
	return total, nil
}

func (s *Service) QuantityByItem(ctx context.Context, itemID int64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.QuantityByItem", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()
	total, err := s.inner.QuantityByItem(ctx, itemID)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "quantity lookup failed", slog.Int64("item.id", itemID))
	}
	return total, nil
}

func (s *Service) AddStock(ctx context.Context, additions []types.StockAddition) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.AddStock",
		trace.WithAttributes(attribute.Int("additions", len(additions))))
	defer span.End()

	if err := s.inner.AddStock(ctx, additions); err != nil {
		return s.handleError(ctx, span, err, "restock failed", slog.Int("additions", len(additions)))
	}
	s.logInfo(ctx, "stock added", slog.Int("additions", len(additions)))
	return nil
}

func (s *Service) WarehouseReport(ctx context.Context) ([]types.WarehouseStock, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.WarehouseReport")
	defer span.End()
	report, err := s.inner.WarehouseReport(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "warehouse report failed")
	}
	span.SetAttributes(attribute.Int("report.warehouses", len(report)))
	return report, nil
}

func (s *Service) SKUReport(ctx context.Context) ([]types.SKUStock, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.SKUReport")
	defer span.End()
	report, err := s.inner.SKUReport(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "sku report failed")
	}
	span.SetAttributes(attribute.Int("report.skus", len(report)))
	return report, nil
}

func (s *Service) LocationDetails(ctx context.Context) ([]types.LocationStock, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.LocationDetails")
	defer span.End()
	rows, err := s.inner.LocationDetails(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "location details failed")
	}
	return rows, nil
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
	skusReserved  metric.Int64Counter
	skusShorted   metric.Int64Counter
	reversalsDone metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	reserved, _ := m.Int64Counter("inventory.service.skus_reserved", metric.WithDescription("Number of SKUs successfully reserved"))
	shorted, _ := m.Int64Counter("inventory.service.skus_shorted", metric.WithDescription("Number of SKUs that hit a stock shortage"))
	reversals, _ := m.Int64Counter("inventory.service.reversals", metric.WithDescription("Number of completed stock reversals"))
	return serviceMetrics{skusReserved: reserved, skusShorted: shorted, reversalsDone: reversals}
}

func (m serviceMetrics) recordReservation(ctx context.Context, reserved, shortages int) {
	if m.skusReserved != nil && reserved > 0 {
		m.skusReserved.Add(ctx, int64(reserved))
	}
	if m.skusShorted != nil && shortages > 0 {
		m.skusShorted.Add(ctx, int64(shortages))
	}
}

func (m serviceMetrics) recordReversal(ctx context.Context) {
	if m.reversalsDone != nil {
		m.reversalsDone.Add(ctx, 1)
	}
}

var _ invports.Service = (*Service)(nil)
