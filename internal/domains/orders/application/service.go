package application

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
	"github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/domain"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
)

// Service orchestrates the order lifecycle: creation reserves stock before
// persisting and confirms the reservation afterwards; cancellation reverts it.
type Service struct {
	repo      ports.Repository
	inventory invports.Service
	events    ports.StockEventPublisher
	now       func() time.Time
	newID     func() string
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides order id generation, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithEventPublisher attaches a best-effort stock event publisher.
func WithEventPublisher(pub ports.StockEventPublisher) Option {
	return func(s *Service) {
		s.events = pub
	}
}

// NewService wires the orders service with its collaborators.
func NewService(repo ports.Repository, inventory invports.Service, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		inventory: inventory,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder reserves stock for every line, persists the order, then confirms
// the reservation. A shortage on any SKU aborts creation: already-reserved
// lines are reverted and ErrStockShortage is returned with the outcome map.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.CreateOrderResult, error) {
	order, err := s.buildOrder(input)
	if err != nil {
		return nil, err
	}

	lines := demandLines(order.Items)
	outcome, err := s.inventory.Reserve(ctx, lines, order.ShippingZip)
	if err != nil {
		return nil, err
	}
	if shorted := shortedLines(outcome, lines); len(shorted) > 0 {
		// Undo the lines that did reserve before reporting the shortage.
		if reserved := reservedLines(outcome, lines); len(reserved) > 0 {
			if err := s.inventory.Revert(ctx, reserved, order.ShippingZip); err != nil {
				return nil, err
			}
		}
		return &types.CreateOrderResult{Reservation: outcome}, ErrStockShortage
	}

	// Estimation is best-effort; reservation just proved stock exists.
	if len(order.Items) > 0 {
		if estimate, err := s.inventory.EstimateDelivery(ctx, order.Items[0].SKU, order.ShippingZip); err == nil {
			order.EstimatedDelivery = estimate
		}
	}

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.Confirm(ctx, saved.SKUs()); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.StockReserved(ctx, saved.ID, saved.ShippingZip, lines)
	}
	return &types.CreateOrderResult{Order: saved, Reservation: outcome}, nil
}

// GetOrderByID loads a single order.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidOrderID
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}
	return order, nil
}

// ListOrders returns every order.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// OrderHistory returns all orders placed by one customer.
func (s *Service) OrderHistory(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	if customerID <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	orders, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errOrderNotFound("customer " + strconv.FormatInt(customerID, 10))
	}
	return orders, nil
}

// UpdateOrder patches an existing order field-wise.
func (s *Service) UpdateOrder(ctx context.Context, id string, input types.UpdateOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidOrderID
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}
	if err := applyPatch(order, input); err != nil {
		return nil, err
	}
	order.UpdatedAt = s.now()
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, order)
}

// CancelOrder cancels a confirmed or dispatched order and reverts its stock
// reservation, restoring the on-order quantity to available.
func (s *Service) CancelOrder(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", domain.ErrInvalidOrderID
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", s.mapNotFound(err, id)
	}
	if err := order.Cancel(s.now()); err != nil {
		return "", err
	}
	if _, err := s.repo.Save(ctx, order); err != nil {
		return "", err
	}
	lines := demandLines(order.Items)
	if err := s.inventory.Revert(ctx, lines, order.ShippingZip); err != nil {
		return "", err
	}
	if s.events != nil {
		s.events.StockReverted(ctx, order.ID, order.ShippingZip, lines)
	}
	return "Order with ID " + order.ID + " cancelled successfully.", nil
}

// TrackOrder renders the customer-facing status text for an order.
func (s *Service) TrackOrder(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", domain.ErrInvalidOrderID
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", s.mapNotFound(err, id)
	}
	return order.StatusMessage(), nil
}

// ReserveStock reserves stock without creating an order, mirroring the
// standalone reservation endpoint used by checkout previews.
func (s *Service) ReserveStock(ctx context.Context, lines []invtypes.DemandLine, customerZip int64) (invtypes.ReservationOutcome, error) {
	return s.inventory.Reserve(ctx, lines, customerZip)
}

func (s *Service) buildOrder(input types.CreateOrderInput) (*domain.Order, error) {
	now := s.now()
	order := &domain.Order{
		ID:              s.newID(),
		CustomerID:      input.CustomerID,
		Items:           append([]domain.Item{}, input.Items...),
		TotalAmount:     input.TotalAmount,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		ShippingZip:     input.ShippingZip,
		PaymentMethod:   input.PaymentMethod,
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range order.Items {
		order.TotalQuantity += item.Quantity
	}
	if err := order.UpdateStatus(""); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) mapNotFound(err error, id string) error {
	if errors.Is(err, ports.ErrNotFound) {
		return errOrderNotFound(id)
	}
	return err
}

func applyPatch(order *domain.Order, input types.UpdateOrderInput) error {
	if input.TotalAmount != nil && *input.TotalAmount > 0 {
		order.TotalAmount = *input.TotalAmount
	}
	if input.TotalQuantity != nil && *input.TotalQuantity > 0 {
		order.TotalQuantity = *input.TotalQuantity
	}
	if input.ShippingAddress != nil {
		order.ShippingAddress = *input.ShippingAddress
	}
	if input.BillingAddress != nil {
		order.BillingAddress = *input.BillingAddress
	}
	if input.ShippingZip != nil {
		order.ShippingZip = *input.ShippingZip
	}
	if input.EstimatedDelivery != nil {
		order.EstimatedDelivery = *input.EstimatedDelivery
	}
	if input.Status != nil {
		// Terminal states cannot be reached through a field patch.
		if order.Status == domain.StatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		if order.Status == domain.StatusCompleted {
			return domain.ErrAlreadyCompleted
		}
		if err := order.UpdateStatus(*input.Status); err != nil {
			return err
		}
	}
	if input.PaymentMethod != nil {
		order.PaymentMethod = *input.PaymentMethod
	}
	if input.Items != nil {
		order.Items = append([]domain.Item{}, input.Items...)
	}
	return nil
}

func demandLines(items []domain.Item) []invtypes.DemandLine {
	lines := make([]invtypes.DemandLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, invtypes.DemandLine{SKU: item.SKU, Quantity: item.Quantity})
	}
	return lines
}

func reservedLines(outcome invtypes.ReservationOutcome, lines []invtypes.DemandLine) []invtypes.DemandLine {
	var reserved []invtypes.DemandLine
	for _, line := range lines {
		if outcome.Reserved(line.SKU) {
			reserved = append(reserved, line)
		}
	}
	return reserved
}

func shortedLines(outcome invtypes.ReservationOutcome, lines []invtypes.DemandLine) []invtypes.DemandLine {
	var shorted []invtypes.DemandLine
	for _, line := range lines {
		if !outcome.Reserved(line.SKU) {
			shorted = append(shorted, line)
		}
	}
	return shorted
}

var _ ports.Service = (*Service)(nil)
