package ports

import (
	"context"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/domain"
)

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.CreateOrderResult, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	OrderHistory(ctx context.Context, customerID int64) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, id string, input types.UpdateOrderInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, id string) (string, error)
	TrackOrder(ctx context.Context, id string) (string, error)
	ReserveStock(ctx context.Context, lines []invtypes.DemandLine, customerZip int64) (invtypes.ReservationOutcome, error)
}
