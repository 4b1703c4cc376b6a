package ports

import (
	"context"
	"errors"

	"github.com/vibecart/scm-service/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order aggregates.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
}
