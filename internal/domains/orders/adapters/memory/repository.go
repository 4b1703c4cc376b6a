package memory

import (
	"context"
	"sync"

	"github.com/vibecart/scm-service/internal/domains/orders/domain"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
)

// Repository is an in-memory order store used when no database is configured
// and as a test double.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneOrder(order)
	for i, existing := range r.orders {
		if existing.ID == stored.ID {
			r.orders[i] = stored
			return cloneOrder(stored), nil
		}
	}
	r.orders = append(r.orders, stored)
	return cloneOrder(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.ID == id {
			return cloneOrder(order), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, cloneOrder(order))
	}
	return out, nil
}

func (r *Repository) FindByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			out = append(out, cloneOrder(order))
		}
	}
	return out, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.Item{}, order.Items...)
	return &clone
}

var _ ports.Repository = (*Repository)(nil)
