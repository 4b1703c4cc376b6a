package memory

import (
	"context"
	"sync"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
	"github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

var _ ports.WarehouseStore = (*WarehouseStore)(nil)

// WarehouseStore is an in-memory warehouse adapter.
type WarehouseStore struct {
	mu         sync.RWMutex
	warehouses []*domain.Warehouse
}

func NewWarehouseStore(warehouses ...*domain.Warehouse) *WarehouseStore {
	store := &WarehouseStore{}
	for _, w := range warehouses {
		clone := *w
		store.warehouses = append(store.warehouses, &clone)
	}
	return store
}

// Add registers a warehouse after validating its range.
func (s *WarehouseStore) Add(warehouse *domain.Warehouse) error {
	if err := warehouse.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *warehouse
	s.warehouses = append(s.warehouses, &clone)
	return nil
}

func (s *WarehouseStore) FindByZip(_ context.Context, zip int64) (*domain.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.warehouses {
		if w.Covers(zip) {
			clone := *w
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *WarehouseStore) List(_ context.Context) ([]*domain.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Warehouse, 0, len(s.warehouses))
	for _, w := range s.warehouses {
		clone := *w
		list = append(list, &clone)
	}
	return list, nil
}
