package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
	"github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

var _ ports.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory inventory record adapter. Records keep their
// insertion order, matching the row order a relational store would return for
// unordered scans.
type RecordStore struct {
	mu      sync.RWMutex
	records []*domain.InventoryRecord
	nextID  int64
}

func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Seed loads initial records, mainly for tests and local runs.
func (s *RecordStore) Seed(records ...*domain.InventoryRecord) {
	for _, rec := range records {
		_ = s.Save(context.Background(), rec)
	}
}

func (s *RecordStore) FindBySKUAndWarehouse(_ context.Context, sku int64, warehouseID string) (*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.SKU == sku && rec.WarehouseID == warehouseID {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *RecordStore) FindBySKU(_ context.Context, sku int64) ([]*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(rec *domain.InventoryRecord) bool {
		return rec.SKU == sku
	}), nil
}

func (s *RecordStore) FindAvailableExcluding(_ context.Context, sku int64, excludedWarehouseID string) ([]*domain.InventoryRecord, error) {
	s.mu.RLock()
	matches := s.collect(func(rec *domain.InventoryRecord) bool {
		if rec.SKU != sku || rec.Available <= 0 {
			return false
		}
		return excludedWarehouseID == "" || rec.WarehouseID != excludedWarehouseID
	})
	s.mu.RUnlock()
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Available > matches[j].Available
	})
	return matches, nil
}

func (s *RecordStore) FindOnHoldBySKU(_ context.Context, sku int64) ([]*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(rec *domain.InventoryRecord) bool {
		return rec.SKU == sku && rec.OnHold > 0
	}), nil
}

func (s *RecordStore) FindByWarehouse(_ context.Context, warehouseID string) ([]*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(rec *domain.InventoryRecord) bool {
		return rec.WarehouseID == warehouseID
	}), nil
}

func (s *RecordStore) FindByItem(_ context.Context, itemID int64) ([]*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(rec *domain.InventoryRecord) bool {
		return rec.ItemID == itemID
	}), nil
}

func (s *RecordStore) List(_ context.Context) ([]*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(*domain.InventoryRecord) bool { return true }), nil
}

func (s *RecordStore) Save(_ context.Context, record *domain.InventoryRecord) error {
	if record == nil {
		return errors.New("inventory record is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *record
	for i, existing := range s.records {
		if existing.SKU == clone.SKU && existing.WarehouseID == clone.WarehouseID {
			clone.ID = existing.ID
			s.records[i] = &clone
			record.ID = clone.ID
			return nil
		}
	}
	if clone.ID == 0 {
		s.nextID++
		clone.ID = s.nextID
	} else if clone.ID > s.nextID {
		s.nextID = clone.ID
	}
	s.records = append(s.records, &clone)
	record.ID = clone.ID
	return nil
}

func (s *RecordStore) collect(keep func(*domain.InventoryRecord) bool) []*domain.InventoryRecord {
	var matches []*domain.InventoryRecord
	for _, rec := range s.records {
		if keep(rec) {
			clone := *rec
			matches = append(matches, &clone)
		}
	}
	return matches
}
