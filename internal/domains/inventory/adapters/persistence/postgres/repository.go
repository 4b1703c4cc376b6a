package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
	"github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

var _ ports.RecordStore = (*RecordStore)(nil)

// RecordStore persists inventory records in PostgreSQL using GORM.
type RecordStore struct {
	db *gorm.DB
}

// NewRecordStore wires a PostgreSQL-backed record store. Caller manages DB lifecycle.
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// inventoryRecord maps the inventory counters to a relational table.
type inventoryRecord struct {
	ID          int64     `gorm:"primaryKey;column:inventory_id;autoIncrement"`
	ItemID      int64     `gorm:"column:item_id;index"`
	SKU         int64     `gorm:"column:sku;uniqueIndex:idx_inventory_sku_warehouse;index"`
	WarehouseID string    `gorm:"column:warehouse_id;type:varchar(64);uniqueIndex:idx_inventory_sku_warehouse"`
	Available   int       `gorm:"column:quantity_available"`
	OnHold      int       `gorm:"column:quantity_on_hold"`
	OnOrder     int       `gorm:"column:quantity_on_order"`
	LastUpdated time.Time `gorm:"column:last_updated_date"`
}

func (inventoryRecord) TableName() string { return "inventory" }

func (s *RecordStore) FindBySKUAndWarehouse(ctx context.Context, sku int64, warehouseID string) (*domain.InventoryRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record inventoryRecord
	err := s.db.WithContext(ctx).
		First(&record, "sku = ? AND warehouse_id = ?", sku, warehouseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (s *RecordStore) FindBySKU(ctx context.Context, sku int64) ([]*domain.InventoryRecord, error) {
	return s.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("sku = ?", sku).Order("inventory_id")
	})
}

func (s *RecordStore) FindAvailableExcluding(ctx context.Context, sku int64, excludedWarehouseID string) ([]*domain.InventoryRecord, error) {
	return s.find(ctx, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("sku = ? AND quantity_available > 0", sku)
		if excludedWarehouseID != "" {
			tx = tx.Where("warehouse_id <> ?", excludedWarehouseID)
		}
		return tx.Order("quantity_available DESC")
	})
}

func (s *RecordStore) FindOnHoldBySKU(ctx context.Context, sku int64) ([]*domain.InventoryRecord, error) {
	return s.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("sku = ? AND quantity_on_hold > 0", sku).Order("inventory_id")
	})
}

func (s *RecordStore) FindByWarehouse(ctx context.Context, warehouseID string) ([]*domain.InventoryRecord, error) {
	return s.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("warehouse_id = ?", warehouseID).Order("inventory_id")
	})
}

func (s *RecordStore) FindByItem(ctx context.Context, itemID int64) ([]*domain.InventoryRecord, error) {
	return s.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("item_id = ?", itemID).Order("inventory_id")
	})
}

func (s *RecordStore) List(ctx context.Context) ([]*domain.InventoryRecord, error) {
	return s.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("inventory_id")
	})
}

// Save upserts a record on its (sku, warehouse_id) identity.
func (s *RecordStore) Save(ctx context.Context, record *domain.InventoryRecord) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if record == nil {
		return errors.New("inventory record is nil")
	}
	row := toRecord(record)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sku"}, {Name: "warehouse_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"item_id":            row.ItemID,
				"quantity_available": row.Available,
				"quantity_on_hold":   row.OnHold,
				"quantity_on_order":  row.OnOrder,
				"last_updated_date":  row.LastUpdated,
			}),
		}).Create(&row).Error
	if err != nil {
		return err
	}
	record.ID = row.ID
	return nil
}

func (s *RecordStore) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.InventoryRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []inventoryRecord
	if err := scope(s.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]*domain.InventoryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toDomain())
	}
	return records, nil
}

func (s *RecordStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres inventory record store not configured")
	}
	return nil
}

func toRecord(record *domain.InventoryRecord) inventoryRecord {
	return inventoryRecord{
		ID:          record.ID,
		ItemID:      record.ItemID,
		SKU:         record.SKU,
		WarehouseID: record.WarehouseID,
		Available:   record.Available,
		OnHold:      record.OnHold,
		OnOrder:     record.OnOrder,
		LastUpdated: record.LastUpdated,
	}
}

func (r inventoryRecord) toDomain() *domain.InventoryRecord {
	return &domain.InventoryRecord{
		ID:          r.ID,
		ItemID:      r.ItemID,
		SKU:         r.SKU,
		WarehouseID: r.WarehouseID,
		Available:   r.Available,
		OnHold:      r.OnHold,
		OnOrder:     r.OnOrder,
		LastUpdated: r.LastUpdated,
	}
}
