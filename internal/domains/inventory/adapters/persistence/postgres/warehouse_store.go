package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
	"github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

var _ ports.WarehouseStore = (*WarehouseStore)(nil)

// WarehouseStore reads warehouse coverage ranges from PostgreSQL.
type WarehouseStore struct {
	db *gorm.DB
}

func NewWarehouseStore(db *gorm.DB) *WarehouseStore {
	return &WarehouseStore{db: db}
}

type warehouseRecord struct {
	ID       string `gorm:"primaryKey;column:warehouse_id;type:varchar(64)"`
	Name     string `gorm:"column:warehouse_name;type:varchar(100)"`
	Location string `gorm:"column:location"`
	ZipStart int64  `gorm:"column:zipcode_start"`
	ZipEnd   int64  `gorm:"column:zipcode_end"`
}

func (warehouseRecord) TableName() string { return "warehouses" }

// FindByZip resolves the warehouse whose range contains the zip.
func (s *WarehouseStore) FindByZip(ctx context.Context, zip int64) (*domain.Warehouse, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record warehouseRecord
	err := s.db.WithContext(ctx).
		First(&record, "? BETWEEN zipcode_start AND zipcode_end", zip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (s *WarehouseStore) List(ctx context.Context) ([]*domain.Warehouse, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []warehouseRecord
	if err := s.db.WithContext(ctx).Order("warehouse_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	warehouses := make([]*domain.Warehouse, 0, len(rows))
	for i := range rows {
		warehouses = append(warehouses, rows[i].toDomain())
	}
	return warehouses, nil
}

// Save inserts or updates a warehouse; used by seeding and admin tooling.
func (s *WarehouseStore) Save(ctx context.Context, warehouse *domain.Warehouse) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if warehouse == nil {
		return errors.New("warehouse is nil")
	}
	if err := warehouse.Validate(); err != nil {
		return err
	}
	record := warehouseRecord{
		ID:       warehouse.ID,
		Name:     warehouse.Name,
		Location: warehouse.Location,
		ZipStart: warehouse.ZipStart,
		ZipEnd:   warehouse.ZipEnd,
	}
	return s.db.WithContext(ctx).Save(&record).Error
}

func (s *WarehouseStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres warehouse store not configured")
	}
	return nil
}

func (r warehouseRecord) toDomain() *domain.Warehouse {
	return &domain.Warehouse{
		ID:       r.ID,
		Name:     r.Name,
		Location: r.Location,
		ZipStart: r.ZipStart,
		ZipEnd:   r.ZipEnd,
	}
}
