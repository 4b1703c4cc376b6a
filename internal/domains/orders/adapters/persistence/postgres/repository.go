package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibecart/scm-service/internal/domains/orders/domain"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
)

type orderRecord struct {
	OrderID           string        `gorm:"column:order_id;primaryKey"`
	CustomerID        int64         `gorm:"column:customer_id;index"`
	TotalAmount       float64       `gorm:"column:total_amount"`
	TotalQuantity     int           `gorm:"column:total_quantity"`
	SkuList           pq.Int64Array `gorm:"column:sku_list;type:bigint[]"`
	ShippingAddress   string        `gorm:"column:shipping_address"`
	ShippingCity      string        `gorm:"column:shipping_city"`
	ShippingState     string        `gorm:"column:shipping_state"`
	ShippingZipcode   string        `gorm:"column:shipping_zipcode"`
	BillingAddress    string        `gorm:"column:billing_address"`
	BillingCity       string        `gorm:"column:billing_city"`
	BillingState      string        `gorm:"column:billing_state"`
	BillingZipcode    string        `gorm:"column:billing_zipcode"`
	ShippingZip       int64         `gorm:"column:shipping_zip"`
	OrderStatus       string        `gorm:"column:order_status"`
	PaymentStatus     string        `gorm:"column:payment_status"`
	PaymentMethod     string        `gorm:"column:payment_method"`
	EstimatedDelivery time.Time     `gorm:"column:estimated_delivery"`
	OrderDate         time.Time     `gorm:"column:order_date"`
	CreatedAt         time.Time     `gorm:"column:created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID  string  `gorm:"column:order_id;index"`
	ItemID   int64   `gorm:"column:item_id"`
	SKU      int64   `gorm:"column:sku"`
	Name     string  `gorm:"column:item_name"`
	Quantity int     `gorm:"column:quantity"`
	Price    float64 `gorm:"column:price"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Repository persists orders in PostgreSQL. Line items live in their own
// table keyed by order id; the sku_list array column keeps warehouse-side
// reporting queries from joining through order_items.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, items := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", record.OrderID).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("saving order %s: %w", order.ID, err)
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "order_id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	items, err := r.itemsFor(ctx, record.OrderID)
	if err != nil {
		return nil, err
	}
	return toDomain(record, items), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("order_date").Find(&records).Error; err != nil {
		return nil, mapError(err)
	}
	return r.hydrate(ctx, records)
}

func (r *Repository) FindByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date").
		Find(&records).Error; err != nil {
		return nil, mapError(err)
	}
	return r.hydrate(ctx, records)
}

func (r *Repository) hydrate(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		items, err := r.itemsFor(ctx, record.OrderID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, toDomain(record, items))
	}
	return orders, nil
}

func (r *Repository) itemsFor(ctx context.Context, orderID string) ([]orderItemRecord, error) {
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r.db == nil {
		return errors.New("postgres order repository: nil database handle")
	}
	return nil
}

func toRecord(order *domain.Order) (orderRecord, []orderItemRecord) {
	record := orderRecord{
		OrderID:           order.ID,
		CustomerID:        order.CustomerID,
		TotalAmount:       order.TotalAmount,
		TotalQuantity:     order.TotalQuantity,
		SkuList:           pq.Int64Array(order.SKUs()),
		ShippingAddress:   order.ShippingAddress.Address,
		ShippingCity:      order.ShippingAddress.City,
		ShippingState:     order.ShippingAddress.State,
		ShippingZipcode:   order.ShippingAddress.Zipcode,
		BillingAddress:    order.BillingAddress.Address,
		BillingCity:       order.BillingAddress.City,
		BillingState:      order.BillingAddress.State,
		BillingZipcode:    order.BillingAddress.Zipcode,
		ShippingZip:       order.ShippingZip,
		OrderStatus:       string(order.Status),
		PaymentStatus:     string(order.PaymentStatus),
		PaymentMethod:     string(order.PaymentMethod),
		EstimatedDelivery: order.EstimatedDelivery,
		OrderDate:         order.OrderDate,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemRecord{
			OrderID:  order.ID,
			ItemID:   item.ItemID,
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return record, items
}

func toDomain(record orderRecord, items []orderItemRecord) *domain.Order {
	order := &domain.Order{
		ID:            record.OrderID,
		CustomerID:    record.CustomerID,
		TotalAmount:   record.TotalAmount,
		TotalQuantity: record.TotalQuantity,
		ShippingAddress: domain.Address{
			Address: record.ShippingAddress,
			City:    record.ShippingCity,
			State:   record.ShippingState,
			Zipcode: record.ShippingZipcode,
		},
		BillingAddress: domain.Address{
			Address: record.BillingAddress,
			City:    record.BillingCity,
			State:   record.BillingState,
			Zipcode: record.BillingZipcode,
		},
		ShippingZip:       record.ShippingZip,
		Status:            domain.Status(record.OrderStatus),
		PaymentStatus:     domain.PaymentStatus(record.PaymentStatus),
		PaymentMethod:     domain.PaymentMethod(record.PaymentMethod),
		EstimatedDelivery: record.EstimatedDelivery,
		OrderDate:         record.OrderDate,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
	order.Items = make([]domain.Item, 0, len(items))
	for _, item := range items {
		order.Items = append(order.Items, domain.Item{
			ItemID:   item.ItemID,
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return order
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

var _ ports.Repository = (*Repository)(nil)
