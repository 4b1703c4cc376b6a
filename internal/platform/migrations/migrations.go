package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&warehouseRecord{},
		&inventoryRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Warehouse schema mirrors the inventory Postgres warehouse store.
type warehouseRecord struct {
	WarehouseID string `gorm:"primaryKey;column:warehouse_id;type:varchar(64)"`
	Name        string `gorm:"column:warehouse_name;type:varchar(100)"`
	Location    string `gorm:"column:location"`
	ZipStart    int64  `gorm:"column:zipcode_start;index:idx_warehouses_zip_range"`
	ZipEnd      int64  `gorm:"column:zipcode_end;index:idx_warehouses_zip_range"`
}

func (warehouseRecord) TableName() string { return "warehouses" }

// Inventory schema mirrors the inventory Postgres record store.
type inventoryRecord struct {
	ID          int64     `gorm:"primaryKey;column:inventory_id"`
	ItemID      int64     `gorm:"column:item_id;index"`
	SKU         int64     `gorm:"column:sku;uniqueIndex:idx_inventory_sku_warehouse"`
	WarehouseID string    `gorm:"column:warehouse_id;type:varchar(64);uniqueIndex:idx_inventory_sku_warehouse"`
	Available   int       `gorm:"column:quantity_available"`
	OnHold      int       `gorm:"column:quantity_on_hold"`
	OnOrder     int       `gorm:"column:quantity_on_order"`
	LastUpdated time.Time `gorm:"column:last_updated_date"`
}

func (inventoryRecord) TableName() string { return "inventory" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	OrderID           string        `gorm:"primaryKey;column:order_id"`
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
	OrderStatus       string        `gorm:"column:order_status;type:varchar(32);index"`
	PaymentStatus     string        `gorm:"column:payment_status;type:varchar(32)"`
	PaymentMethod     string        `gorm:"column:payment_method;type:varchar(32)"`
	EstimatedDelivery time.Time     `gorm:"column:estimated_delivery"`
	OrderDate         time.Time     `gorm:"column:order_date;index"`
	CreatedAt         time.Time     `gorm:"column:created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line items, one row per SKU on an order.
type orderItemRecord struct {
	ID       int64   `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID  string  `gorm:"column:order_id;index"`
	ItemID   int64   `gorm:"column:item_id"`
	SKU      int64   `gorm:"column:sku"`
	Name     string  `gorm:"column:item_name"`
	Quantity int     `gorm:"column:quantity"`
	Price    float64 `gorm:"column:price"`
}

func (orderItemRecord) TableName() string { return "order_items" }
