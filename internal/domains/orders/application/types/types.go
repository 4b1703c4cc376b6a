// Package types carries the plain inputs and outputs of the orders use cases.
package types

import (
	"time"

	"github.com/vibecart/scm-service/internal/domains/orders/domain"
)

// CreateOrderInput is the payload for placing a new order. The ID is assigned
// by the service.
type CreateOrderInput struct {
	CustomerID      int64
	Items           []domain.Item
	TotalAmount     float64
	ShippingAddress domain.Address
	BillingAddress  domain.Address
	ShippingZip     int64
	PaymentMethod   domain.PaymentMethod
	// IdempotencyKey deduplicates checkout submissions; empty disables dedup.
	IdempotencyKey string
}

// UpdateOrderInput patches an existing order field-wise; nil means unchanged.
type UpdateOrderInput struct {
	TotalAmount       *float64
	TotalQuantity     *int
	ShippingAddress   *domain.Address
	BillingAddress    *domain.Address
	ShippingZip       *int64
	Status            *domain.Status
	PaymentMethod     *domain.PaymentMethod
	EstimatedDelivery *time.Time
	Items             []domain.Item
}

// CreateOrderResult bundles the persisted order with the per-SKU reservation
// outcome that preceded it.
type CreateOrderResult struct {
	Order       *domain.Order
	Reservation map[int64]string
}
