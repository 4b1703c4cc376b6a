package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates order progression from confirmation through delivery.
type Status string

const (
	StatusConfirmed      Status = "CONFIRMED"
	StatusDispatched     Status = "DISPATCHED"
	StatusShipped        Status = "SHIPPED"
	StatusPickupCourier  Status = "PICKUP_COURIER"
	StatusOnTheWay       Status = "ON_THE_WAY"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusCompleted      Status = "COMPLETED"
)

// PaymentStatus tracks the payment leg of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// PaymentMethod enumerates supported payment options.
type PaymentMethod string

const PaymentCOD PaymentMethod = "COD"

var (
	ErrInvalidOrderID   = errors.New("order id is invalid")
	ErrInvalidOrderData = errors.New("order data is invalid")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
	ErrAlreadyCompleted = errors.New("order is already completed and cannot be cancelled")
	ErrNotCancellable   = errors.New("order has been shipped or is in a non-cancellable state")
)

// Address is a shipping or billing address attached to an order.
type Address struct {
	Address string
	City    string
	State   string
	Zipcode string
}

// Item is one purchasable line of an order.
type Item struct {
	ItemID   int64
	SKU      int64
	Name     string
	Quantity int
	Price    float64
}

// Order is the purchase aggregate managed by the orders bounded context.
type Order struct {
	ID                string
	CustomerID        int64
	Items             []Item
	TotalAmount       float64
	TotalQuantity     int
	ShippingAddress   Address
	BillingAddress    Address
	ShippingZip       int64
	Status            Status
	PaymentStatus     PaymentStatus
	PaymentMethod     PaymentMethod
	EstimatedDelivery time.Time
	OrderDate         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate enforces the aggregate invariants.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return ErrInvalidOrderID
	}
	if o.CustomerID <= 0 || len(o.Items) == 0 {
		return ErrInvalidOrderData
	}
	for _, item := range o.Items {
		if item.SKU <= 0 || item.Quantity <= 0 {
			return ErrInvalidOrderData
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateStatus accepts only known states and defaults to confirmed.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusConfirmed
	}
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	// Payment completes with the order; everything in flight stays pending.
	if status == StatusCompleted {
		o.PaymentStatus = PaymentCompleted
	} else if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	return nil
}

// Cancel transitions the order to cancelled. Only confirmed or dispatched
// orders are cancellable; later stages are already with the courier.
func (o *Order) Cancel(now time.Time) error {
	switch o.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusConfirmed, StatusDispatched:
		o.Status = StatusCancelled
		o.PaymentStatus = PaymentCancelled
		o.UpdatedAt = now
		return nil
	default:
		return ErrNotCancellable
	}
}

// SKUs lists every SKU on the order, in item order.
func (o *Order) SKUs() []int64 {
	skus := make([]int64, 0, len(o.Items))
	for _, item := range o.Items {
		skus = append(skus, item.SKU)
	}
	return skus
}

// StatusMessage renders the customer-facing tracking text for the order state.
func (o *Order) StatusMessage() string {
	switch o.Status {
	case StatusShipped:
		return "Your order has been shipped from logistics."
	case StatusConfirmed:
		return "Your order has been confirmed and is being prepared."
	case StatusDispatched:
		return "Your order has been dispatched and is on its way to the courier."
	case StatusPickupCourier:
		return "Your order is with the courier for pickup."
	case StatusOnTheWay:
		return "Your order is on the way."
	case StatusOutForDelivery:
		return "Your order is out for delivery."
	case StatusDelivered:
		return "Your order has been delivered."
	case StatusCancelled:
		return "Your order has been canceled."
	case StatusCompleted:
		return "Your order is completed."
	default:
		return "Your order is in an undefined state."
	}
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusConfirmed, StatusDispatched, StatusShipped, StatusPickupCourier,
		StatusOnTheWay, StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}
