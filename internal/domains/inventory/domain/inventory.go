package domain

import (
	"errors"
	"time"
)

var (
	// ErrWarehouseNotFound signals that no warehouse range covers a ZIP code.
	ErrWarehouseNotFound = errors.New("no warehouse found")
	// ErrInventoryNotFound signals a SKU with no usable inventory anywhere.
	ErrInventoryNotFound = errors.New("no inventory found")

	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("available quantity is insufficient")
	ErrInsufficientHold  = errors.New("on-order quantity is insufficient")
)

// InventoryRecord tracks stock counters for one (SKU, warehouse) pair.
//
// Available is stock free to reserve, OnHold is reserved but unconfirmed,
// OnOrder is committed-but-not-yet-shipped. The engines guarantee none of the
// three ever goes negative.
type InventoryRecord struct {
	ID          int64
	ItemID      int64
	SKU         int64
	WarehouseID string
	Available   int
	OnHold      int
	OnOrder     int
	LastUpdated time.Time
}

// Reserve moves qty from available into both on-order and on-hold.
func (r *InventoryRecord) Reserve(qty int, now time.Time) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if r.Available < qty {
		return ErrInsufficientStock
	}
	r.Available -= qty
	r.OnOrder += qty
	r.OnHold += qty
	r.LastUpdated = now
	return nil
}

// Drain reserves everything the record has left and returns the drained amount.
func (r *InventoryRecord) Drain(now time.Time) int {
	qty := r.Available
	r.Available = 0
	r.OnOrder += qty
	r.OnHold += qty
	r.LastUpdated = now
	return qty
}

// Release moves qty from on-order back into available. Any matching
// unconfirmed hold is dropped with it.
func (r *InventoryRecord) Release(qty int, now time.Time) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if r.OnOrder < qty {
		return ErrInsufficientHold
	}
	r.OnOrder -= qty
	r.Available += qty
	if r.OnHold > qty {
		r.OnHold -= qty
	} else {
		r.OnHold = 0
	}
	r.LastUpdated = now
	return nil
}

// ReleaseAll releases the entire on-order quantity and returns the amount moved.
func (r *InventoryRecord) ReleaseAll(now time.Time) int {
	qty := r.OnOrder
	r.OnOrder = 0
	r.Available += qty
	if r.OnHold > qty {
		r.OnHold -= qty
	} else {
		r.OnHold = 0
	}
	r.LastUpdated = now
	return qty
}

// ConfirmHold zeroes the on-hold counter once an order is durably created.
// On-order is untouched; it represents committed stock awaiting shipment.
func (r *InventoryRecord) ConfirmHold(now time.Time) {
	r.OnHold = 0
	r.LastUpdated = now
}

// Restock adds qty to available.
func (r *InventoryRecord) Restock(qty int, now time.Time) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	r.Available += qty
	r.LastUpdated = now
	return nil
}

// TotalAvailable sums available quantity across records.
func TotalAvailable(records []*InventoryRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.Available
	}
	return total
}
