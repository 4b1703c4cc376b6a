// Package types carries the plain data values exchanged with the inventory
// engines. Demand lines are ephemeral inputs; nothing here is persisted.
package types

// DemandLine is one line of a customer's order at reservation or reversal time.
type DemandLine struct {
	SKU      int64
	Quantity int
}

// StockAddition restocks one (SKU, warehouse) record.
type StockAddition struct {
	SKU         int64
	WarehouseID string
	Quantity    int
}

// ReservationOutcome maps each requested SKU to a human-readable status.
type ReservationOutcome map[int64]string

// Reserved reports whether the outcome for sku is a successful reservation.
func (o ReservationOutcome) Reserved(sku int64) bool {
	return o[sku] == StatusReserved
}

// Outcome status strings. Shortages are recorded here rather than returned as
// errors so the remaining SKUs in a batch still get processed.
const StatusReserved = "Inventory updated with stock reservation"

// WarehouseStock aggregates counters across one warehouse.
type WarehouseStock struct {
	WarehouseID string
	Available   int
	Reserved    int
	Total       int
}

// SKUStock aggregates counters across all warehouses for one SKU.
type SKUStock struct {
	SKU       int64
	Available int
	Reserved  int
	Total     int
}

// LocationStock is one flattened (warehouse, SKU) inventory row.
type LocationStock struct {
	WarehouseID string
	SKU         int64
	Available   int
	Reserved    int
	Total       int
}
