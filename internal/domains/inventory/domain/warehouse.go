package domain

import "errors"

// ZIP codes are six-digit postal codes; warehouse coverage is expressed as an
// inclusive [ZipStart, ZipEnd] range.
const (
	ZipMin int64 = 100000
	ZipMax int64 = 999999
)

var (
	ErrInvalidZipRange = errors.New("warehouse zipcode range is invalid")
	ErrEmptyWarehouse  = errors.New("warehouse id is required")
)

// Warehouse is a fulfillment location covering a contiguous ZIP-code range.
// Warehouses are administered outside the core engines and are read-only here.
type Warehouse struct {
	ID       string
	Name     string
	Location string
	ZipStart int64
	ZipEnd   int64
}

// Validate enforces the range invariants. Range disjointness across warehouses
// is an administrative concern and is not checked here.
func (w *Warehouse) Validate() error {
	if w.ID == "" {
		return ErrEmptyWarehouse
	}
	if w.ZipStart < ZipMin || w.ZipEnd > ZipMax || w.ZipStart > w.ZipEnd {
		return ErrInvalidZipRange
	}
	return nil
}

// Covers reports whether the zip falls inside the warehouse range.
func (w *Warehouse) Covers(zip int64) bool {
	return zip >= w.ZipStart && zip <= w.ZipEnd
}
