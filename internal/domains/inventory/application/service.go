package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
	"github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

// Delivery lead times assumed by the estimator: two days when the customer's
// own warehouse holds stock, five when it has to ship from another one.
const (
	localDeliveryDays  = 2
	remoteDeliveryDays = 5
)

// Service implements the stock reservation, reversal, confirmation, estimation,
// and reporting engines on top of the record and warehouse stores.
//
// Each top-level call is expected to run inside one transaction supplied by the
// persistence adapter; the engines mutate and persist records one at a time and
// rely on the store's row locking for concurrent writers.
type Service struct {
	records    ports.RecordStore
	warehouses ports.WarehouseStore
	now        func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the inventory engines with their stores.
func NewService(records ports.RecordStore, warehouses ports.WarehouseStore, opts ...Option) *Service {
	s := &Service{records: records, warehouses: warehouses, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Reserve allocates each demand line against the warehouse nearest to the
// customer's ZIP, spilling the remainder across other warehouses in descending
// order of available stock. SKUs are processed independently: a shortage is
// recorded in the outcome map while the rest of the batch proceeds. Only a
// ZIP with no covering warehouse or a SKU with no inventory anywhere aborts
// the call.
func (s *Service) Reserve(ctx context.Context, lines []types.DemandLine, customerZip int64) (types.ReservationOutcome, error) {
	outcome := types.ReservationOutcome{}
	if len(lines) == 0 {
		return outcome, nil
	}
	nearest, err := s.locate(ctx, customerZip)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err := s.reserveLine(ctx, line, nearest, outcome); err != nil {
			return nil, err
		}
		if _, ok := outcome[line.SKU]; !ok {
			outcome[line.SKU] = types.StatusReserved
		}
	}
	return outcome, nil
}

func (s *Service) reserveLine(ctx context.Context, line types.DemandLine, nearest *domain.Warehouse, outcome types.ReservationOutcome) error {
	record, err := s.records.FindBySKUAndWarehouse(ctx, line.SKU, nearest.ID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		// SKU absent from the nearest warehouse: substitute the best-stocked
		// record elsewhere, or fail if the SKU exists nowhere.
		others, err := s.records.FindAvailableExcluding(ctx, line.SKU, nearest.ID)
		if err != nil {
			return err
		}
		if len(others) == 0 {
			return errNoInventoryAnywhere(line.SKU)
		}
		record = others[0]
	case err != nil:
		return err
	}

	now := s.today()
	if record.Available >= line.Quantity {
		if err := record.Reserve(line.Quantity, now); err != nil {
			return err
		}
		return s.records.Save(ctx, record)
	}

	// The single record cannot cover the line; check whether the SKU's total
	// stock can before mutating anything.
	all, err := s.records.FindBySKU(ctx, line.SKU)
	if err != nil {
		return err
	}
	if domain.TotalAvailable(all) < line.Quantity {
		outcome[line.SKU] = shortageMessage(line.SKU)
		return nil
	}

	remaining := line.Quantity - record.Drain(now)
	if err := s.records.Save(ctx, record); err != nil {
		return err
	}

	others, err := s.records.FindAvailableExcluding(ctx, line.SKU, nearest.ID)
	if err != nil {
		return err
	}
	for _, other := range others {
		if remaining <= 0 {
			break
		}
		if other.Available >= remaining {
			if err := other.Reserve(remaining, now); err != nil {
				return err
			}
			remaining = 0
		} else {
			remaining -= other.Drain(now)
		}
		if err := s.records.Save(ctx, other); err != nil {
			return err
		}
	}
	return nil
}

// Revert undoes a reservation's on-order commitment, nearest warehouse first,
// then the others. It fails when the requested quantity cannot be fully
// restored from on-order stock.
func (s *Service) Revert(ctx context.Context, lines []types.DemandLine, customerZip int64) error {
	if len(lines) == 0 {
		return nil
	}
	nearest, err := s.locate(ctx, customerZip)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := s.revertLine(ctx, line, nearest); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) revertLine(ctx context.Context, line types.DemandLine, nearest *domain.Warehouse) error {
	now := s.today()
	remaining := line.Quantity

	record, err := s.records.FindBySKUAndWarehouse(ctx, line.SKU, nearest.ID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	if record != nil {
		if record.OnOrder >= remaining {
			if err := record.Release(remaining, now); err != nil {
				return err
			}
			remaining = 0
		} else {
			remaining -= record.ReleaseAll(now)
		}
		if err := s.records.Save(ctx, record); err != nil {
			return err
		}
	}

	if remaining > 0 {
		others, err := s.records.FindAvailableExcluding(ctx, line.SKU, nearest.ID)
		if err != nil {
			return err
		}
		for _, other := range others {
			if remaining <= 0 {
				break
			}
			qty := min(other.OnOrder, remaining)
			if qty == 0 {
				continue
			}
			if err := other.Release(qty, now); err != nil {
				return err
			}
			if err := s.records.Save(ctx, other); err != nil {
				return err
			}
			remaining -= qty
		}
	}

	if remaining > 0 {
		return errRevertShortfall(line.SKU)
	}
	return nil
}

// Confirm zeroes the on-hold counter for every record holding stock for the
// given SKUs, releasing the hold once the order is durably created.
func (s *Service) Confirm(ctx context.Context, skus []int64) error {
	now := s.today()
	for _, sku := range skus {
		held, err := s.records.FindOnHoldBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if len(held) == 0 {
			return errNoHoldStock(sku)
		}
		for _, record := range held {
			record.ConfirmHold(now)
			if err := s.records.Save(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

// EstimateDelivery returns the expected delivery date for a SKU shipped to a
// ZIP: today+2 when the ZIP's own warehouse has stock, today+5 when only
// another warehouse does.
func (s *Service) EstimateDelivery(ctx context.Context, sku, zip int64) (time.Time, error) {
	warehouse, err := s.warehouses.FindByZip(ctx, zip)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return time.Time{}, errDeliveryNotAvailable(zip)
		}
		return time.Time{}, err
	}

	record, err := s.records.FindBySKUAndWarehouse(ctx, sku, warehouse.ID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return time.Time{}, err
	}
	if record != nil && record.Available > 0 {
		return s.today().AddDate(0, 0, localDeliveryDays), nil
	}

	all, err := s.records.FindBySKU(ctx, sku)
	if err != nil {
		return time.Time{}, err
	}
	for _, rec := range all {
		if rec.Available > 0 {
			return s.today().AddDate(0, 0, remoteDeliveryDays), nil
		}
	}
	return time.Time{}, errNoStockAnywhere(sku)
}

// CheckQuantities returns the total available quantity per SKU, in input order.
func (s *Service) CheckQuantities(ctx context.Context, skus []int64) ([]int, error) {
	totals := make([]int, 0, len(skus))
	for _, sku := range skus {
		records, err := s.records.FindBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		totals = append(totals, domain.TotalAvailable(records))
	}
	return totals, nil
}

// QuantityBySKU sums available stock for a SKU across all warehouses.
func (s *Service) QuantityBySKU(ctx context.Context, sku int64) (int, error) {
	records, err := s.records.FindBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, errNoInventoryAnywhere(sku)
	}
	return domain.TotalAvailable(records), nil
}

// QuantityByItem sums available stock for an item across all warehouses.
func (s *Service) QuantityByItem(ctx context.Context, itemID int64) (int, error) {
	records, err := s.records.FindByItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, errNoInventoryAnywhere(itemID)
	}
	return domain.TotalAvailable(records), nil
}

// AddStock restocks one or more existing (SKU, warehouse) records.
func (s *Service) AddStock(ctx context.Context, additions []types.StockAddition) error {
	now := s.today()
	for _, add := range additions {
		record, err := s.records.FindBySKUAndWarehouse(ctx, add.SKU, add.WarehouseID)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return errNoRecord(add.SKU, add.WarehouseID)
			}
			return err
		}
		if err := record.Restock(add.Quantity, now); err != nil {
			return err
		}
		if err := s.records.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// WarehouseReport sums available and reserved stock per warehouse.
func (s *Service) WarehouseReport(ctx context.Context) ([]types.WarehouseStock, error) {
	warehouses, err := s.warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	report := make([]types.WarehouseStock, 0, len(warehouses))
	for _, warehouse := range warehouses {
		records, err := s.records.FindByWarehouse(ctx, warehouse.ID)
		if err != nil {
			return nil, err
		}
		row := types.WarehouseStock{WarehouseID: warehouse.ID}
		for _, rec := range records {
			row.Available += rec.Available
			row.Reserved += rec.OnHold
		}
		row.Total = row.Available + row.Reserved
		report = append(report, row)
	}
	return report, nil
}

// SKUReport groups every record by SKU and sums the counters.
func (s *Service) SKUReport(ctx context.Context) ([]types.SKUStock, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	bySKU := map[int64]*types.SKUStock{}
	for _, rec := range records {
		row, ok := bySKU[rec.SKU]
		if !ok {
			row = &types.SKUStock{SKU: rec.SKU}
			bySKU[rec.SKU] = row
		}
		row.Available += rec.Available
		row.Reserved += rec.OnHold
	}
	report := make([]types.SKUStock, 0, len(bySKU))
	for _, row := range bySKU {
		row.Total = row.Available + row.Reserved
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].SKU < report[j].SKU })
	return report, nil
}

// LocationDetails flattens every inventory record into one report row.
func (s *Service) LocationDetails(ctx context.Context) ([]types.LocationStock, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]types.LocationStock, 0, len(records))
	for _, rec := range records {
		rows = append(rows, types.LocationStock{
			WarehouseID: rec.WarehouseID,
			SKU:         rec.SKU,
			Available:   rec.Available,
			Reserved:    rec.OnHold,
			Total:       rec.Available + rec.OnHold,
		})
	}
	return rows, nil
}

func (s *Service) locate(ctx context.Context, zip int64) (*domain.Warehouse, error) {
	warehouse, err := s.warehouses.FindByZip(ctx, zip)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, errNoWarehouseForZip(zip)
		}
		return nil, err
	}
	return warehouse, nil
}

// today truncates the clock to a calendar date; last-updated stamps and
// delivery estimates are date-granular.
func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var _ ports.Service = (*Service)(nil)
