package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	invmemory "github.com/vibecart/scm-service/internal/domains/inventory/adapters/memory"
	invapp "github.com/vibecart/scm-service/internal/domains/inventory/application"
	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	invdomain "github.com/vibecart/scm-service/internal/domains/inventory/domain"
	ordersmemory "github.com/vibecart/scm-service/internal/domains/orders/adapters/memory"
	"github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/domain"
)

var fixedNow = time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	repo    *ordersmemory.Repository
	records *invmemory.RecordStore
	events  *capturingPublisher
}

type capturingPublisher struct {
	reserved []string
	reverted []string
}

func (p *capturingPublisher) StockReserved(_ context.Context, orderID string, _ int64, _ []invtypes.DemandLine) {
	p.reserved = append(p.reserved, orderID)
}

func (p *capturingPublisher) StockReverted(_ context.Context, orderID string, _ int64, _ []invtypes.DemandLine) {
	p.reverted = append(p.reverted, orderID)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	warehouses := invmemory.NewWarehouseStore(
		&invdomain.Warehouse{ID: "INV0001", Name: "Mumbai Warehouse", Location: "Mumbai", ZipStart: 400001, ZipEnd: 400706},
		&invdomain.Warehouse{ID: "INV0002", Name: "Delhi Warehouse", Location: "Delhi", ZipStart: 110001, ZipEnd: 110096},
	)
	records := invmemory.NewRecordStore()
	records.Seed(
		&invdomain.InventoryRecord{ItemID: 10, SKU: 1276, WarehouseID: "INV0001", Available: 45},
		&invdomain.InventoryRecord{ItemID: 20, SKU: 2001, WarehouseID: "INV0001", Available: 30},
		&invdomain.InventoryRecord{ItemID: 20, SKU: 2001, WarehouseID: "INV0002", Available: 20},
	)
	inventory := invapp.NewService(records, warehouses, invapp.WithClock(func() time.Time { return fixedNow }))

	repo := ordersmemory.NewRepository()
	events := &capturingPublisher{}
	nextID := 0
	svc := NewService(repo, inventory,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { nextID++; return "ord-0001" }),
		WithEventPublisher(events),
	)
	return &fixture{svc: svc, repo: repo, records: records, events: events}
}

func createInput() types.CreateOrderInput {
	return types.CreateOrderInput{
		CustomerID: 42,
		Items: []domain.Item{
			{ItemID: 10, SKU: 1276, Name: "Trail Shoe", Quantity: 15, Price: 100},
		},
		TotalAmount:   1500,
		ShippingZip:   400050,
		PaymentMethod: domain.PaymentCOD,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)
	require.Equal(t, "ord-0001", result.Order.ID)
	require.Equal(t, domain.StatusConfirmed, result.Order.Status)
	require.Equal(t, domain.PaymentPending, result.Order.PaymentStatus)
	require.Equal(t, 15, result.Order.TotalQuantity)
	require.Equal(t, invtypes.StatusReserved, result.Reservation[1276])
	require.Equal(t, time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC), result.Order.EstimatedDelivery)

	// Hold is confirmed once the order is persisted.
	rec, err := f.records.FindBySKUAndWarehouse(context.Background(), 1276, "INV0001")
	require.NoError(t, err)
	require.Equal(t, 30, rec.Available)
	require.Equal(t, 0, rec.OnHold)
	require.Equal(t, 15, rec.OnOrder)

	stored, err := f.repo.GetByID(context.Background(), "ord-0001")
	require.NoError(t, err)
	require.Equal(t, int64(42), stored.CustomerID)
	require.Equal(t, []string{"ord-0001"}, f.events.reserved)
}

func TestCreateOrder_ShortageAborts(t *testing.T) {
	f := newFixture(t)
	input := createInput()
	input.Items = []domain.Item{
		{ItemID: 10, SKU: 1276, Name: "Trail Shoe", Quantity: 10, Price: 100},
		{ItemID: 20, SKU: 2001, Name: "Day Pack", Quantity: 60, Price: 50},
	}

	result, err := f.svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrStockShortage)
	require.NotNil(t, result)
	require.Nil(t, result.Order)
	require.Equal(t, invtypes.StatusReserved, result.Reservation[1276])
	require.Contains(t, result.Reservation[2001], "Not enough stock")

	// The reserved line is rolled back; nothing is persisted.
	rec, err := f.records.FindBySKUAndWarehouse(context.Background(), 1276, "INV0001")
	require.NoError(t, err)
	require.Equal(t, 45, rec.Available)
	require.Equal(t, 0, rec.OnHold)
	require.Equal(t, 0, rec.OnOrder)

	orders, err := f.repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
	require.Empty(t, f.events.reserved)
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	f := newFixture(t)
	input := createInput()
	input.Items = nil

	_, err := f.svc.CreateOrder(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInvalidOrderData)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetOrderByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrOrderNotFound)
	require.ErrorContains(t, err, "missing")
}

func TestOrderHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)

	orders, err := f.svc.OrderHistory(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = f.svc.OrderHistory(context.Background(), 77)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrder_PatchesFields(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)

	status := domain.StatusShipped
	updated, err := f.svc.UpdateOrder(context.Background(), result.Order.ID, types.UpdateOrderInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, updated.Status)
}

func TestUpdateOrder_RejectsTerminalStates(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)
	_, err = f.svc.CancelOrder(context.Background(), result.Order.ID)
	require.NoError(t, err)

	status := domain.StatusShipped
	_, err = f.svc.UpdateOrder(context.Background(), result.Order.ID, types.UpdateOrderInput{Status: &status})
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)

	message, err := f.svc.CancelOrder(context.Background(), result.Order.ID)
	require.NoError(t, err)
	require.Equal(t, "Order with ID ord-0001 cancelled successfully.", message)

	stored, err := f.repo.GetByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, stored.Status)
	require.Equal(t, domain.PaymentCancelled, stored.PaymentStatus)

	rec, err := f.records.FindBySKUAndWarehouse(context.Background(), 1276, "INV0001")
	require.NoError(t, err)
	require.Equal(t, 45, rec.Available)
	require.Equal(t, 0, rec.OnOrder)
	require.Equal(t, []string{"ord-0001"}, f.events.reverted)
}

func TestCancelOrder_AlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)
	_, err = f.svc.CancelOrder(context.Background(), result.Order.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelOrder(context.Background(), result.Order.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancelOrder_ShippedIsNotCancellable(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)

	status := domain.StatusShipped
	_, err = f.svc.UpdateOrder(context.Background(), result.Order.ID, types.UpdateOrderInput{Status: &status})
	require.NoError(t, err)

	_, err = f.svc.CancelOrder(context.Background(), result.Order.ID)
	require.ErrorIs(t, err, domain.ErrNotCancellable)
}

func TestTrackOrder(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.CreateOrder(context.Background(), createInput())
	require.NoError(t, err)

	message, err := f.svc.TrackOrder(context.Background(), result.Order.ID)
	require.NoError(t, err)
	require.Equal(t, "Your order has been confirmed and is being prepared.", message)
}

func TestReserveStock_Passthrough(t *testing.T) {
	f := newFixture(t)
	outcome, err := f.svc.ReserveStock(context.Background(), []invtypes.DemandLine{{SKU: 1276, Quantity: 5}}, 400001)
	require.NoError(t, err)
	require.Equal(t, invtypes.StatusReserved, outcome[1276])
}
