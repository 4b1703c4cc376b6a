//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/vibecart/scm-service/test/pact"

	invmemory "github.com/vibecart/scm-service/internal/domains/inventory/adapters/memory"
	invobs "github.com/vibecart/scm-service/internal/domains/inventory/adapters/observability"
	invapp "github.com/vibecart/scm-service/internal/domains/inventory/application"
	invdomain "github.com/vibecart/scm-service/internal/domains/inventory/domain"
	ordersmemory "github.com/vibecart/scm-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/vibecart/scm-service/internal/domains/orders/adapters/observability"
	ordersapp "github.com/vibecart/scm-service/internal/domains/orders/application"
	orderdomain "github.com/vibecart/scm-service/internal/domains/orders/domain"
	"github.com/vibecart/scm-service/internal/transport/rest"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestScmProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateInventorySeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetInventory()
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetInventory()
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetInventory()
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetInventory()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	records *invmemory.RecordStore
	orders  *ordersmemory.Repository
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	warehouses := invmemory.NewWarehouseStore(
		&invdomain.Warehouse{ID: "INV0001", Name: "Mumbai Warehouse", Location: "Mumbai", ZipStart: 400001, ZipEnd: 400706},
		&invdomain.Warehouse{ID: "INV0002", Name: "Delhi Warehouse", Location: "Delhi", ZipStart: 110001, ZipEnd: 110096},
	)
	records := invmemory.NewRecordStore()
	inventoryService := invobs.New(invapp.NewService(records, warehouses))

	orderRepo := ordersmemory.NewRepository()
	orderService := ordersobs.New(ordersapp.NewService(orderRepo, inventoryService))

	handlers := rest.ApiHandleFunctions{
		InventoryAPI: rest.NewInventoryAPI(inventoryService),
		OrderAPI:     rest.NewOrderAPI(orderService, nil),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = rest.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		records: records,
		orders:  orderRepo,
		server:  server,
	}
}

// resetInventory restores the stock counters before each interaction; seeding
// upserts on (sku, warehouse), so replays never accumulate holds.
func (a *contractProviderApp) resetInventory() {
	a.records.Seed(
		&invdomain.InventoryRecord{ItemID: 10, SKU: pacttest.ExampleSKU, WarehouseID: "INV0001", Available: 45},
		&invdomain.InventoryRecord{ItemID: 20, SKU: 2001, WarehouseID: "INV0002", Available: 20},
	)
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	order := &orderdomain.Order{
		ID:         id,
		CustomerID: pacttest.CustomerID,
		Items: []orderdomain.Item{
			{ItemID: 10, SKU: pacttest.ExampleSKU, Name: "Trail Shoe", Quantity: 2, Price: 100},
		},
		TotalAmount:   200,
		TotalQuantity: 2,
		ShippingZip:   pacttest.CustomerZip,
		Status:        orderdomain.StatusConfirmed,
		PaymentStatus: orderdomain.PaymentPending,
		PaymentMethod: orderdomain.PaymentCOD,
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_, err := a.orders.Save(context.Background(), order)
	require.NoError(t, err)
}
