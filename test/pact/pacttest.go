//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "scm-api"
	ConsumerName = "storefront-checkout"

	StateInventorySeeded = "warehouse inventory seeded"
	StateOrderExists     = "order with id ord-pact-0001 exists"
	StateOrderMissing    = "no order with id ord-missing"
)

const (
	ExistingOrderID = "ord-pact-0001"
	MissingOrderID  = "ord-missing"

	CustomerID  int64 = 42
	ExampleSKU  int64 = 1276
	CustomerZip int64 = 400050
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable request data for the checkout interaction.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"customerId": CustomerID,
		"items": []map[string]any{
			{
				"itemId":   10,
				"sku":      ExampleSKU,
				"name":     "Trail Shoe",
				"quantity": 2,
				"price":    100.0,
			},
		},
		"totalAmount": 200.0,
		"shippingAddress": map[string]any{
			"address": "12 Hill Road",
			"city":    "Mumbai",
			"state":   "MH",
			"zipcode": "400050",
		},
		"shippingZip":   CustomerZip,
		"paymentMethod": "COD",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
