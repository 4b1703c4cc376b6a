// Command console prints the current inventory position to stdout. It is the
// operator-facing counterpart of the report endpoints, handy for cron jobs
// and quick checks without the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	invpostgres "github.com/vibecart/scm-service/internal/domains/inventory/adapters/persistence/postgres"
	invapp "github.com/vibecart/scm-service/internal/domains/inventory/application"
	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	platformpostgres "github.com/vibecart/scm-service/internal/platform/postgres"
)

type inventoryReport struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Warehouses  []invtypes.WarehouseStock `json:"warehouses"`
	SKUs        []invtypes.SKUStock       `json:"skus"`
	Locations   []invtypes.LocationStock  `json:"locations"`
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot generate inventory report")
	}

	service := invapp.NewService(invpostgres.NewRecordStore(db), invpostgres.NewWarehouseStore(db))

	report := inventoryReport{GeneratedAt: time.Now().UTC()}
	var err error
	if report.Warehouses, err = service.WarehouseReport(ctx); err != nil {
		log.Fatalf("failed to build warehouse report: %v", err)
	}
	if report.SKUs, err = service.SKUReport(ctx); err != nil {
		log.Fatalf("failed to build sku report: %v", err)
	}
	if report.Locations, err = service.LocationDetails(ctx); err != nil {
		log.Fatalf("failed to build location details: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatalf("failed to encode inventory report: %v", err)
	}
}
