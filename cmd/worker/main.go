package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	invmemory "github.com/vibecart/scm-service/internal/domains/inventory/adapters/memory"
	invobs "github.com/vibecart/scm-service/internal/domains/inventory/adapters/observability"
	invpostgres "github.com/vibecart/scm-service/internal/domains/inventory/adapters/persistence/postgres"
	invapp "github.com/vibecart/scm-service/internal/domains/inventory/application"
	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
	ordersmemory "github.com/vibecart/scm-service/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/vibecart/scm-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/vibecart/scm-service/internal/domains/orders/application"
	ordersports "github.com/vibecart/scm-service/internal/domains/orders/ports"
	orderworkflows "github.com/vibecart/scm-service/internal/durable/temporal/workflows/orders"
	"github.com/vibecart/scm-service/internal/platform/migrations"
	platformobservability "github.com/vibecart/scm-service/internal/platform/observability"
	platformpostgres "github.com/vibecart/scm-service/internal/platform/postgres"
	orderactivities "github.com/vibecart/scm-service/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "scm-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	inventoryService := buildInventoryService(db, logger, instruments)
	orderService := ordersapp.NewService(buildOrderRepository(db, logger), inventoryService)
	activities := orderactivities.NewActivities(orderService, inventoryService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCheckoutWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	w.RegisterActivityWithOptions(activities.RevertStock, activity.RegisterOptions{Name: orderactivities.RevertStockActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildInventoryService(db *gorm.DB, logger *slog.Logger, instruments *platformobservability.Instruments) invports.Service {
	var records invports.RecordStore
	var warehouses invports.WarehouseStore
	if db != nil {
		logger.Info("worker inventory repositories configured with postgres")
		records, warehouses = invpostgres.NewRecordStore(db), invpostgres.NewWarehouseStore(db)
	} else {
		logger.Warn("worker inventory repositories running in-memory")
		records, warehouses = invmemory.NewRecordStore(), invmemory.NewWarehouseStore()
	}
	core := invapp.NewService(records, warehouses)
	return invobs.New(
		core,
		invobs.WithLogger(logger),
		invobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		invobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) ordersports.Repository {
	if db != nil {
		logger.Info("worker order repository configured with postgres")
		return orderspostgres.NewRepository(db)
	}
	logger.Warn("worker order repository running in-memory")
	return ordersmemory.NewRepository()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
