package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	invmemory "github.com/vibecart/scm-service/internal/domains/inventory/adapters/memory"
	invobs "github.com/vibecart/scm-service/internal/domains/inventory/adapters/observability"
	invpostgres "github.com/vibecart/scm-service/internal/domains/inventory/adapters/persistence/postgres"
	invapp "github.com/vibecart/scm-service/internal/domains/inventory/application"
	invdomain "github.com/vibecart/scm-service/internal/domains/inventory/domain"
	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
	ordersevents "github.com/vibecart/scm-service/internal/domains/orders/adapters/events"
	ordersmemory "github.com/vibecart/scm-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/vibecart/scm-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/vibecart/scm-service/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/vibecart/scm-service/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/vibecart/scm-service/internal/domains/orders/application"
	ordersports "github.com/vibecart/scm-service/internal/domains/orders/ports"
	"github.com/vibecart/scm-service/internal/platform/migrations"
	platformobservability "github.com/vibecart/scm-service/internal/platform/observability"
	platformpostgres "github.com/vibecart/scm-service/internal/platform/postgres"
	"github.com/vibecart/scm-service/internal/platform/rabbitmq"
	"github.com/vibecart/scm-service/internal/transport/rest"
)

// Run boots the supply-chain HTTP API with observability, repositories, and
// workflows wired. Postgres, Temporal, and RabbitMQ are all optional; missing
// ones degrade to in-process fallbacks.
func Run(ctx context.Context) error {
	const serviceName = "scm-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	inventoryService := buildInventoryService(db, logger, instruments)

	orderOpts := []ordersapp.Option{}
	if cfg.RabbitURL != "" {
		if publisher, cleanup, err := buildEventPublisher(cfg.RabbitURL, logger); err != nil {
			logger.Warn("RabbitMQ unavailable, stock events disabled", slog.String("error", err.Error()))
		} else {
			defer cleanup()
			orderOpts = append(orderOpts, ordersapp.WithEventPublisher(publisher))
			logger.Info("stock event publishing enabled")
		}
	}
	coreOrderService := ordersapp.NewService(buildOrderRepository(db, logger), inventoryService, orderOpts...)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := rest.ApiHandleFunctions{
		InventoryAPI: rest.NewInventoryAPI(inventoryService),
		OrderAPI:     rest.NewOrderAPI(orderService, orderWorkflows),
	}
	router := rest.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("SCM API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("SCM API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildInventoryService(db *gorm.DB, logger *slog.Logger, instruments *platformobservability.Instruments) invports.Service {
	records, warehouses := buildInventoryStores(db, logger)
	core := invapp.NewService(records, warehouses)
	return invobs.New(
		core,
		invobs.WithLogger(logger),
		invobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		invobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
}

func buildInventoryStores(db *gorm.DB, logger *slog.Logger) (invports.RecordStore, invports.WarehouseStore) {
	if db != nil {
		logger.Info("inventory repositories configured with postgres")
		return invpostgres.NewRecordStore(db), invpostgres.NewWarehouseStore(db)
	}
	logger.Warn("inventory repositories running in-memory with default warehouses")
	return invmemory.NewRecordStore(), invmemory.NewWarehouseStore(defaultWarehouses()...)
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) ordersports.Repository {
	if db != nil {
		logger.Info("order repository configured with postgres")
		return orderspostgres.NewRepository(db)
	}
	logger.Warn("order repository running in-memory")
	return ordersmemory.NewRepository()
}

func buildEventPublisher(url string, logger *slog.Logger) (ordersports.StockEventPublisher, func(), error) {
	conn, err := rabbitmq.Connect(url)
	if err != nil {
		return nil, nil, err
	}
	publisher, err := ordersevents.NewPublisher(conn, logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = publisher.Close()
		_ = conn.Close()
	}
	return publisher, cleanup, nil
}

// defaultWarehouses covers the metro zip ranges used by the dev fixtures.
func defaultWarehouses() []*invdomain.Warehouse {
	return []*invdomain.Warehouse{
		{ID: "INV0001", Name: "Mumbai Warehouse", Location: "Mumbai", ZipStart: 400001, ZipEnd: 400706},
		{ID: "INV0002", Name: "Delhi Warehouse", Location: "Delhi", ZipStart: 110001, ZipEnd: 110096},
		{ID: "INV0003", Name: "Bangalore Warehouse", Location: "Bangalore", ZipStart: 560001, ZipEnd: 560103},
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
