package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/client"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	orderserver "github.com/Apurer/go-gin-order-service/go"
	ordersworkflows "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	stockmessaging "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/messaging/kafka"
	platformkafka "github.com/Apurer/go-gin-order-service/internal/platform/kafka"
	platformobservability "github.com/Apurer/go-gin-order-service/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-order-service/internal/platform/temporal"
)

const serviceName = "order-management-api"

// Run boots the order management API and stock consumer with observability,
// repositories, and workflows wired. It returns when ctx is cancelled or a
// component fails.
func Run(ctx context.Context, cfg Config) error {
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

	core, cleanup, err := BuildCore(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	workflows, closeWorkflows := newOrchestrator(core, func() (client.Client, error) {
		return platformtemporal.Dial(platformtemporal.ClientConfig{
			Address:   cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
			Disabled:  cfg.TemporalDisabled,
		}, instruments.Tracer("temporal-client"), logger)
	}, logger)
	defer closeWorkflows()

	var stock *stockmessaging.StockConsumer
	if cfg.ConsumerEnabled {
		consumer, err := platformkafka.NewConsumer(platformkafka.ReaderConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaStockTopic,
			GroupID: cfg.KafkaGroupID,
		})
		if err != nil {
			return fmt.Errorf("failed to create stock consumer: %w", err)
		}
		defer consumer.Close()
		stock = stockmessaging.NewStockConsumer(
			consumer,
			core.Products,
			stockmessaging.WithLogger(logger),
			stockmessaging.WithTracer(instruments.Tracer("internal.products.messaging")),
		)
		logger.Info("stock consumer subscribed", slog.String("topic", cfg.KafkaStockTopic), slog.String("group", cfg.KafkaGroupID))
	}

	group, ctx := errgroup.WithContext(ctx)
	if cfg.HTTPEnabled {
		router := newRouter(instruments, core, workflows)
		group.Go(func() error {
			return serveHTTP(ctx, cfg.Addr(), router, logger)
		})
	}
	if stock != nil {
		group.Go(func() error {
			return stock.Start(ctx)
		})
	}
	return group.Wait()
}

// newOrchestrator places orders through Temporal only when the core is
// durable, so the worker sees the same catalog and orders as this process.
// Otherwise, or when Temporal cannot be reached, orders are placed inline.
func newOrchestrator(core *Core, dial func() (client.Client, error), logger *slog.Logger) (orderports.WorkflowOrchestrator, func()) {
	inline := ordersworkflows.NewInlineOrderWorkflows(core.Orders)
	if !core.Durable {
		logger.Warn("in-memory repositories are private to this process, placing orders inline")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled")
	return ordersworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}

func newRouter(instruments *platformobservability.Instruments, core *Core, workflows orderports.WorkflowOrchestrator) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName, otelgin.WithTracerProvider(instruments.TracerProvider)))
	return orderserver.NewRouterWithGinEngine(engine, orderserver.ApiHandleFunctions{
		OrderAPI:   orderserver.NewOrderAPI(core.Orders, workflows),
		ProductAPI: orderserver.NewProductAPI(core.Products),
	})
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("order management API listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("order management API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}
		logger.Info("order management API stopped")
		return nil
	}
}
