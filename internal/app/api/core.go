package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ordersmemory "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-order-service/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	productsmemory "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/observability"
	productspostgres "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/Apurer/go-gin-order-service/internal/domains/products/application"
	productports "github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	"github.com/Apurer/go-gin-order-service/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-service/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-service/internal/platform/postgres"
	"github.com/Apurer/go-gin-order-service/internal/platform/seed"
)

// Core holds the decorated use cases shared by the API and the worker.
type Core struct {
	Products    productports.UseCase
	Orders      orderports.UseCase
	ProductRepo productports.Repository
	// Durable is set when the repositories are backed by Postgres and so are
	// visible to every process sharing the DSN. In-memory repositories are
	// private to the process that built them.
	Durable bool
}

// BuildCore wires repositories, application services, and observability
// decorators. Postgres is used when reachable, memory otherwise.
func BuildCore(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Core, func(), error) {
	logger := instruments.Logger
	productRepo, orderRepo, durable, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.SeedFile != "" {
		if err := seedProducts(ctx, cfg.SeedFile, productRepo, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	catalog := productsapp.NewService(productRepo)
	products := productsobs.New(
		productsapp.NewUseCase(catalog),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	// Order placement talks to the service directly, not the use case.
	orderCatalog := productsobs.NewService(
		catalog,
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	orders := ordersobs.New(
		ordersapp.NewUseCase(ordersapp.NewService(orderRepo), orderCatalog),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return &Core{Products: products, Orders: orders, ProductRepo: productRepo, Durable: durable}, cleanup, nil
}

// ErrNotDurable is returned by RequireDurable for a core on in-memory
// repositories.
var ErrNotDurable = errors.New("order placement needs Postgres: in-memory repositories are not shared between processes")

// RequireDurable fails unless core is backed by Postgres. The worker places
// orders the API later reads, so both must share storage.
func RequireDurable(core *Core) error {
	if core == nil || !core.Durable {
		return ErrNotDurable
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (productports.Repository, orderports.Repository, bool, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return productsmemory.NewRepository(), ordersmemory.NewRepository(), false, func() {}, nil
	}
	db, cleanup, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithLogger(logger))
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return productsmemory.NewRepository(), ordersmemory.NewRepository(), false, func() {}, nil
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		cleanup()
		return nil, nil, false, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info("repositories configured with postgres")
	return productspostgres.NewRepository(db), orderspostgres.NewRepository(db), true, cleanup, nil
}

func seedProducts(ctx context.Context, path string, repo seed.ProductStore, logger *slog.Logger) error {
	products, err := seed.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load seed file %s: %w", path, err)
	}
	written, err := seed.Apply(ctx, repo, products)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	logger.Info("product catalog seeded", slog.String("file", path), slog.Int("products", written))
	return nil
}
