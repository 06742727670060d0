//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	"github.com/Apurer/go-gin-order-service/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-service/internal/platform/postgres"
)

func setupProductsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, closeDB, err := platformpostgres.Connect(ctx, dsn)
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		closeDB()
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func saveWidget(t *testing.T, repo *Repository, quantity int64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct("Widget", quantity, decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestRepository_SaveAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved := saveWidget(t, repo, 5)
	assert.NotZero(t, saved.ID)

	fetched, err := repo.FindProduct(ctx, ports.Filter{Name: "Widget"})
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.True(t, decimal.RequireFromString("3.50").Equal(fetched.Price))

	missing, err := repo.FindProduct(ctx, ports.Filter{Name: "Gadget"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_SaveUpsertsByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	first := saveWidget(t, repo, 5)
	second := saveWidget(t, repo, 9)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(9), second.Quantity)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_CheckIsAvailableProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	saveWidget(t, repo, 2)

	got, err := repo.CheckIsAvailableProduct(ctx, domain.Item{Name: "Widget", Quantity: 2})
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = repo.CheckIsAvailableProduct(ctx, domain.Item{Name: "Widget", Quantity: 3})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_ConcurrentDecrementsStayNonNegative(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	saveWidget(t, repo, 10)

	cmd := domain.StockCommand{Product: domain.Product{Name: "Widget", Quantity: 3}, Event: domain.StockDecrement}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.UpdateProductInStock(ctx, cmd))
		}()
	}
	wg.Wait()

	got, err := repo.FindProduct(ctx, ports.Filter{Name: "Widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Quantity)

	require.NoError(t, repo.UpdateProductInStock(ctx, domain.StockCommand{Product: domain.Product{Name: "Widget"}, Event: domain.StockIncrement}))
	got, err = repo.FindProduct(ctx, ports.Filter{Name: "Widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Quantity)
}
