package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
)

func seeded(t *testing.T, quantity int64) *Repository {
	t.Helper()
	repo := NewRepository()
	_, err := repo.Save(context.Background(), &domain.Product{Name: "Widget", Quantity: quantity, Price: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	return repo
}

func TestSaveUpsertsByName(t *testing.T) {
	repo := seeded(t, 1)
	ctx := context.Background()

	again, err := repo.Save(ctx, &domain.Product{Name: "Widget", Quantity: 4, Price: decimal.RequireFromString("3.00")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].Quantity)
}

func TestFindProduct(t *testing.T) {
	repo := seeded(t, 1)
	ctx := context.Background()

	got, err := repo.FindProduct(ctx, ports.Filter{Name: "Widget"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("2.50").Equal(got.Price))

	got, err = repo.FindProduct(ctx, ports.Filter{Name: "widget"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckIsAvailableProduct(t *testing.T) {
	repo := seeded(t, 3)
	ctx := context.Background()

	got, err := repo.CheckIsAvailableProduct(ctx, domain.Item{Name: "Widget", Quantity: 3})
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = repo.CheckIsAvailableProduct(ctx, domain.Item{Name: "Widget", Quantity: 4})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateProductInStock(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		stock int64
		cmd   domain.StockCommand
		want  int64
	}{
		{"increment by quantity", 3, domain.StockCommand{Product: domain.Product{Name: "Widget", Quantity: 2}, Event: domain.StockIncrement}, 5},
		{"increment defaults to one", 3, domain.StockCommand{Product: domain.Product{Name: "Widget"}, Event: domain.StockIncrement}, 4},
		{"decrement within stock", 3, domain.StockCommand{Product: domain.Product{Name: "Widget", Quantity: 3}, Event: domain.StockDecrement}, 0},
		{"decrement below zero is skipped", 1, domain.StockCommand{Product: domain.Product{Name: "Widget", Quantity: 2}, Event: domain.StockDecrement}, 1},
		{"decrement on empty stock is skipped", 0, domain.StockCommand{Product: domain.Product{Name: "Widget"}, Event: domain.StockDecrement}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seeded(t, tc.stock)
			require.NoError(t, repo.UpdateProductInStock(ctx, tc.cmd))
			got, err := repo.FindProduct(ctx, ports.Filter{Name: "Widget"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Quantity)
		})
	}
}

func TestConcurrentDecrementsNeverOversell(t *testing.T) {
	repo := seeded(t, 10)
	ctx := context.Background()
	cmd := domain.StockCommand{Product: domain.Product{Name: "Widget", Quantity: 3}, Event: domain.StockDecrement}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.UpdateProductInStock(ctx, cmd)
		}()
	}
	wg.Wait()

	got, err := repo.FindProduct(ctx, ports.Filter{Name: "Widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Quantity)
}
