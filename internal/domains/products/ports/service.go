package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

// Service is the thin query/command layer over the product gateway.
type Service interface {
	CheckIsAvailableProducts(ctx context.Context, items []domain.Item) ([]*domain.Product, error)
	FindProduct(ctx context.Context, name string) (*domain.Product, error)
	UpdateProductInStock(ctx context.Context, cmd domain.StockCommand) *async.Task
}

// UseCase exposes the product workflows to the HTTP and queue adapters.
// Stock adjustments are fire-and-forget; the returned task may be ignored.
type UseCase interface {
	FindProduct(ctx context.Context, name string) (*domain.Product, error)
	IncrementProductInStock(ctx context.Context, product domain.Product) *async.Task
	DecrementProductInStock(ctx context.Context, product domain.Product) *async.Task
}
