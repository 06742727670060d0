package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
)

// Filter selects products by equality on the non-zero fields.
type Filter struct {
	ID   int64
	Name string
}

// Repository is the persistence gateway for products.
// Lookups return (nil, nil) when no product matches.
type Repository interface {
	FindProduct(ctx context.Context, filter Filter) (*domain.Product, error)
	// CheckIsAvailableProduct returns the product named item.Name when its
	// stock covers item.Quantity.
	CheckIsAvailableProduct(ctx context.Context, item domain.Item) (*domain.Product, error)
	// UpdateProductInStock applies a bounded adjustment; a decrement that
	// would take stock below zero is not applied.
	UpdateProductInStock(ctx context.Context, cmd domain.StockCommand) error
	// Save upserts a product by name.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
