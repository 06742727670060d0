package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

// Service is the order query layer; CreateNewOrder derives the total.
type Service interface {
	FindOrder(ctx context.Context, filter domain.Filter) ([]*domain.Order, error)
	CreateNewOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// UseCase exposes order placement and lookup to the transports.
type UseCase interface {
	FindOrder(ctx context.Context, filter domain.Filter) ([]*domain.Order, error)
	CreateNewOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// ProductCatalog is what order placement needs from the product service.
type ProductCatalog interface {
	CheckIsAvailableProducts(ctx context.Context, items []productdomain.Item) ([]*productdomain.Product, error)
	UpdateProductInStock(ctx context.Context, cmd productdomain.StockCommand) *async.Task
}

// WorkflowOrchestrator runs order placement, durably when available.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
