package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
)

// Repository is the persistence gateway for orders.
type Repository interface {
	// FindOrder returns every order matching the filter, ordered by id.
	FindOrder(ctx context.Context, filter domain.Filter) ([]*domain.Order, error)
	// CreateNewOrder stores the order and returns it with its assigned id.
	CreateNewOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
