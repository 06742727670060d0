package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

// UseCase places orders: availability gate, price resolution, persistence,
// then stock reservation.
type UseCase struct {
	orders   ports.Service
	products ports.ProductCatalog
}

func NewUseCase(orders ports.Service, products ports.ProductCatalog) *UseCase {
	return &UseCase{orders: orders, products: products}
}

// FindOrder fails with ErrOrderNotFound when nothing matches.
func (u *UseCase) FindOrder(ctx context.Context, filter domain.Filter) ([]*domain.Order, error) {
	orders, err := u.orders.FindOrder(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, orderNotFound(filter.ID)
	}
	return orders, nil
}

// CreateNewOrder persists the order only when every product is in stock for
// the summed quantity of its lines. Decrements are issued per line after
// persistence and not awaited, so a failed decrement never rolls the order
// back.
func (u *UseCase) CreateNewOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, apperror.Unexpected(errors.New("order is nil"))
	}
	pending := order.Clone()
	if err := pending.Validate(); err != nil {
		return nil, mapError(err)
	}

	items := pending.Items()
	available, err := u.products.CheckIsAvailableProducts(ctx, items)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 || len(available) < len(items) {
		return nil, ErrSomeProductsNotAvailable
	}

	prices := make(map[string]productdomain.Product, len(available))
	for _, product := range available {
		if product != nil {
			prices[product.Name] = *product
		}
	}
	for i := range pending.Products {
		product, ok := prices[pending.Products[i].Name]
		if !ok {
			return nil, ErrSomeProductsNotAvailable
		}
		pending.Products[i].Price = product.Price
	}

	created, err := u.orders.CreateNewOrder(ctx, pending)
	if err != nil {
		return nil, err
	}

	for _, line := range created.Products {
		u.products.UpdateProductInStock(ctx, productdomain.StockCommand{
			Product: productdomain.Product{Name: line.Name, Quantity: line.Quantity, Price: line.Price},
			Event:   productdomain.StockDecrement,
		})
	}
	return created, nil
}

var _ ports.UseCase = (*UseCase)(nil)
