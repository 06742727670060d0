package application

import (
	"context"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

// UseCase implements the product workflows on top of the product service.
type UseCase struct {
	products ports.Service
}

func NewUseCase(products ports.Service) *UseCase {
	return &UseCase{products: products}
}

// FindProduct fails with ErrProductNotFound when no product has the name.
func (u *UseCase) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	product, err := u.products.FindProduct(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(name)
	}
	return product, nil
}

func (u *UseCase) IncrementProductInStock(ctx context.Context, product domain.Product) *async.Task {
	return u.products.UpdateProductInStock(ctx, domain.StockCommand{Product: product, Event: domain.StockIncrement})
}

func (u *UseCase) DecrementProductInStock(ctx context.Context, product domain.Product) *async.Task {
	return u.products.UpdateProductInStock(ctx, domain.StockCommand{Product: product, Event: domain.StockDecrement})
}

var _ ports.UseCase = (*UseCase)(nil)
