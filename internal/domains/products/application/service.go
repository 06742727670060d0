package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

// Service validates and forwards product queries and stock commands to the gateway.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CheckIsAvailableProducts asks the gateway about every item concurrently and
// returns the products whose stock covers the request, in request order.
// A gateway fault on any item aborts the whole check.
func (s *Service) CheckIsAvailableProducts(ctx context.Context, items []domain.Item) ([]*domain.Product, error) {
	if len(items) == 0 {
		return []*domain.Product{}, nil
	}
	results := make([]*domain.Product, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			product, err := s.repo.CheckIsAvailableProduct(gctx, item)
			if err != nil {
				return err
			}
			results[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.Wrap(err)
	}
	available := make([]*domain.Product, 0, len(results))
	for _, product := range results {
		if product != nil {
			available = append(available, product)
		}
	}
	return available, nil
}

// FindProduct returns the product with the exact name, or nil when absent.
func (s *Service) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	product, err := s.repo.FindProduct(ctx, ports.Filter{Name: name})
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	return product, nil
}

// UpdateProductInStock dispatches the adjustment without waiting for it.
func (s *Service) UpdateProductInStock(ctx context.Context, cmd domain.StockCommand) *async.Task {
	if err := cmd.Validate(); err != nil {
		return async.Completed(apperror.Unexpected(err))
	}
	return async.Go(ctx, func(ctx context.Context) error {
		return apperror.Wrap(s.repo.UpdateProductInStock(ctx, cmd))
	})
}

var _ ports.Service = (*Service)(nil)
