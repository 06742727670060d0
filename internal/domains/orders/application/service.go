package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

// Service owns order reads and total derivation over the gateway.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// FindOrder returns every order matching the filter; an empty result is not an error here.
func (s *Service) FindOrder(ctx context.Context, filter domain.Filter) ([]*domain.Order, error) {
	orders, err := s.repo.FindOrder(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// CreateNewOrder overwrites any caller-supplied total with the derived one and persists.
func (s *Service) CreateNewOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, apperror.Unexpected(errors.New("order is nil"))
	}
	pending := order.Clone()
	if err := pending.Validate(); err != nil {
		return nil, mapError(err)
	}
	pending.ID = 0
	pending.Total = pending.ComputeTotal()
	created, err := s.repo.CreateNewOrder(ctx, pending)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	return created, nil
}

var _ ports.Service = (*Service)(nil)
