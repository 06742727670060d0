package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Orders are kept in
// creation order, which is also id order.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) FindOrder(_ context.Context, filter domain.Filter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Matches(order) {
			list = append(list, order.Clone())
		}
	}
	return list, nil
}

func (r *Repository) CreateNewOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.orders = append(r.orders, clone)
	return clone.Clone(), nil
}
