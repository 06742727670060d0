package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product catalog keyed by name.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) FindProduct(_ context.Context, filter ports.Filter) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if filter.ID != 0 && product.ID != filter.ID {
			continue
		}
		if filter.Name != "" && product.Name != filter.Name {
			continue
		}
		clone := *product
		return &clone, nil
	}
	return nil, nil
}

func (r *Repository) CheckIsAvailableProduct(_ context.Context, item domain.Item) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[item.Name]
	if !ok || !product.Covers(item.Quantity) {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

// UpdateProductInStock moves stock under the write lock so the bound check and
// the update are atomic. Unknown names are a silent no-op.
func (r *Repository) UpdateProductInStock(_ context.Context, cmd domain.StockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	amount := cmd.Amount()
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[cmd.Product.Name]
	if !ok {
		return nil
	}
	switch cmd.Event {
	case domain.StockIncrement:
		product.Quantity += amount
	case domain.StockDecrement:
		if product.Covers(amount) {
			product.Quantity -= amount
		}
	}
	return nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	clone := *product
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.products[clone.Name]; ok {
		clone.ID = existing.ID
	} else {
		r.nextID++
		clone.ID = r.nextID
	}
	r.products[clone.Name] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
