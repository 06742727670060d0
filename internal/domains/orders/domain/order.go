package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
)

var (
	ErrNoProducts        = errors.New("order must contain at least one product")
	ErrEmptyProductName  = errors.New("order product name is required")
	ErrInvalidQuantity   = errors.New("order product quantity must be greater than zero")
	ErrNegativeLinePrice = errors.New("order product price must not be negative")
)

// LineItem is one requested product. Price is authoritative only after the
// placement workflow resolved it from the catalog.
type LineItem struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
}

// Order is created once and never mutated afterwards. Total is derived.
type Order struct {
	ID       int64
	Products []LineItem
	Total    decimal.Decimal
}

// NewOrder validates and constructs an order from requested line items.
func NewOrder(products []LineItem) (*Order, error) {
	order := &Order{Products: append([]LineItem(nil), products...)}
	for i := range order.Products {
		order.Products[i].Name = strings.TrimSpace(order.Products[i].Name)
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Products) == 0 {
		return ErrNoProducts
	}
	for _, item := range o.Products {
		if strings.TrimSpace(item.Name) == "" {
			return ErrEmptyProductName
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return ErrNegativeLinePrice
		}
	}
	return nil
}

// ComputeTotal sums price × quantity over the line items and rounds half away
// from zero to cents.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Products {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total.Round(2)
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Products = append([]LineItem(nil), o.Products...)
	return &clone
}

// Items returns the availability query: one item per distinct name with the
// quantities of repeated lines summed, in first-seen order.
func (o *Order) Items() []productdomain.Item {
	index := make(map[string]int, len(o.Products))
	items := make([]productdomain.Item, 0, len(o.Products))
	for _, line := range o.Products {
		if i, ok := index[line.Name]; ok {
			items[i].Quantity += line.Quantity
			continue
		}
		index[line.Name] = len(items)
		items = append(items, productdomain.Item{Name: line.Name, Quantity: line.Quantity})
	}
	return items
}

// ProductNames lists the distinct line item names in first-seen order.
func (o *Order) ProductNames() []string {
	seen := make(map[string]struct{}, len(o.Products))
	names := make([]string, 0, len(o.Products))
	for _, line := range o.Products {
		if _, ok := seen[line.Name]; ok {
			continue
		}
		seen[line.Name] = struct{}{}
		names = append(names, line.Name)
	}
	return names
}

// Filter selects orders by equality on the set fields. The zero Filter
// selects every order.
type Filter struct {
	ID          *int64
	Total       *decimal.Decimal
	ProductName string
}

func (f Filter) IsEmpty() bool {
	return f.ID == nil && f.Total == nil && f.ProductName == ""
}

// Matches reports whether the order satisfies every set field.
func (f Filter) Matches(order *Order) bool {
	if f.ID != nil && order.ID != *f.ID {
		return false
	}
	if f.Total != nil && !order.Total.Equal(*f.Total) {
		return false
	}
	if f.ProductName != "" {
		for _, line := range order.Products {
			if line.Name == f.ProductName {
				return true
			}
		}
		return false
	}
	return true
}
