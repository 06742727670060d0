package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// StockEventType is the direction of a stock adjustment.
type StockEventType string

const (
	StockIncrement StockEventType = "INCREMENT"
	StockDecrement StockEventType = "DECREMENT"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrInvalidEvent     = errors.New("stock event type is invalid")
)

// Product is a stocked item. Name is unique.
type Product struct {
	ID       int64
	Name     string
	Quantity int64
	Price    decimal.Decimal
}

// NewProduct validates and constructs a Product, as used by seeding.
func NewProduct(name string, quantity int64, price decimal.Decimal) (*Product, error) {
	p := &Product{Name: strings.TrimSpace(name), Quantity: quantity, Price: price}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the stored-product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Covers reports whether the stock level satisfies a requested quantity.
func (p *Product) Covers(quantity int64) bool {
	return p.Quantity >= quantity
}

// Item is a requested line: a product name and the quantity wanted.
type Item struct {
	Name     string
	Quantity int64
}

// StockCommand asks the gateway to move a product's stock level.
type StockCommand struct {
	Product Product
	Event   StockEventType
}

// Amount is the number of units to move. Notifications carry only a name,
// so a zero quantity moves a single unit.
func (c StockCommand) Amount() int64 {
	if c.Product.Quantity <= 0 {
		return 1
	}
	return c.Product.Quantity
}

// Validate rejects commands the gateway cannot apply.
func (c StockCommand) Validate() error {
	if strings.TrimSpace(c.Product.Name) == "" {
		return ErrEmptyName
	}
	switch c.Event {
	case StockIncrement, StockDecrement:
		return nil
	default:
		return ErrInvalidEvent
	}
}
