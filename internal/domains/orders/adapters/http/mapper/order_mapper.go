package mapper

import (
	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
)

// OrderProductRequest is one requested line item of POST /orders.
type OrderProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the POST /orders body. Prices and totals are never
// taken from the client.
type CreateOrderRequest struct {
	Products []OrderProductRequest `json:"products" binding:"required,min=1,dive"`
}

// OrderProduct is a line item as returned to clients.
type OrderProduct struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the transport shape of a persisted order.
type Order struct {
	ID       int64          `json:"id"`
	Products []OrderProduct `json:"products"`
	Total    float64        `json:"total"`
}

// ToDomainOrder converts a request into the orders domain model.
func ToDomainOrder(request CreateOrderRequest) (*orderdomain.Order, error) {
	lines := make([]orderdomain.LineItem, 0, len(request.Products))
	for _, product := range request.Products {
		lines = append(lines, orderdomain.LineItem{Name: product.Name, Quantity: product.Quantity})
	}
	return orderdomain.NewOrder(lines)
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	products := make([]OrderProduct, 0, len(order.Products))
	for _, line := range order.Products {
		products = append(products, OrderProduct{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price.Round(2).InexactFloat64(),
		})
	}
	return Order{
		ID:       order.ID,
		Products: products,
		Total:    order.Total.Round(2).InexactFloat64(),
	}
}

// FromDomainOrders converts a list preserving order.
func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
