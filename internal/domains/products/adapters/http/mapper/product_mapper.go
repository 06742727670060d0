package mapper

import (
	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
)

// Product is the transport shape returned by GET /products/:name.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *productdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:       product.ID,
		Name:     product.Name,
		Quantity: product.Quantity,
		Price:    product.Price.Round(2).InexactFloat64(),
	}
}
