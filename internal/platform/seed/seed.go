// Package seed loads the initial product catalog from YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
)

// DefaultFile is the catalog shipped with the repository.
const DefaultFile = "configs/products.yaml"

// ProductStore persists seeded products, upserting on name.
type ProductStore interface {
	Save(ctx context.Context, product *productdomain.Product) (*productdomain.Product, error)
}

type catalogFile struct {
	Products []productEntry `yaml:"products"`
}

type productEntry struct {
	Name     string `yaml:"name"`
	Quantity int64  `yaml:"quantity"`
	Price    string `yaml:"price"`
}

// Load parses a catalog document into validated products.
func Load(r io.Reader) ([]*productdomain.Product, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	products := make([]*productdomain.Product, 0, len(file.Products))
	seen := make(map[string]struct{}, len(file.Products))
	for i, entry := range file.Products {
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return nil, fmt.Errorf("product #%d (%s): invalid price %q: %w", i+1, entry.Name, entry.Price, err)
		}
		product, err := productdomain.NewProduct(entry.Name, entry.Quantity, price)
		if err != nil {
			return nil, fmt.Errorf("product #%d (%s): %w", i+1, entry.Name, err)
		}
		if _, dup := seen[product.Name]; dup {
			return nil, fmt.Errorf("product #%d: duplicate name %q", i+1, product.Name)
		}
		seen[product.Name] = struct{}{}
		products = append(products, product)
	}
	return products, nil
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) ([]*productdomain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply saves every product and reports how many were written.
func Apply(ctx context.Context, store ProductStore, products []*productdomain.Product) (int, error) {
	for i, product := range products {
		if _, err := store.Save(ctx, product); err != nil {
			return i, fmt.Errorf("save product %q: %w", product.Name, err)
		}
	}
	return len(products), nil
}
