//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-management-api"
	ConsumerName = "storefront"

	StateCatalogSeeded  = "product catalog seeded"
	StateOrderExists    = "order with id 1 exists"
	StateNoOrders       = "no orders exist"
	StateProductMissing = "no product named Durian"
)

const (
	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 999

	ProductName        = "Apple"
	ProductQuantity    = 10
	ProductPrice       = "1.50"
	MissingProductName = "Durian"
)

// PactDir is where the storefront contract is written and verified from.
func PactDir(t testing.TB) string {
	return ensureDir(t, "pacts")
}

// PactFile is the storefront contract verified by the provider test.
func PactFile(t testing.TB) string {
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir collects pact-go mock server and verifier logs.
func LogDir(t testing.TB) string {
	return ensureDir(t, "bin", "pact-logs")
}

// ExampleOrderRequest places two units of the seeded product.
func ExampleOrderRequest() map[string]any {
	return map[string]any{
		"products": []map[string]any{
			{"name": ProductName, "quantity": 2},
		},
	}
}

// ensureDir creates elem below the repository root, located from this file.
func ensureDir(t testing.TB, elem ...string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate pact helpers on disk")
	}
	root := filepath.Join(filepath.Dir(file), "..", "..")
	dir := filepath.Join(append([]string{root}, elem...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	return dir
}
