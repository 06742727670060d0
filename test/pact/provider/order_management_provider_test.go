//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-order-service/test/pact"

	orderserver "github.com/Apurer/go-gin-order-service/go"
	ordersmemory "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-order-service/internal/domains/orders/application"
	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	productsmemory "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/go-gin-order-service/internal/domains/products/adapters/observability"
	productsapp "github.com/Apurer/go-gin-order-service/internal/domains/products/application"
	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderManagementProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedOrder(t)
			}
			return nil, nil
		},
		pacttest.StateNoOrders: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a fresh in-memory stack for every provider state.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	orders  *ordersmemory.Repository
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		handler := app.handler
		app.mu.RUnlock()
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	productRepo := productsmemory.NewRepository()
	product, err := productdomain.NewProduct(pacttest.ProductName, pacttest.ProductQuantity, decimal.RequireFromString(pacttest.ProductPrice))
	require.NoError(t, err)
	_, err = productRepo.Save(context.Background(), product)
	require.NoError(t, err)

	orderRepo := ordersmemory.NewRepository()
	catalog := productsapp.NewService(productRepo)
	products := productsobs.New(productsapp.NewUseCase(catalog))
	orders := ordersobs.New(ordersapp.NewUseCase(ordersapp.NewService(orderRepo), catalog))

	router := gin.New()
	router.Use(gin.Recovery())
	router = orderserver.NewRouterWithGinEngine(router, orderserver.ApiHandleFunctions{
		OrderAPI:   orderserver.NewOrderAPI(orders, ordersworkflows.NewInlineOrderWorkflows(orders)),
		ProductAPI: orderserver.NewProductAPI(products),
	})

	a.mu.Lock()
	a.handler = router
	a.orders = orderRepo
	a.mu.Unlock()
}

func (a *contractProviderApp) seedOrder(t testing.TB) {
	t.Helper()
	order, err := orderdomain.NewOrder([]orderdomain.LineItem{{
		Name:     pacttest.ProductName,
		Quantity: 2,
		Price:    decimal.RequireFromString(pacttest.ProductPrice),
	}})
	require.NoError(t, err)
	order.Total = order.ComputeTotal()

	a.mu.RLock()
	repo := a.orders
	a.mu.RUnlock()
	created, err := repo.CreateNewOrder(context.Background(), order)
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingOrderID, created.ID)
}
