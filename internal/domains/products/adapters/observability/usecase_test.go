package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
	"github.com/Apurer/go-gin-order-service/internal/shared/async"
)

type stubUseCase struct {
	release chan struct{}
}

func (s stubUseCase) FindProduct(_ context.Context, name string) (*productdomain.Product, error) {
	return nil, apperror.New(apperror.KindNotFound, "product.not_found", "Product '"+name+"' not found.", nil)
}

func (s stubUseCase) IncrementProductInStock(context.Context, productdomain.Product) *async.Task {
	return async.Completed(nil)
}

func (s stubUseCase) DecrementProductInStock(ctx context.Context, _ productdomain.Product) *async.Task {
	return async.Go(ctx, func(context.Context) error {
		<-s.release
		return errors.New("gateway down")
	})
}

func stockUpdates(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "products.usecase.stock_updates" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				outcome, _ := dp.Attributes.Value("outcome")
				counts[outcome.AsString()] += dp.Value
			}
		}
	}
	return counts
}

func TestStockUpdatesAreObservedWithoutBlocking(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	release := make(chan struct{})
	uc := New(stubUseCase{release: release}, WithMeter(meter))

	require.NoError(t, uc.IncrementProductInStock(context.Background(), productdomain.Product{Name: "A"}).Wait(context.Background()))
	task := uc.DecrementProductInStock(context.Background(), productdomain.Product{Name: "A"})
	select {
	case <-task.Done():
		t.Fatal("decrement should still be running")
	default:
	}
	close(release)

	require.Eventually(t, func() bool {
		counts := stockUpdates(t, reader)
		return counts["applied"] == 1 && counts["failed"] == 1
	}, time.Second, 5*time.Millisecond)
}

func TestFindProductPassesErrorsThrough(t *testing.T) {
	uc := New(stubUseCase{})
	_, err := uc.FindProduct(context.Background(), "ghost")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

type stubService struct{}

func (stubService) CheckIsAvailableProducts(_ context.Context, items []productdomain.Item) ([]*productdomain.Product, error) {
	return []*productdomain.Product{{Name: items[0].Name, Quantity: 5}}, nil
}

func (stubService) FindProduct(context.Context, string) (*productdomain.Product, error) {
	return nil, errors.New("db down")
}

func (stubService) UpdateProductInStock(_ context.Context, cmd productdomain.StockCommand) *async.Task {
	if cmd.Event == productdomain.StockDecrement {
		return async.Completed(apperror.Unexpected(errors.New("db down")))
	}
	return async.Completed(nil)
}

func TestServiceCountsStockCommands(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	svc := NewService(stubService{}, WithMeter(meter))

	available, err := svc.CheckIsAvailableProducts(context.Background(), []productdomain.Item{{Name: "A", Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, available, 1)

	_, err = svc.FindProduct(context.Background(), "A")
	require.Error(t, err)

	svc.UpdateProductInStock(context.Background(), productdomain.StockCommand{Product: productdomain.Product{Name: "A"}, Event: productdomain.StockDecrement})
	svc.UpdateProductInStock(context.Background(), productdomain.StockCommand{Product: productdomain.Product{Name: "A"}, Event: productdomain.StockIncrement})

	require.Eventually(t, func() bool {
		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))
		counts := map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name != "products.service.stock_commands" {
					continue
				}
				for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
					outcome, _ := dp.Attributes.Value("outcome")
					counts[outcome.AsString()] += dp.Value
				}
			}
		}
		return counts["applied"] == 1 && counts["failed"] == 1
	}, time.Second, 5*time.Millisecond)
}
