package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-service/internal/durable/temporal/failures"
)

// PlaceOrderActivityName runs the order placement use case once.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	orders orderports.UseCase
}

func NewActivities(orders orderports.UseCase) *Activities {
	return &Activities{orders: orders}
}

// PlaceOrder checks stock, persists the order and issues the decrements.
// Domain errors come back as non-retryable application errors.
func (a *Activities) PlaceOrder(ctx context.Context, order orderdomain.Order) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("order placement activity not initialized")
		return nil, failures.ToTemporal(errors.New("order placement activity not initialized"))
	}
	logger.Info("PlaceOrder activity started", "lineItems", len(order.Products))
	created, err := a.orders.CreateNewOrder(ctx, &order)
	if err != nil {
		logger.Warn("PlaceOrder activity rejected", "error", err)
		return nil, failures.ToTemporal(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", created.ID, "total", created.Total.StringFixed(2))
	return created, nil
}
