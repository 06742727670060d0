package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-order-service/internal/durable/temporal/activities/orders"
)

// RunPlacementSequence executes the placement activity exactly once.
func RunPlacementSequence(ctx workflow.Context, order orderdomain.Order) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "lineItems", len(order.Products))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var created orderdomain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, order).Get(ctx, &created)
	if err != nil {
		logger.Warn("order placement sequence failed", "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", created.ID)
	return &created, nil
}
