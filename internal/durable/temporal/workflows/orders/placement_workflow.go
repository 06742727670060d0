package orders

import (
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	ordersequences "github.com/Apurer/go-gin-order-service/internal/durable/temporal/sequences/orders"
)

const (
	// PlacementWorkflowName is the public identifier for registering the workflow.
	PlacementWorkflowName = "orders.workflows.Placement"
	// PlacementTaskQueue is the queue consumed by the worker processing order workflows.
	PlacementTaskQueue = "ORDER_PLACEMENT"
)

// PlacementWorkflowInput captures the requested order.
type PlacementWorkflowInput struct {
	Order   orderdomain.Order
	TraceID string
}

// PlacementWorkflow places one order.
func PlacementWorkflow(ctx workflow.Context, input PlacementWorkflowInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PlacementWorkflow started", withTraceID(input.TraceID, "lineItems", len(input.Order.Products))...)
	created, err := ordersequences.RunPlacementSequence(ctx, input.Order)
	if err != nil {
		logger.Warn("PlacementWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("PlacementWorkflow completed", withTraceID(input.TraceID, "orderId", created.ID)...)
	return created, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
