package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-service/internal/durable/temporal/failures"
	orderworkflows "github.com/Apurer/go-gin-order-service/internal/durable/temporal/workflows/orders"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

type idempotencyKeyCtx struct{}

// WithIdempotencyKey marks a placement request so a repeated submission
// returns the first run's result instead of placing a second order.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	key = strings.TrimSpace(key)
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

func idempotencyKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKeyCtx{}).(string)
	return key
}

// TemporalOrderWorkflows runs order placement on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.PlacementTaskQueue}
}

// PlaceOrder starts the placement workflow and waits for its result.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, apperror.Unexpected(errors.New("temporal order workflows not configured"))
	}
	if order == nil {
		return nil, apperror.Unexpected(errors.New("order is nil"))
	}
	traceComponent := workflowTraceID(ctx)
	idempotencyKey := idempotencyKeyFrom(ctx)
	workflowID := buildPlacementWorkflowID(idempotencyKey)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	if idempotencyKey != "" {
		// A finished run must not be replaced by a second placement.
		options.WorkflowIDReusePolicy = enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.PlacementWorkflowName,
		orderworkflows.PlacementWorkflowInput{Order: *order.Clone(), TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && idempotencyKey != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, apperror.Unexpected(err)
		}
	}
	var created orderdomain.Order
	if err := run.Get(ctx, &created); err != nil {
		return nil, failures.FromTemporal(err)
	}
	return &created, nil
}

// InlineOrderWorkflows executes the use case directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	orders ports.UseCase
}

func NewInlineOrderWorkflows(orders ports.UseCase) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{orders: orders}
}

func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	if o == nil || o.orders == nil {
		return nil, apperror.Unexpected(errors.New("inline order workflows not configured"))
	}
	return o.orders.CreateNewOrder(ctx, order)
}

func buildPlacementWorkflowID(idempotencyKey string) string {
	if idempotencyKey != "" {
		return fmt.Sprintf("order-placement-idem-%s", hashIdempotencyKey(idempotencyKey))
	}
	return fmt.Sprintf("order-placement-%s", uuid.NewString())
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
