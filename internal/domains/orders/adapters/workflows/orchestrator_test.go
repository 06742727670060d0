package workflows

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/Apurer/go-gin-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

type echoUseCase struct {
	seen *orderdomain.Order
}

func (e *echoUseCase) FindOrder(context.Context, orderdomain.Filter) ([]*orderdomain.Order, error) {
	return nil, nil
}

func (e *echoUseCase) CreateNewOrder(_ context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	e.seen = order
	created := order.Clone()
	created.ID = 1
	return created, nil
}

func TestInlineOrderWorkflowsDelegates(t *testing.T) {
	uc := &echoUseCase{}
	orchestrator := NewInlineOrderWorkflows(uc)

	created, err := orchestrator.PlaceOrder(context.Background(), &orderdomain.Order{Products: []orderdomain.LineItem{{Name: "A", Quantity: 1}}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.NotNil(t, uc.seen)
}

func TestUnconfiguredOrchestratorsFailUnexpected(t *testing.T) {
	_, err := (*InlineOrderWorkflows)(nil).PlaceOrder(context.Background(), &orderdomain.Order{})
	require.ErrorIs(t, err, apperror.ErrUnexpected)

	_, err = NewTemporalOrderWorkflows(nil).PlaceOrder(context.Background(), &orderdomain.Order{})
	require.ErrorIs(t, err, apperror.ErrUnexpected)
}

func TestPlacementWorkflowIDs(t *testing.T) {
	keyed := buildPlacementWorkflowID("client-key-1")
	assert.Equal(t, keyed, buildPlacementWorkflowID("client-key-1"))
	assert.True(t, strings.HasPrefix(keyed, "order-placement-idem-"))

	assert.NotEqual(t, buildPlacementWorkflowID(""), buildPlacementWorkflowID(""))

	ctx := WithIdempotencyKey(context.Background(), "  ")
	assert.Empty(t, idempotencyKeyFrom(ctx))
	ctx = WithIdempotencyKey(context.Background(), "abc")
	assert.Equal(t, "abc", idempotencyKeyFrom(ctx))
}
