package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	ordersworkflows "github.com/Apurer/go-gin-order-service/internal/domains/orders/adapters/workflows"
	platformobservability "github.com/Apurer/go-gin-order-service/internal/platform/observability"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryCore(t *testing.T) *Core {
	t.Helper()
	core, cleanup, err := BuildCore(context.Background(), Config{}, &platformobservability.Instruments{Logger: quietLogger()})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return core
}

func TestBuildCoreWithoutPostgresIsNotDurable(t *testing.T) {
	core := memoryCore(t)
	assert.False(t, core.Durable)
	assert.ErrorIs(t, RequireDurable(core), ErrNotDurable)
	assert.ErrorIs(t, RequireDurable(nil), ErrNotDurable)
	assert.NoError(t, RequireDurable(&Core{Durable: true}))
}

func TestNewOrchestratorPlacesInlineOnMemoryCore(t *testing.T) {
	dialed := false
	workflows, closeWorkflows := newOrchestrator(memoryCore(t), func() (client.Client, error) {
		dialed = true
		return mocks.NewClient(t), nil
	}, quietLogger())
	defer closeWorkflows()

	assert.False(t, dialed, "a worker cannot see this process's in-memory catalog")
	assert.IsType(t, &ordersworkflows.InlineOrderWorkflows{}, workflows)
}

func TestNewOrchestratorFallsBackWhenTemporalIsUnreachable(t *testing.T) {
	core := memoryCore(t)
	core.Durable = true

	workflows, closeWorkflows := newOrchestrator(core, func() (client.Client, error) {
		return nil, errors.New("connection refused")
	}, quietLogger())
	defer closeWorkflows()

	assert.IsType(t, &ordersworkflows.InlineOrderWorkflows{}, workflows)
}

func TestNewOrchestratorUsesTemporalOnDurableCore(t *testing.T) {
	core := memoryCore(t)
	core.Durable = true
	temporalClient := mocks.NewClient(t)
	temporalClient.On("Close").Return().Once()

	workflows, closeWorkflows := newOrchestrator(core, func() (client.Client, error) {
		return temporalClient, nil
	}, quietLogger())

	assert.IsType(t, &ordersworkflows.TemporalOrderWorkflows{}, workflows)
	closeWorkflows()
}
