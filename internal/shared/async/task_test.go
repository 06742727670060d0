package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestGo_SurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "span"))
	release := make(chan struct{})
	var seen any
	task := Go(ctx, func(ctx context.Context) error {
		<-release
		seen = ctx.Value(ctxKey{})
		return ctx.Err()
	})
	cancel()
	close(release)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, task.Wait(waitCtx))
	require.Equal(t, "span", seen)
}

func TestGo_RecordsError(t *testing.T) {
	boom := errors.New("boom")
	task := Go(context.Background(), func(context.Context) error { return boom })
	<-task.Done()
	require.ErrorIs(t, task.Err(), boom)
}

func TestGo_RecoversPanic(t *testing.T) {
	task := Go(context.Background(), func(context.Context) error { panic("nil map") })
	<-task.Done()
	require.ErrorContains(t, task.Err(), "nil map")
}

func TestWait_HonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	task := Go(context.Background(), func(context.Context) error {
		<-block
		return nil
	})
	require.NoError(t, task.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, task.Wait(ctx), context.DeadlineExceeded)
}

func TestCompleted(t *testing.T) {
	boom := errors.New("boom")
	task := Completed(boom)
	select {
	case <-task.Done():
	default:
		t.Fatal("completed task must be done")
	}
	require.ErrorIs(t, task.Err(), boom)
}
