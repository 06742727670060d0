package failures

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

func TestRoundTrip(t *testing.T) {
	original := apperror.New(apperror.KindNotFound, "order.not_found", "Order id '3' not found.", nil)

	converted := ToTemporal(original)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, converted, &appErr)
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, "order.not_found", appErr.Type())

	restored := FromTemporal(converted)
	require.ErrorIs(t, restored, original)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(restored))
	assert.Equal(t, "Order id '3' not found.", apperror.MessageOf(restored))
}

func TestForeignErrorsBecomeUnexpected(t *testing.T) {
	restored := FromTemporal(errors.New("workflow timed out"))
	require.ErrorIs(t, restored, apperror.ErrUnexpected)

	assert.NoError(t, ToTemporal(nil))
	assert.NoError(t, FromTemporal(nil))
}
