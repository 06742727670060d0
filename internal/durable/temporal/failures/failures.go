// Package failures carries tagged application errors across Temporal
// activity and workflow boundaries.
package failures

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

// ToTemporal converts any error into a non-retryable application error whose
// type is the variant code. Order placement never retries.
func ToTemporal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return err
	}
	kind := apperror.KindOf(err)
	message := apperror.MessageOf(err)
	return temporal.NewNonRetryableApplicationError(message, string(apperror.CodeOf(err)), err, uint8(kind), message)
}

// FromTemporal restores the tagged variant from a workflow or activity error.
// Errors that did not originate from ToTemporal become Unexpected.
func FromTemporal(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() == "" {
		return apperror.Unexpected(err)
	}
	var (
		kind    uint8
		message string
	)
	if !appErr.HasDetails() || appErr.Details(&kind, &message) != nil {
		return apperror.Unexpected(err)
	}
	return apperror.Restore(apperror.Kind(kind), apperror.Code(appErr.Type()), message)
}
