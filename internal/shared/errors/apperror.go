package errors

import (
	"errors"

	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

// FromAppError maps tagged application errors onto problem documents.
// Unexpected errors keep their cause server-side.
func FromAppError(err error) (ProblemDetail, bool) {
	var tagged *apperror.Error
	if !errors.As(err, &tagged) {
		return ProblemDetail{}, false
	}
	var problem ProblemDetail
	switch tagged.Kind() {
	case apperror.KindNotFound:
		problem = ErrNotFound.WithDetail(tagged.Message())
	case apperror.KindValidationConflict:
		problem = ErrValidation.WithDetail(tagged.Message())
	default:
		problem = ErrInternal.WithDetail(apperror.UnexpectedMessage)
	}
	return problem.WithExtension("code", string(tagged.Code())), true
}
