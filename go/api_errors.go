package orderserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Apurer/go-gin-order-service/internal/shared/errors"
)

var responder = apierrors.NewResponder("", apierrors.FromAppError)

// respondError reports request-shape failures the handler detected itself.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		responder.Respond(c, apierrors.NewValidationProblem(fieldErrors(invalid)))
		return
	}
	switch status {
	case http.StatusBadRequest:
		responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	case http.StatusNotFound:
		responder.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	default:
		responder.RespondError(c, err)
	}
}

// respondServiceError maps use case errors by kind.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// fieldErrors keys each failed rule by its path below the request struct,
// e.g. "Products[0].Quantity" -> "min".
func fieldErrors(invalid validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		fields[path] = fe.Tag()
	}
	return fields
}

func errInvalidID(name, value string) error {
	return fmt.Errorf("%s must be a positive integer, got %q", name, value)
}
