package errors

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-service/internal/shared/apperror"
)

// ContentTypeProblemJSON is the media type of problem documents.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns an error into a problem when it recognises it.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents, trying its mappers before the default
// handling.
type Responder struct {
	BaseURI string
	mappers []ErrorMapper
}

// NewResponder creates a responder. baseURI prefixes relative problem types.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// Respond sends a ProblemDetail with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and responds. Unrecognised errors become a 500 whose
// detail never carries the cause; the cause is attached to the gin context.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	_ = c.Error(err)
	r.Respond(c, ErrInternal.WithDetail(apperror.UnexpectedMessage))
}
