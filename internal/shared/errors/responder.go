package errors

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps domain and application errors to a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents. Mappers run in order; the first match wins and
// anything unmatched becomes a 500 whose detail is withheld from the client.
type Responder struct {
	mappers []ErrorMapper
	logger  *slog.Logger
}

func NewResponder(logger *slog.Logger, mappers ...ErrorMapper) *Responder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Responder{mappers: mappers, logger: logger}
}

func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

func (r *Responder) RespondError(c *gin.Context, err error) {
	problem := r.Resolve(err)
	if problem.Status >= http.StatusInternalServerError {
		r.logger.LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
			slog.String("http.route", c.FullPath()),
			slog.Int("http.status", problem.Status),
			slog.String("error", err.Error()),
		)
	}
	r.Respond(c, problem)
}

// Resolve maps err without writing a response.
func (r *Responder) Resolve(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	return ErrInternal
}

func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}
