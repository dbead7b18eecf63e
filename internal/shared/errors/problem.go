// Package errors renders failures as RFC 7807 problem details.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy; the receiver's map is never shared with the result.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeOutOfStock   = "/problems/out-of-stock"
	TypeInternal     = "/problems/internal-error"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeBadRequest   = "/problems/bad-request"
	TypeTooLarge     = "/problems/payload-too-large"
	TypeUpstream     = "/problems/upstream-error"
	TypeUnavailable  = "/problems/service-unavailable"
)

var (
	ErrNotFound     = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	ErrValidation   = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest}
	ErrBadRequest   = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	ErrConflict     = ProblemDetail{Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict}
	ErrOutOfStock   = ProblemDetail{Type: TypeOutOfStock, Title: "Out Of Stock", Status: http.StatusConflict}
	ErrInternal     = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
	ErrUnauthorized = ProblemDetail{Type: TypeUnauthorized, Title: "Unauthorized", Status: http.StatusUnauthorized}
	ErrForbidden    = ProblemDetail{Type: TypeForbidden, Title: "Forbidden", Status: http.StatusForbidden}
	ErrTooLarge     = ProblemDetail{Type: TypeTooLarge, Title: "Payload Too Large", Status: http.StatusRequestEntityTooLarge}
	ErrUpstream     = ProblemDetail{Type: TypeUpstream, Title: "Upstream Error", Status: http.StatusBadGateway}
	ErrUnavailable  = ProblemDetail{Type: TypeUnavailable, Title: "Service Unavailable", Status: http.StatusServiceUnavailable}
)

// NewValidationProblem attaches field-level messages.
func NewValidationProblem(detail string, fields map[string]string) ProblemDetail {
	p := ErrValidation.WithDetail(detail)
	if len(fields) > 0 {
		p = p.WithExtension("fields", fields)
	}
	return p
}

func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// FromStatus picks the template for a status reported by an upstream service. Upstream 5xx
// surface as 502 so clients can tell a backend outage from a BFF failure.
func FromStatus(status int, detail string) ProblemDetail {
	var p ProblemDetail
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		p = ErrValidation
		p.Status = status
	case status == http.StatusUnauthorized:
		p = ErrUnauthorized
	case status == http.StatusForbidden:
		p = ErrForbidden
	case status == http.StatusNotFound:
		p = ErrNotFound
	case status == http.StatusConflict:
		p = ErrConflict
	case status == http.StatusRequestEntityTooLarge:
		p = ErrTooLarge
	case status >= http.StatusInternalServerError:
		p = ErrUpstream
	default:
		p = ErrBadRequest
		if status >= 400 {
			p.Status = status
		}
	}
	return p.WithDetail(detail)
}
