package storefrontserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	accountsapp "github.com/Apurer/go-gin-storefront/internal/domains/accounts/application"
	accountsdomain "github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	notificationsdomain "github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	prefdomain "github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// NewResponder maps every storefront error family onto problem details.
func NewResponder(logger *slog.Logger) *apierrors.Responder {
	return apierrors.NewResponder(logger,
		catalogProblems,
		orderProblems,
		accountProblems,
		inputProblems,
		backendProblems,
	)
}

func catalogProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogdomain.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogdomain.ErrImageTooLarge):
		return apierrors.ErrTooLarge.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput), errors.Is(err, catalogdomain.ErrMissingImage):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersdomain.ErrSignInRequired):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, ordersdomain.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func accountProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, accountsdomain.ErrUnauthenticated):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, accountsdomain.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, accountsapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func inputProblems(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, cartdomain.ErrInvalidQuantity) ||
		errors.Is(err, notificationsdomain.ErrInvalidKind) ||
		errors.Is(err, prefdomain.ErrUnsupportedLanguage) {
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

// backendProblems forwards statuses the backend reported that no domain mapper claimed.
func backendProblems(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, backendclient.ErrNotConfigured) {
		return apierrors.ErrUnavailable.WithDetail("backend is not configured"), true
	}
	var apiErr *backendclient.APIError
	if !errors.As(err, &apiErr) {
		return apierrors.ProblemDetail{}, false
	}
	problem := apierrors.FromStatus(apiErr.StatusCode, apiErr.Message)
	if len(apiErr.Errors) > 0 && problem.Status < http.StatusInternalServerError {
		problem = problem.WithExtension("errors", apiErr.Errors)
	}
	return problem, true
}

func respondBindError(c *gin.Context, responder *apierrors.Responder, err error) {
	responder.BadRequest(c, err.Error())
}
