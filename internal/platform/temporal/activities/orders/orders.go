package orders

import (
	"context"
	"errors"
	"net/http"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// SubmitOrderActivityName places an order at the backend.
const SubmitOrderActivityName = "orders.activities.SubmitOrder"

// RejectedErrorType marks backend rejections that retrying cannot fix.
const RejectedErrorType = "OrderRejected"

// SubmitOrderInput is the activity payload.
type SubmitOrderInput struct {
	SessionID string
	Token     string
	Request   domain.OrderRequest
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	gateway ordersports.Gateway
}

func NewActivities(gateway ordersports.Gateway) *Activities {
	return &Activities{gateway: gateway}
}

// SubmitOrder creates the order. Client errors (4xx) are returned as non-retryable.
func (a *Activities) SubmitOrder(ctx context.Context, input SubmitOrderInput) (domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.gateway == nil {
		logger.Error("submit order activity not initialized", "sessionId", input.SessionID)
		return domain.Order{}, errors.New("submit order activity not initialized")
	}
	logger.Info("SubmitOrder activity started", "sessionId", input.SessionID, "lines", len(input.Request.Items))
	order, err := a.gateway.CreateOrder(ctx, input.Token, input.Request)
	if err != nil {
		logger.Error("SubmitOrder activity failed", "sessionId", input.SessionID, "error", err)
		if status := backendclient.StatusCode(err); status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			return domain.Order{}, temporal.NewNonRetryableApplicationError(err.Error(), RejectedErrorType, err)
		}
		return domain.Order{}, err
	}
	logger.Info("SubmitOrder activity completed", "sessionId", input.SessionID, "orderId", order.ID)
	return order, nil
}
