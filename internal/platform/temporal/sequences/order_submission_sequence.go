package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
)

// RunOrderSubmissionSequence places the order through the retried SubmitOrder activity.
func RunOrderSubmissionSequence(ctx workflow.Context, input orderactivities.SubmitOrderInput) (domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order submission sequence started", "sessionId", input.SessionID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        4,
			NonRetryableErrorTypes: []string{orderactivities.RejectedErrorType},
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.SubmitOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order submission sequence failed", "sessionId", input.SessionID, "error", err)
		return domain.Order{}, err
	}
	logger.Info("order submission sequence placed order", "sessionId", input.SessionID, "orderId", order.ID)
	return order, nil
}
