package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/sequences"
)

const (
	// OrderSubmissionWorkflowName is the public identifier for registering the workflow.
	OrderSubmissionWorkflowName = "orders.workflows.Submission"
	// OrderSubmissionTaskQueue is the queue consumed by the worker processing checkout.
	OrderSubmissionTaskQueue = "ORDER_SUBMISSION"
)

// OrderSubmissionWorkflowInput captures one checkout attempt.
type OrderSubmissionWorkflowInput struct {
	Submission orderactivities.SubmitOrderInput
	TraceID    string
}

// OrderSubmissionWorkflow places an order durably so a crashed API process does not lose it.
func OrderSubmissionWorkflow(ctx workflow.Context, input OrderSubmissionWorkflowInput) (domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	sessionID := input.Submission.SessionID
	logger.Info("OrderSubmissionWorkflow started", withTraceID(input.TraceID, "sessionId", sessionID)...)
	order, err := sequences.RunOrderSubmissionSequence(ctx, input.Submission)
	if err != nil {
		logger.Error("OrderSubmissionWorkflow failed", withTraceID(input.TraceID, "sessionId", sessionID, "error", err)...)
		return domain.Order{}, err
	}
	logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
