package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.OrderSubmitter = (*TemporalSubmitter)(nil)
	_ ports.OrderSubmitter = (*InlineSubmitter)(nil)
)

// TemporalSubmitter places orders through the order submission workflow.
type TemporalSubmitter struct {
	client    client.Client
	taskQueue string
}

func NewTemporalSubmitter(c client.Client) *TemporalSubmitter {
	return &TemporalSubmitter{client: c, taskQueue: orderworkflows.OrderSubmissionTaskQueue}
}

// Submit starts the workflow and waits for the placed order. A double submit of the same
// cart while the first run is in flight joins that run instead of ordering twice.
func (s *TemporalSubmitter) Submit(ctx context.Context, submission ports.Submission) (domain.Order, error) {
	if s == nil || s.client == nil {
		return domain.Order{}, errors.New("temporal order submitter not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildSubmissionWorkflowID(submission)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: s.taskQueue,
	}
	input := orderworkflows.OrderSubmissionWorkflowInput{
		Submission: orderactivities.SubmitOrderInput{
			SessionID: submission.SessionID,
			Token:     submission.Token,
			Request:   submission.Request,
		},
		TraceID: traceComponent,
	}
	run, err := s.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderSubmissionWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return domain.Order{}, err
		}
		run = s.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// InlineSubmitter calls the backend directly, for development without a Temporal cluster.
type InlineSubmitter struct {
	gateway ports.Gateway
}

func NewInlineSubmitter(gateway ports.Gateway) *InlineSubmitter {
	return &InlineSubmitter{gateway: gateway}
}

func (s *InlineSubmitter) Submit(ctx context.Context, submission ports.Submission) (domain.Order, error) {
	if s == nil || s.gateway == nil {
		return domain.Order{}, errors.New("inline order submitter not configured")
	}
	return s.gateway.CreateOrder(ctx, submission.Token, submission.Request)
}

func buildSubmissionWorkflowID(submission ports.Submission) string {
	sum := sha256.New()
	shipping := submission.Request.Shipping
	fmt.Fprintf(sum, "%s|%s|%s|%s|%s|%s|%s",
		submission.SessionID,
		submission.Request.PaymentMethod,
		shipping.Name,
		shipping.Phone,
		shipping.City,
		shipping.Street,
		shipping.Notes,
	)
	for _, line := range submission.Request.Items {
		fmt.Fprintf(sum, "|%d:%d", line.ProductID, line.Quantity)
	}
	// First 16 hex chars keep the id readable and deterministic.
	return "order-submission-" + hex.EncodeToString(sum.Sum(nil)[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
