package orders

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	backendclient "github.com/Apurer/go-gin-storefront/internal/clients/http/backend"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
)

type flakyGateway struct {
	ordersports.Gateway
	failures int
	err      error
	calls    int
}

func (g *flakyGateway) CreateOrder(_ context.Context, token string, req domain.OrderRequest) (domain.Order, error) {
	g.calls++
	if g.calls <= g.failures {
		return domain.Order{}, g.err
	}
	return domain.Order{ID: 77, Status: domain.StatusPending, Total: float64(len(req.Items))}, nil
}

func newEnv(t *testing.T, gateway ordersports.Gateway) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(OrderSubmissionWorkflow, workflow.RegisterOptions{Name: OrderSubmissionWorkflowName})
	activities := orderactivities.NewActivities(gateway)
	env.RegisterActivityWithOptions(activities.SubmitOrder, activity.RegisterOptions{Name: orderactivities.SubmitOrderActivityName})
	return env
}

func input() OrderSubmissionWorkflowInput {
	return OrderSubmissionWorkflowInput{
		Submission: orderactivities.SubmitOrderInput{
			SessionID: "sid",
			Token:     "tok",
			Request:   domain.OrderRequest{Items: []domain.OrderLine{{ProductID: 1, Quantity: 1}}, PaymentMethod: domain.PaymentCashOnDelivery},
		},
		TraceID: "trace",
	}
}

func TestOrderSubmissionWorkflow_RetriesTransientFailures(t *testing.T) {
	gateway := &flakyGateway{failures: 2, err: errors.New("connection reset")}
	env := newEnv(t, gateway)

	env.ExecuteWorkflow(OrderSubmissionWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	assert.Equal(t, int64(77), order.ID)
	assert.Equal(t, 3, gateway.calls)
}

func TestOrderSubmissionWorkflow_DoesNotRetryRejections(t *testing.T) {
	gateway := &flakyGateway{failures: 10, err: &backendclient.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "out of stock"}}
	env := newEnv(t, gateway)

	env.ExecuteWorkflow(OrderSubmissionWorkflowName, input())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of stock")
	assert.Equal(t, 1, gateway.calls)
}
