package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	notificationsapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	notificationdomain "github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	prefdomain "github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
	storagememory "github.com/Apurer/go-gin-storefront/internal/domains/storage/adapters/memory"
)

type fakeSubmitter struct {
	submissions []ports.Submission
	err         error
	during      func()
}

func (f *fakeSubmitter) Submit(_ context.Context, submission ports.Submission) (domain.Order, error) {
	f.submissions = append(f.submissions, submission)
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return domain.Order{}, f.err
	}
	return domain.Order{ID: 501, Status: domain.StatusPending}, nil
}

type fakeEvents struct {
	placed []int64
	err    error
}

func (f *fakeEvents) OrderPlaced(_ context.Context, _ string, order domain.Order) error {
	f.placed = append(f.placed, order.ID)
	return f.err
}

type fakeGateway struct {
	ports.Gateway
	updated []domain.Status
}

func (f *fakeGateway) UpdateStatus(_ context.Context, _ string, id int64, status domain.Status) (domain.Order, error) {
	f.updated = append(f.updated, status)
	return domain.Order{ID: id, Status: status}, nil
}

func checkoutInput(t *testing.T) ports.CheckoutInput {
	t.Helper()
	ctx := context.Background()
	cart := cartapp.NewStore(ctx, storagememory.NewProvider().Namespace("sid"))
	cart.AddItem(ctx, cartdomain.Product{ID: 1, Price: 10}, 2)
	cart.AddItem(ctx, cartdomain.Product{ID: 2, Price: 5}, 1)
	return ports.CheckoutInput{
		SessionID:     "sid",
		Token:         "tok",
		Language:      prefdomain.LanguageEnglish,
		Cart:          cart,
		Notifications: notificationsapp.NewQueue(),
		Shipping:      domain.ShippingForm{Name: "Lina", Phone: "0100", City: "Cairo", Street: "Nile St"},
	}
}

func TestCheckout_SubmitsCartAndClearsIt(t *testing.T) {
	submitter := &fakeSubmitter{}
	events := &fakeEvents{}
	service := NewService(&fakeGateway{}, submitter, WithEventPublisher(events))
	input := checkoutInput(t)

	order, err := service.Checkout(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, int64(501), order.ID)
	require.Len(t, submitter.submissions, 1)
	submission := submitter.submissions[0]
	assert.Equal(t, "sid", submission.SessionID)
	assert.Equal(t, []domain.OrderLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}, submission.Request.Items)
	assert.Equal(t, domain.PaymentCashOnDelivery, submission.Request.PaymentMethod)

	assert.Empty(t, input.Cart.Items())
	notifications := input.Notifications.Items()
	require.Len(t, notifications, 1)
	assert.Equal(t, notificationdomain.KindSuccess, notifications[0].Kind)
	assert.Contains(t, notifications[0].Message, "#501")
	assert.Equal(t, []int64{501}, events.placed)
	input.Notifications.ClearAll()
}

func TestCheckout_KeepsItemsAddedWhileSubmitting(t *testing.T) {
	ctx := context.Background()
	input := checkoutInput(t)
	submitter := &fakeSubmitter{during: func() {
		input.Cart.AddItem(ctx, cartdomain.Product{ID: 1, Price: 10}, 1)
		input.Cart.AddItem(ctx, cartdomain.Product{ID: 3, Price: 8}, 2)
	}}
	service := NewService(&fakeGateway{}, submitter)

	_, err := service.Checkout(ctx, input)

	require.NoError(t, err)
	require.Len(t, submitter.submissions, 1)
	assert.Equal(t, []domain.OrderLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}, submitter.submissions[0].Request.Items)
	items := input.Cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(3), items[1].Product.ID)
	assert.Equal(t, 2, items[1].Quantity)
	input.Notifications.ClearAll()
}

func TestCheckout_FailureKeepsCartAndEnqueuesError(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("backend down")}
	service := NewService(&fakeGateway{}, submitter)
	input := checkoutInput(t)
	input.Language = prefdomain.LanguageArabic

	_, err := service.Checkout(context.Background(), input)

	require.Error(t, err)
	assert.Equal(t, 3, input.Cart.ItemCount())
	notifications := input.Notifications.Items()
	require.Len(t, notifications, 1)
	assert.Equal(t, notificationdomain.KindError, notifications[0].Kind)
	assert.Equal(t, "فشل الطلب", notifications[0].Title)
	input.Notifications.ClearAll()
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	service := NewService(&fakeGateway{}, &fakeSubmitter{}, WithEventPublisher(&fakeEvents{err: errors.New("broker down")}))
	input := checkoutInput(t)

	_, err := service.Checkout(context.Background(), input)

	require.NoError(t, err)
	input.Notifications.ClearAll()
}

func TestCheckout_RejectsLocally(t *testing.T) {
	submitter := &fakeSubmitter{}
	service := NewService(&fakeGateway{}, submitter)

	input := checkoutInput(t)
	input.Token = ""
	_, err := service.Checkout(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrSignInRequired)

	input = checkoutInput(t)
	input.Cart.Clear(context.Background())
	_, err = service.Checkout(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	input = checkoutInput(t)
	input.Shipping.Street = " "
	_, err = service.Checkout(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrMissingShipping)

	assert.Empty(t, submitter.submissions)
	assert.Empty(t, input.Notifications.Items())
}

func TestUpdateStatus_ValidatesStatus(t *testing.T) {
	gateway := &fakeGateway{}
	service := NewService(gateway, &fakeSubmitter{})

	_, err := service.UpdateStatus(context.Background(), "tok", 5, "teleported")
	assert.ErrorIs(t, err, ErrInvalidInput)

	order, err := service.UpdateStatus(context.Background(), "tok", 5, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, order.Status)
	assert.Equal(t, []domain.Status{domain.StatusShipped}, gateway.updated)
}

func TestMyOrders_RequiresToken(t *testing.T) {
	_, err := NewService(&fakeGateway{}, &fakeSubmitter{}).MyOrders(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrSignInRequired)
}
