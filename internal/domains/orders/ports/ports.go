package ports

import (
	"context"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	notificationports "github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	prefdomain "github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
)

// Gateway is the outbound port to the order endpoints of the backend.
type Gateway interface {
	CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (domain.Order, error)
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, token string, id int64, status domain.Status) (domain.Order, error)
}

// Submission is one checkout attempt of a browser session.
type Submission struct {
	SessionID string
	Token     string
	Request   domain.OrderRequest
}

// OrderSubmitter places orders, either inline or through a durable workflow.
type OrderSubmitter interface {
	Submit(ctx context.Context, submission Submission) (domain.Order, error)
}

// EventPublisher announces placed orders to downstream consumers.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, sessionID string, order domain.Order) error
}

// CheckoutInput carries the session state checkout reads and mutates.
type CheckoutInput struct {
	SessionID     string
	Token         string
	Language      prefdomain.Language
	Cart          cartports.Store
	Notifications notificationports.Queue
	Shipping      domain.ShippingForm
	PaymentMethod string
}

// Service defines the order use cases exposed to adapters.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (domain.Order, error)
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, token string, id int64, status string) (domain.Order, error)
}
