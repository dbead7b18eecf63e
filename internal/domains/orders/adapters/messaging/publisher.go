package messaging

import (
	"context"
	"strconv"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/events"
)

const (
	OrderPlacedEvent      = "order.placed"
	OrderPlacedVersion    = 1
	OrderPlacedRoutingKey = "order.placed.v1"
)

// OrderPlacedPayload is the public contract of the order.placed event.
type OrderPlacedPayload struct {
	OrderID       int64             `json:"orderId"`
	UserID        int64             `json:"userId"`
	Status        string            `json:"status"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
	City          string            `json:"city"`
	Lines         []OrderPlacedLine `json:"lines"`
	PlacedAt      time.Time         `json:"placedAt"`
}

type OrderPlacedLine struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Publisher maps placed orders onto event envelopes.
type Publisher struct {
	publisher events.Publisher
}

func NewPublisher(publisher events.Publisher) *Publisher {
	return &Publisher{publisher: publisher}
}

// OrderPlaced publishes the order keyed by its id. The session id travels as the correlation id.
func (p *Publisher) OrderPlaced(ctx context.Context, sessionID string, order domain.Order) error {
	payload := OrderPlacedPayload{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        string(order.Status),
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		City:          order.ShippingCity,
		Lines:         make([]OrderPlacedLine, 0, len(order.Items)),
		PlacedAt:      order.CreatedAt,
	}
	for _, item := range order.Items {
		payload.Lines = append(payload.Lines, OrderPlacedLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	envelope := events.NewEnvelope(OrderPlacedEvent, OrderPlacedVersion, strconv.FormatInt(order.ID, 10), sessionID, payload)
	return p.publisher.Publish(ctx, OrderPlacedRoutingKey, envelope.EventID, envelope)
}

var _ ports.EventPublisher = (*Publisher)(nil)
