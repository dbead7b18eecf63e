package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// ErrInvalidInput signals the checkout or status form was rejected locally.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, domain.ErrMissingShipping) ||
		errors.Is(err, domain.ErrUnsupportedPayment) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

type Service struct {
	gateway   ports.Gateway
	submitter ports.OrderSubmitter
	events    ports.EventPublisher
	logger    *slog.Logger
}

type Option func(*Service)

func WithEventPublisher(events ports.EventPublisher) Option {
	return func(s *Service) {
		s.events = events
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the order collaborators. submitter places checkout orders; gateway serves the rest.
func NewService(gateway ports.Gateway, submitter ports.OrderSubmitter, opts ...Option) *Service {
	s := &Service{
		gateway:   gateway,
		submitter: submitter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Checkout places an order for the session's cart. On success the submitted lines are taken out of
// the cart and a success notification is enqueued; items added while the order was in flight stay.
// A submission failure enqueues an error notification and leaves the cart alone.
func (s *Service) Checkout(ctx context.Context, input ports.CheckoutInput) (domain.Order, error) {
	if strings.TrimSpace(input.Token) == "" {
		return domain.Order{}, domain.ErrSignInRequired
	}
	cart := input.Cart.Items()
	lines := make([]domain.OrderLine, 0, len(cart))
	for _, line := range cart {
		lines = append(lines, domain.OrderLine{ProductID: line.Product.ID, Quantity: line.Quantity})
	}
	req, err := domain.NewOrderRequest(lines, input.Shipping, input.PaymentMethod)
	if err != nil {
		return domain.Order{}, mapError(err)
	}

	order, err := s.submitter.Submit(ctx, ports.Submission{SessionID: input.SessionID, Token: input.Token, Request: req})
	if err != nil {
		input.Notifications.Error(
			input.Language.Pick("Order failed", "فشل الطلب"),
			input.Language.Pick("We could not place your order. Please try again.", "تعذر إتمام طلبك. يرجى المحاولة مرة أخرى."),
		)
		return domain.Order{}, err
	}

	input.Cart.Subtract(ctx, cart)
	input.Notifications.Success(
		input.Language.Pick("Order placed", "تم تقديم الطلب"),
		fmt.Sprintf(input.Language.Pick("Order #%d has been placed successfully", "تم تقديم الطلب رقم %d بنجاح"), order.ID),
	)
	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, input.SessionID, order); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order placed event",
				slog.Int64("order.id", order.ID), slog.String("error", err.Error()))
		}
	}
	return order, nil
}

func (s *Service) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrSignInRequired
	}
	return s.gateway.MyOrders(ctx, token)
}

func (s *Service) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrSignInRequired
	}
	return s.gateway.ListOrders(ctx, token)
}

func (s *Service) UpdateStatus(ctx context.Context, token string, id int64, raw string) (domain.Order, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Order{}, domain.ErrSignInRequired
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	if id <= 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	return s.gateway.UpdateStatus(ctx, token, id, status)
}

var _ ports.Service = (*Service)(nil)
