package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Checkout(ctx context.Context, input ports.CheckoutInput) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Orders.Checkout", trace.WithAttributes(
		attribute.String("session.id", input.SessionID),
		attribute.String("order.payment_method", input.PaymentMethod),
	))
	defer span.End()

	order, err := s.inner.Checkout(ctx, input)
	if err != nil {
		s.metrics.recordCheckout(ctx, "failed")
		return domain.Order{}, s.handleError(ctx, span, err, "checkout failed", slog.String("session.id", input.SessionID))
	}
	s.metrics.recordCheckout(ctx, "placed")
	span.SetAttributes(attribute.Int64("order.id", order.ID), attribute.Float64("order.total", order.Total))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.Int64("order.id", order.ID),
		slog.Int("order.items", len(order.Items)),
		slog.String("session.id", input.SessionID),
	)
	return order, nil
}

func (s *Service) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Orders.MyOrders")
	defer span.End()

	result, err := s.inner.MyOrders(ctx, token)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders")
	}
	span.SetAttributes(attribute.Int("orders.result.count", len(result)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Orders.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx, token)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.result.count", len(result)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, token string, id int64, status string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Orders.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", status),
	))
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, token, id, status)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", id))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order status updated", slog.Int64("order.id", id), slog.String("order.status", status))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	checkouts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	checkouts, _ := m.Int64Counter("orders.checkout", metric.WithDescription("Number of checkout attempts by outcome"))
	return serviceMetrics{checkouts: checkouts}
}

func (m serviceMetrics) recordCheckout(ctx context.Context, outcome string) {
	if m.checkouts == nil {
		return
	}
	m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

var _ ports.Service = (*Service)(nil)
