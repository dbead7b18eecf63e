package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/store"

// Store decorates a cart store with tracing, logging, and metrics.
type Store struct {
	inner   ports.Store
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics storeMetrics
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Store) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Store) {
		s.metrics = newStoreMetrics(m)
	}
}

// New wraps a cart store.
func New(inner ports.Store, opts ...Option) ports.Store {
	s := &Store{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newStoreMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) {
	ctx, span := s.tracer.Start(ctx, "CartStore.AddItem",
		trace.WithAttributes(attribute.Int64("product.id", product.ID), attribute.Int("cart.quantity", quantity)))
	defer span.End()

	s.inner.AddItem(ctx, product, quantity)
	s.record(ctx, span, "add_item", slog.Int64("product.id", product.ID), slog.Int("quantity", quantity))
}

func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	ctx, span := s.tracer.Start(ctx, "CartStore.RemoveItem", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	s.inner.RemoveItem(ctx, productID)
	s.record(ctx, span, "remove_item", slog.Int64("product.id", productID))
}

func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) {
	ctx, span := s.tracer.Start(ctx, "CartStore.SetQuantity",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int("cart.quantity", quantity)))
	defer span.End()

	s.inner.SetQuantity(ctx, productID, quantity)
	s.record(ctx, span, "set_quantity", slog.Int64("product.id", productID), slog.Int("quantity", quantity))
}

func (s *Store) Clear(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "CartStore.Clear")
	defer span.End()

	s.inner.Clear(ctx)
	s.record(ctx, span, "clear")
}

func (s *Store) Subtract(ctx context.Context, placed domain.Cart) {
	ctx, span := s.tracer.Start(ctx, "CartStore.Subtract", trace.WithAttributes(attribute.Int("cart.placed_lines", len(placed))))
	defer span.End()

	s.inner.Subtract(ctx, placed)
	s.record(ctx, span, "subtract", slog.Int("placed_lines", len(placed)))
}

func (s *Store) Items() domain.Cart { return s.inner.Items() }

func (s *Store) Total() float64 { return s.inner.Total() }

func (s *Store) ItemCount() int { return s.inner.ItemCount() }

func (s *Store) Subscribe(observer func(domain.Cart)) func() {
	return s.inner.Subscribe(observer)
}

func (s *Store) record(ctx context.Context, span trace.Span, operation string, attrs ...slog.Attr) {
	count := s.inner.ItemCount()
	span.SetAttributes(attribute.Int("cart.item_count", count))
	s.metrics.recordMutation(ctx, operation)
	if s.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("operation", operation), slog.Int("cart.item_count", count))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "cart updated", attrs...)
}

type storeMetrics struct {
	mutations metric.Int64Counter
}

func newStoreMetrics(m metric.Meter) storeMetrics {
	if m == nil {
		return storeMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.store.mutations", metric.WithDescription("Number of cart mutations by operation"))
	return storeMetrics{mutations: mutations}
}

func (m storeMetrics) recordMutation(ctx context.Context, operation string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

var _ ports.Store = (*Store)(nil)
