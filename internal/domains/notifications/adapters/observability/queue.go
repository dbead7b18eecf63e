package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
)

// Queue decorates a notification queue with logging and metrics. Enqueue carries no context, so
// no spans are recorded here.
type Queue struct {
	inner   ports.Queue
	logger  *slog.Logger
	metrics queueMetrics
}

type Option func(*Queue)

func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

func WithMeter(m metric.Meter) Option {
	return func(q *Queue) {
		q.metrics = newQueueMetrics(m)
	}
}

// New wraps a notification queue.
func New(inner ports.Queue, opts ...Option) ports.Queue {
	q := &Queue{
		inner:  inner,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

func (q *Queue) Enqueue(kind domain.Kind, title, message string, opts ...ports.EnqueueOption) domain.Notification {
	n := q.inner.Enqueue(kind, title, message, opts...)
	q.recordEnqueued(n)
	return n
}

func (q *Queue) Success(title, message string, opts ...ports.EnqueueOption) domain.Notification {
	return q.Enqueue(domain.KindSuccess, title, message, opts...)
}

func (q *Queue) Error(title, message string, opts ...ports.EnqueueOption) domain.Notification {
	return q.Enqueue(domain.KindError, title, message, opts...)
}

func (q *Queue) Warning(title, message string, opts ...ports.EnqueueOption) domain.Notification {
	return q.Enqueue(domain.KindWarning, title, message, opts...)
}

func (q *Queue) Info(title, message string, opts ...ports.EnqueueOption) domain.Notification {
	return q.Enqueue(domain.KindInfo, title, message, opts...)
}

func (q *Queue) Dismiss(id int64) {
	q.inner.Dismiss(id)
	q.metrics.recordDismissed()
}

func (q *Queue) ClearAll() { q.inner.ClearAll() }

func (q *Queue) Items() domain.Queue { return q.inner.Items() }

func (q *Queue) Subscribe(observer func(domain.Queue)) func() {
	return q.inner.Subscribe(observer)
}

func (q *Queue) recordEnqueued(n domain.Notification) {
	q.metrics.recordEnqueued(n.Kind)
	if q.logger == nil {
		return
	}
	level := slog.LevelDebug
	if n.Kind == domain.KindError {
		level = slog.LevelInfo
	}
	q.logger.LogAttrs(context.Background(), level, "notification enqueued",
		slog.Int64("notification.id", n.ID),
		slog.String("notification.kind", string(n.Kind)),
		slog.String("notification.title", n.Title),
		slog.Int64("notification.duration_ms", n.Duration.Milliseconds()),
	)
}

type queueMetrics struct {
	enqueued  metric.Int64Counter
	dismissed metric.Int64Counter
}

func newQueueMetrics(m metric.Meter) queueMetrics {
	if m == nil {
		return queueMetrics{}
	}
	enqueued, _ := m.Int64Counter("notifications.enqueued", metric.WithDescription("Number of notifications enqueued by kind"))
	dismissed, _ := m.Int64Counter("notifications.dismiss_calls", metric.WithDescription("Number of dismiss calls, including no-ops"))
	return queueMetrics{enqueued: enqueued, dismissed: dismissed}
}

func (m queueMetrics) recordEnqueued(kind domain.Kind) {
	if m.enqueued != nil {
		m.enqueued.Add(context.Background(), 1, metric.WithAttributes(attribute.String("notification.kind", string(kind))))
	}
}

func (m queueMetrics) recordDismissed() {
	if m.dismissed != nil {
		m.dismissed.Add(context.Background(), 1)
	}
}

var _ ports.Queue = (*Queue)(nil)
