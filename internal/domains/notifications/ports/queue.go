package ports

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
)

// EnqueueOptions carries optional enqueue parameters.
type EnqueueOptions struct {
	Duration    time.Duration
	HasDuration bool
}

// EnqueueOption customizes a single enqueue call.
type EnqueueOption func(*EnqueueOptions)

// WithDuration overrides the per-kind default. Zero keeps the notification until dismissed.
func WithDuration(d time.Duration) EnqueueOption {
	return func(o *EnqueueOptions) {
		o.Duration = d
		o.HasDuration = true
	}
}

// Persistent keeps the notification until it is dismissed.
func Persistent() EnqueueOption {
	return WithDuration(0)
}

// Queue decouples notification producers from the surface that renders them.
type Queue interface {
	Enqueue(kind domain.Kind, title, message string, opts ...EnqueueOption) domain.Notification
	Success(title, message string, opts ...EnqueueOption) domain.Notification
	Error(title, message string, opts ...EnqueueOption) domain.Notification
	Warning(title, message string, opts ...EnqueueOption) domain.Notification
	Info(title, message string, opts ...EnqueueOption) domain.Notification
	// Dismiss removes id; dismissing an absent id is a no-op.
	Dismiss(id int64)
	ClearAll()
	Items() domain.Queue
	// Subscribe delivers the current queue immediately and again after every change.
	Subscribe(observer func(domain.Queue)) (unsubscribe func())
}
