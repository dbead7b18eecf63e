package application

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/observable"
)

var _ ports.Queue = (*Queue)(nil)

// lastID is shared by every queue in the process so ids never repeat.
var lastID atomic.Int64

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Queue holds the visible notifications and expires them on their own timers.
type Queue struct {
	scheduler Scheduler
	state     *observable.Subject[domain.Queue]

	mu     sync.Mutex
	timers map[int64]Timer
}

// Option configures the Queue.
type Option func(*Queue)

// WithScheduler replaces the wall-clock scheduler, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(q *Queue) {
		if s != nil {
			q.scheduler = s
		}
	}
}

// NewQueue constructs an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		scheduler: realScheduler{},
		state:     observable.NewSubject(domain.Queue{}, observable.WithClone(domain.Queue.Clone)),
		timers:    map[int64]Timer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// Enqueue appends a notification with the next id. When no duration option is given the per-kind
// default applies; a positive duration schedules an automatic Dismiss.
func (q *Queue) Enqueue(kind domain.Kind, title, message string, opts ...ports.EnqueueOption) domain.Notification {
	options := ports.EnqueueOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	duration := domain.DefaultDurationFor(kind)
	if options.HasDuration {
		duration = max(options.Duration, 0)
	}
	notification := domain.Notification{
		ID:       lastID.Add(1),
		Kind:     kind,
		Title:    title,
		Message:  message,
		Duration: duration,
	}

	q.state.Update(func(current domain.Queue) (domain.Queue, bool) {
		next := make(domain.Queue, 0, len(current)+1)
		next = append(next, current...)
		return append(next, notification), true
	})

	if duration > 0 {
		id := notification.ID
		// Held across AfterFunc so an early firing cannot run before the timer is recorded.
		q.mu.Lock()
		q.timers[id] = q.scheduler.AfterFunc(duration, func() { q.Dismiss(id) })
		q.mu.Unlock()
	}
	return notification
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

// Dismiss removes the notification. Whichever of the timer and a manual dismissal comes first
// wins; the other is a no-op.
func (q *Queue) Dismiss(id int64) {
	q.stopTimer(id)
	q.state.Update(func(current domain.Queue) (domain.Queue, bool) {
		i := current.IndexOf(id)
		if i < 0 {
			return current, false
		}
		next := make(domain.Queue, 0, len(current)-1)
		next = append(next, current[:i]...)
		return append(next, current[i+1:]...), true
	})
}

// ClearAll empties the queue and cancels pending timers.
func (q *Queue) ClearAll() {
	q.mu.Lock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()
	q.state.Update(func(current domain.Queue) (domain.Queue, bool) {
		return domain.Queue{}, len(current) > 0
	})
}

// Items returns a copy of the visible notifications.
func (q *Queue) Items() domain.Queue {
	return q.state.Value()
}

// Subscribe delivers the current queue now and after every change.
func (q *Queue) Subscribe(observer func(domain.Queue)) func() {
	return q.state.Subscribe(observer)
}

// PendingTimers reports how many auto-dismiss timers are still armed.
func (q *Queue) PendingTimers() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

func (q *Queue) stopTimer(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
}
