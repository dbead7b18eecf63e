package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Kind classifies a notification for display.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Default display durations. Errors linger longer than everything else.
const (
	DefaultDuration      = 5 * time.Second
	DefaultErrorDuration = 7 * time.Second
)

var ErrInvalidKind = errors.New("notification kind must be one of success, error, warning, info")

// ParseKind validates a wire value.
func ParseKind(raw string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return kind, nil
	default:
		return "", ErrInvalidKind
	}
}

// DefaultDurationFor returns the duration applied when a producer does not choose one.
func DefaultDurationFor(kind Kind) time.Duration {
	if kind == KindError {
		return DefaultErrorDuration
	}
	return DefaultDuration
}

// Notification is an immutable toast message. A zero Duration means it stays until dismissed.
type Notification struct {
	ID       int64
	Kind     Kind
	Title    string
	Message  string
	Duration time.Duration
}

// Persistent reports whether the notification waits for a manual dismissal.
func (n Notification) Persistent() bool {
	return n.Duration <= 0
}

type notificationJSON struct {
	ID       int64  `json:"id"`
	Kind     Kind   `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Duration int64  `json:"duration"`
}

// MarshalJSON renders the duration in milliseconds.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:       n.ID,
		Kind:     n.Kind,
		Title:    n.Title,
		Message:  n.Message,
		Duration: n.Duration.Milliseconds(),
	})
}

// UnmarshalJSON reads the millisecond duration form.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var wire notificationJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*n = Notification{
		ID:       wire.ID,
		Kind:     wire.Kind,
		Title:    wire.Title,
		Message:  wire.Message,
		Duration: time.Duration(wire.Duration) * time.Millisecond,
	}
	return nil
}

// Queue is the ordered list of visible notifications, oldest first.
type Queue []Notification

// Clone copies the queue. A nil queue clones to an empty one.
func (q Queue) Clone() Queue {
	out := make(Queue, len(q))
	copy(out, q)
	return out
}

// IndexOf returns the position of id or -1.
func (q Queue) IndexOf(id int64) int {
	for i, n := range q {
		if n.ID == id {
			return i
		}
	}
	return -1
}
