// Package observable provides a replay-latest subject shared by the storefront state containers.
package observable

import "sync"

// Subject holds a current value and pushes it to observers on subscribe and on every change.
//
// Deliveries are serialized: observers see values in the order they were applied and a new
// observer's first value is the value current at subscribe time. Observers run on the mutating
// goroutine and may read the subject, but must not call Update or Subscribe from inside a delivery.
type Subject[T any] struct {
	mu        sync.Mutex
	deliverMu sync.Mutex
	value     T
	observers map[uint64]func(T)
	order     []uint64
	nextID    uint64
	clone     func(T) T
}

// Option configures a Subject.
type Option[T any] func(*Subject[T])

// WithClone copies values before they leave the subject.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(s *Subject[T]) {
		s.clone = clone
	}
}

// NewSubject constructs a subject seeded with initial.
func NewSubject[T any](initial T, opts ...Option[T]) *Subject[T] {
	s := &Subject[T]{
		value:     initial,
		observers: map[uint64]func(T){},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOf(s.value)
}

// Update applies fn to the current value. When fn reports a change the new value is stored and
// delivered to every observer before Update returns.
func (s *Subject[T]) Update(fn func(current T) (T, bool)) bool {
	// Lock order is always deliverMu then mu; observers may take mu through Value.
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.value)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.value = next
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, observer := range observers {
		observer(s.copyOf(next))
	}
	return true
}

// Subscribe registers observer, delivers the current value immediately, and returns a function
// that detaches it. The returned function is safe to call more than once.
func (s *Subject[T]) Subscribe(observer func(T)) (unsubscribe func()) {
	if observer == nil {
		return func() {}
	}
	s.deliverMu.Lock()
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers[id] = observer
	s.order = append(s.order, id)
	current := s.value
	s.mu.Unlock()

	observer(s.copyOf(current))
	s.deliverMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// ObserverCount reports how many observers are attached.
func (s *Subject[T]) ObserverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Subject[T]) snapshotObservers() []func(T) {
	observers := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		if observer, ok := s.observers[id]; ok {
			observers = append(observers, observer)
		}
	}
	return observers
}

func (s *Subject[T]) copyOf(value T) T {
	if s.clone == nil {
		return value
	}
	return s.clone(value)
}
