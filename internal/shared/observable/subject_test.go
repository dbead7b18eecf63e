package observable

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func increment(delta int) func(int) (int, bool) {
	return func(current int) (int, bool) {
		return current + delta, delta != 0
	}
}

func TestSubscribe_ReplaysCurrentValue(t *testing.T) {
	subject := NewSubject(0)
	subject.Update(increment(3))
	subject.Update(increment(4))

	var received []int
	unsubscribe := subject.Subscribe(func(v int) { received = append(received, v) })
	defer unsubscribe()

	require.Equal(t, []int{7}, received)
}

func TestUpdate_NotifiesInOrder(t *testing.T) {
	subject := NewSubject(0)
	var received []int
	subject.Subscribe(func(v int) { received = append(received, v) })

	subject.Update(increment(1))
	subject.Update(increment(2))

	assert.Equal(t, []int{0, 1, 3}, received)
}

func TestUpdate_UnchangedSkipsDelivery(t *testing.T) {
	subject := NewSubject(5)
	calls := 0
	subject.Subscribe(func(int) { calls++ })

	changed := subject.Update(increment(0))

	assert.False(t, changed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 5, subject.Value())
}

func TestUnsubscribe_IsIdempotent(t *testing.T) {
	subject := NewSubject(0)
	first := 0
	second := 0
	unsubscribeFirst := subject.Subscribe(func(int) { first++ })
	subject.Subscribe(func(int) { second++ })

	unsubscribeFirst()
	unsubscribeFirst()
	subject.Update(increment(1))

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, subject.ObserverCount())
}

func TestObserver_CanReadDuringDelivery(t *testing.T) {
	subject := NewSubject(0)
	var seen []int
	subject.Subscribe(func(int) { seen = append(seen, subject.Value()) })

	subject.Update(increment(2))

	assert.Equal(t, []int{0, 2}, seen)
}

func TestObserver_CanUnsubscribeDuringDelivery(t *testing.T) {
	subject := NewSubject(0)
	calls := 0
	var unsubscribe func()
	unsubscribe = subject.Subscribe(func(v int) {
		calls++
		if v > 0 {
			unsubscribe()
		}
	})

	subject.Update(increment(1))
	subject.Update(increment(1))

	assert.Equal(t, 2, calls)
}

func TestWithClone_IsolatesObservers(t *testing.T) {
	subject := NewSubject([]int{1, 2}, WithClone(func(v []int) []int {
		return append([]int(nil), v...)
	}))
	subject.Subscribe(func(v []int) { v[0] = 99 })

	value := subject.Value()
	value[1] = 42

	assert.Equal(t, []int{1, 2}, subject.Value())
}

func TestUpdate_ConcurrentWritersDeliverMonotonically(t *testing.T) {
	subject := NewSubject(0)
	var (
		mu       sync.Mutex
		received []int
	)
	subject.Subscribe(func(v int) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject.Update(increment(1))
		}()
	}
	wg.Wait()

	require.Len(t, received, 51)
	for i := 1; i < len(received); i++ {
		assert.Equal(t, received[i-1]+1, received[i])
	}
	assert.Equal(t, 50, subject.Value())
}

func TestObserver_ReadsWhileAnotherUpdateWaits(t *testing.T) {
	subject := NewSubject(0)
	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu    sync.Mutex
		reads []int
	)
	subject.Subscribe(func(v int) {
		if v == 0 {
			return
		}
		if v == 1 {
			close(entered)
			<-release
		}
		current := subject.Value()
		mu.Lock()
		reads = append(reads, current)
		mu.Unlock()
	})

	done := make(chan struct{}, 2)
	go func() {
		subject.Update(increment(1))
		done <- struct{}{}
	}()
	<-entered
	go func() {
		subject.Update(increment(1))
		done <- struct{}{}
	}()
	// Let the second writer reach the subject before the first delivery finishes.
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("update did not complete while an observer read the subject")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, reads)
	assert.Equal(t, 2, subject.Value())
}
