package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hunterjsb/scorebot/internal/metrics"
	"github.com/jonboulle/clockwork"
)

// ErrSelectionTimeout is returned when no qualifying message arrives before the deadline.
var ErrSelectionTimeout = errors.New("selection timed out")

// Message is a chat message as seen by the pipeline
type Message struct {
	AuthorID  string
	ChannelID string
	Content   string
}

// MatchFunc decides whether a message satisfies a pending wait.
// It runs with the waiter's lock held and must not block.
type MatchFunc func(Message) bool

type matcher struct {
	match MatchFunc
	ch    chan Message
}

// Waiter holds the matchers of in-flight waits. The gateway message handler
// feeds every incoming message through Dispatch.
type Waiter struct {
	clock clockwork.Clock

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*matcher
}

// NewWaiter creates a Waiter that measures timeouts with clock
func NewWaiter(clock clockwork.Clock) *Waiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Waiter{
		clock:   clock,
		pending: make(map[uint64]*matcher),
	}
}

// Clock returns the clock used for deadlines
func (w *Waiter) Clock() clockwork.Clock {
	return w.clock
}

// Wait blocks until a dispatched message satisfies match, the timeout
// elapses, or ctx is done. The matcher is removed on every exit path.
func (w *Waiter) Wait(ctx context.Context, match MatchFunc, timeout time.Duration) (Message, error) {
	return w.WaitUntil(ctx, match, w.clock.Now().Add(timeout))
}

// WaitUntil is Wait with an absolute deadline on the waiter's clock.
// A message dispatched while the wait is giving up still wins.
func (w *Waiter) WaitUntil(ctx context.Context, match MatchFunc, deadline time.Time) (Message, error) {
	id, ch := w.register(match)
	defer w.remove(id)

	timer := w.clock.NewTimer(deadline.Sub(w.clock.Now()))
	defer timer.Stop()

	select {
	case msg := <-ch:
		return msg, nil
	case <-timer.Chan():
		if msg, ok := w.abandon(id, ch); ok {
			return msg, nil
		}
		return Message{}, ErrSelectionTimeout
	case <-ctx.Done():
		if msg, ok := w.abandon(id, ch); ok {
			return msg, nil
		}
		return Message{}, ctx.Err()
	}
}

// Dispatch offers msg to every pending matcher. Each satisfied matcher
// receives the message and is removed. Reports whether any matched.
func (w *Waiter) Dispatch(msg Message) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	matched := false
	for id, m := range w.pending {
		if !m.match(msg) {
			continue
		}
		m.ch <- msg // buffered, receives at most once
		w.removeLocked(id)
		matched = true
	}
	return matched
}

// Pending returns the number of registered matchers
func (w *Waiter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Waiter) register(match MatchFunc) (uint64, <-chan Message) {
	m := &matcher{match: match, ch: make(chan Message, 1)}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	w.pending[w.nextID] = m
	metrics.SelectionsPending.Inc()
	return w.nextID, m.ch
}

// abandon removes the matcher unless Dispatch already took it, in which
// case the delivered message is returned.
func (w *Waiter) abandon(id uint64, ch <-chan Message) (Message, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.pending[id]; ok {
		w.removeLocked(id)
		return Message{}, false
	}
	// Dispatch sends before removing, under the same lock
	return <-ch, true
}

func (w *Waiter) remove(id uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeLocked(id)
}

func (w *Waiter) removeLocked(id uint64) {
	if _, ok := w.pending[id]; !ok {
		return
	}
	delete(w.pending, id)
	metrics.SelectionsPending.Dec()
}
