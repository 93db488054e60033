// Package event broadcasts theme changes to in-process listeners.
package event

import (
	"sync"

	"github.com/jmylchreest/themepad/internal/model"
)

// ThemeChanged is the name of the event published after a theme is applied.
const ThemeChanged = "themeChanged"

// Event signals that a theme was applied to the style scope.
type Event struct {
	Name      string
	Theme     *model.Theme
	Persisted bool // False for previews
}

// Bus fans events out to subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
	closed      bool
}

// NewBus creates a new Bus.
func NewBus() *Bus {
	return &Bus{subscribers: make([]chan Event, 0)}
}

// Subscribe returns a channel that receives published events.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 10)
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a subscription.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish sends an event to all subscribers (non-blocking).
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			// Channel full, skip
		}
	}
}

// Close closes all subscriber channels. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}
