package coordinator

import (
	"sync"
	"time"
)

// Notification is a transient user-visible message.
type Notification struct {
	Level   string    `json:"level"` // "info" | "error"
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives transient user-visible messages. Every remote failure
// caught at the coordinator boundary ends up here instead of propagating
// into the rendering layer.
type Notifier interface {
	Notify(level, message string)
}

// Ring keeps the most recent notifications for the UI to poll.
type Ring struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

// NewRing creates a ring keeping at most max notifications.
func NewRing(max int) *Ring {
	if max <= 0 {
		max = 50
	}
	return &Ring{max: max}
}

func (r *Ring) Notify(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, Notification{Level: level, Message: message, At: time.Now()})
	if len(r.items) > r.max {
		r.items = r.items[len(r.items)-r.max:]
	}
}

// Recent returns the kept notifications, oldest first.
func (r *Ring) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// discard drops notifications, used when no notifier is wired.
type discard struct{}

func (discard) Notify(string, string) {}
