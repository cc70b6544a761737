// Package event provides a small synchronous pub/sub bus for session
// lifecycle notifications.
//
// The coordinator publishes an event whenever a session opens, writes
// a span back to the document, commits, or is abandoned. Hosts
// subscribe to refresh decorations or status displays. Delivery is
// synchronous on the publisher's goroutine; handlers must not block.
package event

import (
	"sync"
	"time"

	"github.com/dshills/textvar/internal/textbuf"
)

// Topic identifies a kind of session event.
type Topic string

// Session lifecycle topics.
const (
	TopicSessionOpened    Topic = "session.opened"
	TopicSpanUpdated      Topic = "span.updated"
	TopicSpanCommitted    Topic = "span.committed"
	TopicSessionAbandoned Topic = "session.abandoned"
)

// Event is one session lifecycle notification.
type Event struct {
	// Topic is the event kind.
	Topic Topic

	// SessionID identifies the session the event belongs to.
	SessionID string

	// Range is the span's tracked document range at event time.
	Range textbuf.PointRange

	// Text is the text written at Range, when the event carries one.
	Text string

	// Time is when the event was published.
	Time time.Time
}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies an active subscription for later removal.
type Subscription struct {
	id    uint64
	topic Topic
}

// Bus delivers events to subscribers. The zero value is not usable;
// call NewBus.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic]map[uint64]Handler
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[uint64]Handler)}
}

// Subscribe registers a handler for a topic. An empty topic receives
// every event.
func (b *Bus) Subscribe(topic Topic, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uint64]Handler)
	}
	b.subs[topic][b.nextID] = h
	return Subscription{id: b.nextID, topic: topic}
}

// Unsubscribe removes a subscription. Unknown subscriptions are
// ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.subs[sub.topic]; ok {
		delete(handlers, sub.id)
	}
}

// Publish delivers the event synchronously to every matching
// subscriber. The timestamp is stamped here if unset.
func (b *Bus) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[ev.Topic])+len(b.subs[""]))
	for _, h := range b.subs[ev.Topic] {
		handlers = append(handlers, h)
	}
	for _, h := range b.subs[""] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
