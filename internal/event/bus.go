package event

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event is a published notification.
type Event struct {
	Topic     Topic
	Payload   any
	Timestamp time.Time
}

// Handler receives events.
type Handler func(Event)

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, recovered any)

// Subscription identifies a registered handler.
type Subscription struct {
	id      uint64
	pattern Topic
}

// Pattern returns the topic pattern of the subscription.
func (s Subscription) Pattern() Topic {
	return s.pattern
}

// Stats contains bus counters.
type Stats struct {
	Published uint64
	Delivered uint64
	Panics    uint64
}

type subscriber struct {
	id      uint64
	pattern Topic
	handler Handler
}

// Bus delivers events synchronously to matching subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID uint64

	panicHandler PanicHandler

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the function called when a handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.panicHandler = h
	}
}

// NewBus creates an event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (Subscription, error) {
	if !pattern.IsValid() {
		return Subscription{}, ErrInvalidTopic
	}
	if handler == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := subscriber{id: b.nextID, pattern: pattern, handler: handler}
	b.subs = append(b.subs, s)
	return Subscription{id: s.id, pattern: pattern}, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers payload to every subscriber whose pattern matches topic.
// A nil bus discards the event.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	ev := Event{Topic: topic, Payload: payload, Timestamp: time.Now()}
	b.published.Add(1)

	b.mu.RLock()
	matched := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Matches(s.pattern) {
			matched = append(matched, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range matched {
		b.deliver(h, ev)
	}
}

func (b *Bus) deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(ev, r)
			}
		}
	}()
	h(ev)
	b.delivered.Add(1)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Panics:    b.panics.Load(),
	}
}
