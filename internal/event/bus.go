// Package event provides a small topic-based publish/subscribe bus
// used for usage signals and other cross-component notifications.
package event

import "sync"

// Topic names an event stream.
type Topic string

// Handler receives published events.
type Handler func(topic Topic, payload any)

// Subscription is a handle for an active subscription.
type Subscription struct {
	id    uint64
	topic Topic
	bus   *Bus
}

// Unsubscribe removes this subscription. Safe to call multiple times.
func (s *Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.unsubscribe(s.topic, s.id)
		s.bus = nil
	}
}

// Bus is a synchronous publish/subscribe bus.
// All methods are thread-safe; handlers run on the publisher's
// goroutine in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic]map[uint64]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[uint64]Handler)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uint64]Handler)
	}
	b.subs[topic][b.nextID] = fn
	return &Subscription{id: b.nextID, topic: topic, bus: b}
}

// Publish delivers a payload to every subscriber of the topic.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(topic, payload)
	}
}

// SubscriberCount returns the number of subscribers for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func (b *Bus) unsubscribe(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.subs[topic]; ok {
		delete(m, id)
		if len(m) == 0 {
			delete(b.subs, topic)
		}
	}
}
