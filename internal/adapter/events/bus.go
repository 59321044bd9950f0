// internal/adapter/events/bus.go

package events

import (
	"strings"
	"sync"
)

// Bus carries scrape events between the pipeline and live subscribers
type Bus interface {
	// Publish sends data on a subject
	Publish(subject string, data []byte) error

	// Subscribe registers a handler for a subject; "*" matches one token and
	// a trailing ">" matches the rest
	Subscribe(subject string, handler func(data []byte)) (Subscription, error)

	// Close releases the bus
	Close()
}

// Subscription is an active Bus subscription
type Subscription interface {
	Unsubscribe() error
}

// MemoryBus is an in-process Bus used when no NATS server is configured
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]memorySub
}

type memorySub struct {
	pattern []string
	handler func([]byte)
}

// NewMemoryBus creates a new in-process bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]memorySub)}
}

// Publish delivers data synchronously to every matching subscriber
func (b *MemoryBus) Publish(subject string, data []byte) error {
	tokens := strings.Split(subject, ".")

	b.mu.RLock()
	handlers := make([]func([]byte), 0, len(b.subs))
	for _, s := range b.subs {
		if subjectMatches(s.pattern, tokens) {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

// Subscribe registers a handler
func (b *MemoryBus) Subscribe(subject string, handler func(data []byte)) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = memorySub{pattern: strings.Split(subject, "."), handler: handler}

	return &memorySubscription{bus: b, id: id}, nil
}

// Close drops every subscription
func (b *MemoryBus) Close() {
	b.mu.Lock()
	b.subs = make(map[int]memorySub)
	b.mu.Unlock()
}

type memorySubscription struct {
	bus *MemoryBus
	id  int
}

func (s *memorySubscription) Unsubscribe() error {
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()
	return nil
}

// subjectMatches applies NATS wildcard rules
func subjectMatches(pattern, subject []string) bool {
	for i, p := range pattern {
		if p == ">" {
			return len(subject) > i
		}
		if i >= len(subject) {
			return false
		}
		if p != "*" && p != subject[i] {
			return false
		}
	}
	return len(pattern) == len(subject)
}
