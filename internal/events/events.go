package events

import (
	"log"
	"sync"
)

// Event types published by the lead pipeline.
const (
	LeadCreated   = "lead.created"
	LeadsImported = "leads.imported"
)

// Publisher delivers lead lifecycle events to downstream consumers.
// Publishing is best effort: callers log failures and carry on.
type Publisher interface {
	Publish(eventType string, payload any) error
}

// InMemoryPublisher dispatches events to in-process subscribers. It backs
// single-node deployments without a broker and makes event flow assertable
// in tests. Dispatch is synchronous.
type InMemoryPublisher struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{
		handlers: make(map[string][]func(payload any) error),
	}
}

// Publish sends an event to all subscribers of its type. Handler errors are
// logged, not propagated; an event with no subscribers is dropped silently.
func (p *InMemoryPublisher) Publish(eventType string, payload any) error {
	p.mu.Lock()
	handlers := p.handlers[eventType]
	p.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(payload); err != nil {
			log.Printf("event handler failed for %s: %v", eventType, err)
		}
	}
	return nil
}

// Subscribe adds a handler for an event type.
func (p *InMemoryPublisher) Subscribe(eventType string, handler func(payload any) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], handler)
}

var _ Publisher = (*InMemoryPublisher)(nil)
