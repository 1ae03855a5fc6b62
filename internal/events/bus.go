// Package events is the in-process pub/sub feeding the live update streams.
// There is one topic for the category list and one per category's products.
package events

import (
	"context"
	"sync"
)

// Change types carried on the bus.
const (
	TypeCreated   = "created"
	TypeUpdated   = "updated"
	TypeDeleted   = "deleted"
	TypeReordered = "reordered"
)

// TopicCategories is the category-list topic. Product topics come from
// ProductTopic.
const TopicCategories = "categories"

func ProductTopic(categoryID string) string {
	return "categories/" + categoryID + "/products"
}

// Event is a single change notification.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const subscriberBuffer = 16

type subscriber struct {
	ch chan Event
}

// Bus fans events out to per-topic subscribers. A subscriber whose buffer
// is full misses the event; publishers never block.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe registers for a topic. The returned channel closes when ctx is
// done; the subscription is removed at the same time.
func (b *Bus) Subscribe(ctx context.Context, topic string) <-chan Event {
	s := &subscriber{ch: make(chan Event, subscriberBuffer)}

	b.mu.Lock()
	set, ok := b.subs[topic]
	if !ok {
		set = make(map[*subscriber]struct{})
		b.subs[topic] = set
	}
	set[s] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if set, ok := b.subs[topic]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(b.subs, topic)
			}
		}
		b.mu.Unlock()
		close(s.ch)
	}()

	return s.ch
}

// Publish delivers ev to every current subscriber of topic.
func (b *Bus) Publish(topic string, ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs[topic] {
		select {
		case s.ch <- ev:
		default:
			// slow subscriber, drop
		}
	}
}
