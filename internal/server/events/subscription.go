package events

import (
	"sync"

	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// subscriptionBuffer bounds a single consumer's delivery queue. A consumer
// that falls this far behind the publish rate is disconnected.
const subscriptionBuffer = 64

// Subscription is one consumer's live, filtered view of the broker's event
// stream. It is created per client connection and torn down when the
// connection closes.
//
// The filter is applied at the subscription boundary, not in the broker:
// each consumer can filter independently and the broker stays
// filter-agnostic.
type Subscription struct {
	broker *Broker
	filter *catalog.MutationKind
	ch     chan catalog.ChangeEvent
	once   sync.Once
}

func newSubscription(broker *Broker, filter *catalog.MutationKind) *Subscription {
	return &Subscription{
		broker: broker,
		filter: filter,
		ch:     make(chan catalog.ChangeEvent, subscriptionBuffer),
	}
}

// Events returns the subscription's delivery channel. The channel is
// closed when the subscription ends, so consumers can range over it.
func (s *Subscription) Events() <-chan catalog.ChangeEvent {
	return s.ch
}

// Filter returns the subscription's mutation-kind filter, nil for all kinds.
func (s *Subscription) Filter() *catalog.MutationKind {
	return s.filter
}

// Close promptly unregisters the subscription from the broker and closes
// its channel. Idempotent and safe to call concurrently with delivery.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s, "closed by consumer")
	})
}

// deliver offers an event to the subscription. Events that do not match
// the filter are discarded and count as delivered. Returns false when the
// consumer's queue is full, which the broker treats as a slow consumer.
func (s *Subscription) deliver(event catalog.ChangeEvent) bool {
	if s.filter != nil && *s.filter != event.Kind {
		return true
	}

	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}
