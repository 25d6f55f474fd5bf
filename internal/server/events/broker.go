// Package events provides the change-notification broker for the item
// catalog. Successful writes publish a ChangeEvent; the broker fans each
// event out to every live subscription, each of which may filter by
// mutation kind.
package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// eventBuffer bounds the publish queue. Publish drops events instead of
// blocking when the queue is full.
const eventBuffer = 256

// Broker manages event distribution to multiple subscriptions.
// It is the process-wide fan-out point for item change events: created
// once with the server state and injected into every command and
// subscription handler.
//
// The subscription registry is the only shared mutable structure. Sends
// into subscription channels happen under the read lock and channels are
// closed only under the write lock, so a channel can never be closed while
// the fan-out goroutine is sending on it.
type Broker struct {
	subscriptions map[*Subscription]struct{}
	events        chan catalog.ChangeEvent
	mu            sync.RWMutex
	closed        bool
	logger        *zerolog.Logger
}

var _ catalog.Publisher = (*Broker)(nil)

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		subscriptions: make(map[*Subscription]struct{}),
		events:        make(chan catalog.ChangeEvent, eventBuffer),
		logger:        logger,
	}
}

// Run starts the broker's event loop. Should be called in a goroutine.
// The broker runs until the context is cancelled.
//
// A single goroutine performs the fan-out, so every subscription observes
// events in the order Publish enqueued them. Delivery to one subscription
// is a non-blocking enqueue and never waits on another.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Graceful shutdown: close all subscriptions
			b.mu.Lock()
			b.closed = true
			for sub := range b.subscriptions {
				close(sub.ch)
			}
			b.subscriptions = make(map[*Subscription]struct{})
			b.mu.Unlock()
			b.logger.Info().Msg("Event broker shut down")
			return

		case event := <-b.events:
			b.broadcast(event)
		}
	}
}

// broadcast delivers one event to every live subscription. A subscription
// whose buffer is full has the event dropped and is then unregistered; a
// stalled consumer must never delay the publisher or its peers.
func (b *Broker) broadcast(event catalog.ChangeEvent) {
	var slow []*Subscription

	b.mu.RLock()
	total := len(b.subscriptions)
	for sub := range b.subscriptions {
		if !sub.deliver(event) {
			slow = append(slow, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range slow {
		b.logger.Warn().
			Str("mutation_kind", string(event.Kind)).
			Str("item_id", event.ItemID).
			Msg("Subscription buffer full, dropping slow consumer")
		b.remove(sub, "slow consumer")
	}

	b.logger.Debug().
		Str("mutation_kind", string(event.Kind)).
		Str("item_id", event.ItemID).
		Int("subscribers", total).
		Msg("Event broadcasted")
}

// remove unregisters a subscription and closes its channel. Safe to call
// for a subscription that is already gone.
func (b *Broker) remove(sub *Subscription, reason string) {
	b.mu.Lock()
	_, ok := b.subscriptions[sub]
	if ok {
		delete(b.subscriptions, sub)
		close(sub.ch)
	}
	total := len(b.subscriptions)
	b.mu.Unlock()

	if ok {
		b.logger.Info().
			Int("total_subscribers", total).
			Str("reason", reason).
			Msg("Subscription unregistered")
	}
}

// Publish sends an event to all subscriptions. It returns immediately;
// a full broker queue drops the event rather than delaying the write
// that produced it.
func (b *Broker) Publish(event catalog.ChangeEvent) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn().
			Str("mutation_kind", string(event.Kind)).
			Str("item_id", event.ItemID).
			Msg("Event channel full, event dropped")
	}
}

// Subscribe registers a new subscription. A nil filter receives every
// mutation kind. Registration is synchronous: events published after
// Subscribe returns are delivered. The subscription's channel stays open
// until the consumer calls Close, the consumer stops draining, or the
// broker shuts down.
func (b *Broker) Subscribe(filter *catalog.MutationKind) *Subscription {
	sub := newSubscription(b, filter)

	b.mu.Lock()
	if b.closed {
		// Broker already shut down; hand back a terminated subscription.
		close(sub.ch)
		b.mu.Unlock()
		return sub
	}
	b.subscriptions[sub] = struct{}{}
	total := len(b.subscriptions)
	b.mu.Unlock()

	b.logger.Info().
		Int("total_subscribers", total).
		Msg("Subscription registered")
	return sub
}

// SubscriberCount returns the current number of subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
