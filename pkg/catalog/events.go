package catalog

import (
	"time"

	"github.com/simoneromano96/coffeed-coffee-service/pkg/errors"
)

// MutationKind identifies the kind of write that produced a change event.
type MutationKind string

// Mutation kinds for item changes.
const (
	MutationCreated MutationKind = "created"
	MutationUpdated MutationKind = "updated"
	MutationDeleted MutationKind = "deleted"
)

// ParseMutationKind parses a mutation kind from its string form, as it
// arrives in subscription filter parameters.
func ParseMutationKind(s string) (MutationKind, error) {
	switch MutationKind(s) {
	case MutationCreated, MutationUpdated, MutationDeleted:
		return MutationKind(s), nil
	default:
		return "", errors.NewValidationError("kind", s, "must be one of created, updated, deleted")
	}
}

// ChangeEvent records one completed mutation. It is an immutable value:
// constructed once after the store confirms a write, then broadcast to
// subscribers and discarded.
type ChangeEvent struct {
	Kind      MutationKind `json:"mutation_kind"`
	ItemID    string       `json:"item_id"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewChangeEvent creates a change event stamped with the current time.
func NewChangeEvent(kind MutationKind, itemID string) ChangeEvent {
	return ChangeEvent{
		Kind:      kind,
		ItemID:    itemID,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher accepts change events for fan-out to live subscribers.
// Publish must never block and never fail the write that triggered it;
// delivery is best-effort.
type Publisher interface {
	Publish(ChangeEvent)
}
