// Package store defines the document-store contract for catalog items.
// The backing collection owns all durable state; Item values returned by a
// Store are transient copies.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Item is the internal record persisted by a Store. The identifier is a
// UUID internally and crosses the API boundary in its opaque string form.
type Item struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Price       float64   `json:"price" yaml:"price"`
	ImageURL    string    `json:"image_url" yaml:"image_url"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}

// Patch describes a partial update. Nil fields are left untouched; a field
// can never be cleared back to its zero value through a patch.
type Patch struct {
	Name        *string
	Price       *float64
	ImageURL    *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.ImageURL == nil && p.Description == nil
}

// Store is the minimal contract the command layer needs from the backing
// document collection. Implementations enforce a unique index on Name.
//
// Errors: Insert returns a ConflictError on a duplicate name; Update and
// Delete return a NotFoundError for an unknown identifier; every method
// returns an error matching ErrStoreUnavailable once the store is closed.
type Store interface {
	// All returns every item in the collection. An empty collection yields
	// an empty slice, not an error.
	All(ctx context.Context) ([]Item, error)

	// Get returns the item with the given identifier.
	Get(ctx context.Context, id uuid.UUID) (Item, error)

	// Insert persists a new item, assigning its identifier, and returns
	// the stored record.
	Insert(ctx context.Context, item Item) (Item, error)

	// Update applies the supplied patch fields and returns the record
	// after the update.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (Item, error)

	// Delete removes the item and returns its last state.
	Delete(ctx context.Context, id uuid.UUID) (Item, error)

	// Count returns the number of items in the collection.
	Count(ctx context.Context) (int, error)

	// Close releases the collection. Subsequent calls fail with
	// ErrStoreUnavailable.
	Close() error
}
