// Package memory provides an in-memory document collection implementing the
// store.Store contract. It is the process-local stand-in for the document
// database: a mutex-guarded collection with a unique index on item name.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simoneromano96/coffeed-coffee-service/internal/store"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/errors"
)

// Store is an in-memory item collection.
type Store struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]store.Item
	nameIndex map[string]uuid.UUID
	closed    bool
	logger    *zerolog.Logger
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New(logger *zerolog.Logger) *Store {
	return &Store{
		items:     make(map[uuid.UUID]store.Item),
		nameIndex: make(map[string]uuid.UUID),
		logger:    logger,
	}
}

// All returns a copy of every item in the collection.
func (s *Store) All(ctx context.Context) ([]store.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("all", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errors.NewStoreError("all", errors.ErrStoreUnavailable)
	}

	items := make([]store.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, copyItem(item))
	}
	return items, nil
}

// Get returns the item with the given identifier.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (store.Item, error) {
	if err := ctx.Err(); err != nil {
		return store.Item{}, errors.NewStoreError("get", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.Item{}, errors.NewStoreError("get", errors.ErrStoreUnavailable)
	}

	item, ok := s.items[id]
	if !ok {
		return store.Item{}, errors.NewNotFoundError("item", id.String())
	}
	return copyItem(item), nil
}

// Insert persists a new item, assigning its identifier and timestamps.
// The unique name index is checked before the write.
func (s *Store) Insert(ctx context.Context, item store.Item) (store.Item, error) {
	if err := ctx.Err(); err != nil {
		return store.Item{}, errors.NewStoreError("insert", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.Item{}, errors.NewStoreError("insert", errors.ErrStoreUnavailable)
	}

	if _, exists := s.nameIndex[item.Name]; exists {
		return store.Item{}, errors.NewConflictError("item", "name", item.Name)
	}

	now := time.Now().UTC()
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	s.items[item.ID] = copyItem(item)
	s.nameIndex[item.Name] = item.ID

	s.logger.Debug().
		Str("item_id", item.ID.String()).
		Str("name", item.Name).
		Msg("Item inserted")

	return item, nil
}

// Update applies the supplied patch fields and returns the post-image.
// Renaming onto an existing name fails the unique index check.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch store.Patch) (store.Item, error) {
	if err := ctx.Err(); err != nil {
		return store.Item{}, errors.NewStoreError("update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.Item{}, errors.NewStoreError("update", errors.ErrStoreUnavailable)
	}

	item, ok := s.items[id]
	if !ok {
		return store.Item{}, errors.NewNotFoundError("item", id.String())
	}

	if patch.Name != nil && *patch.Name != item.Name {
		if _, exists := s.nameIndex[*patch.Name]; exists {
			return store.Item{}, errors.NewConflictError("item", "name", *patch.Name)
		}
		delete(s.nameIndex, item.Name)
		s.nameIndex[*patch.Name] = id
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if patch.Description != nil {
		desc := *patch.Description
		item.Description = &desc
	}
	item.UpdatedAt = time.Now().UTC()

	s.items[id] = copyItem(item)

	s.logger.Debug().
		Str("item_id", id.String()).
		Msg("Item updated")

	return item, nil
}

// Delete removes the item and returns its last state.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (store.Item, error) {
	if err := ctx.Err(); err != nil {
		return store.Item{}, errors.NewStoreError("delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.Item{}, errors.NewStoreError("delete", errors.ErrStoreUnavailable)
	}

	item, ok := s.items[id]
	if !ok {
		return store.Item{}, errors.NewNotFoundError("item", id.String())
	}

	delete(s.items, id)
	delete(s.nameIndex, item.Name)

	s.logger.Debug().
		Str("item_id", id.String()).
		Str("name", item.Name).
		Msg("Item deleted")

	return copyItem(item), nil
}

// Count returns the number of items in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.NewStoreError("count", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, errors.NewStoreError("count", errors.ErrStoreUnavailable)
	}
	return len(s.items), nil
}

// Close marks the store unavailable. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// copyItem returns a deep copy so callers never share pointers with the
// collection's durable state.
func copyItem(item store.Item) store.Item {
	if item.Description != nil {
		desc := *item.Description
		item.Description = &desc
	}
	return item
}
