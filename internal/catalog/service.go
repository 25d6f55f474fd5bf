// Package catalog implements the item commands: the four write operations
// that mutate the store and publish a change event on success, plus the
// read operations that do not emit.
package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/simoneromano96/coffeed-coffee-service/internal/store"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/errors"
)

// Service executes item operations against the store and publishes a
// change event for every successful write. The publisher is injected so
// no command reaches for ambient global state.
type Service struct {
	store  store.Store
	events catalog.Publisher
	logger *zerolog.Logger
}

// NewService creates a new item command service.
func NewService(st store.Store, events catalog.Publisher, logger *zerolog.Logger) *Service {
	return &Service{
		store:  st,
		events: events,
		logger: logger,
	}
}

// Create validates the input, persists a new item and publishes a Created
// event. A name collision fails with a conflict error and publishes
// nothing.
func (s *Service) Create(ctx context.Context, input catalog.CreateItemInput) (catalog.Item, error) {
	if err := input.Validate(); err != nil {
		return catalog.Item{}, err
	}

	record, err := s.store.Insert(ctx, recordFromCreateInput(input))
	if err != nil {
		return catalog.Item{}, err
	}

	item := itemFromRecord(record)
	s.publish(catalog.MutationCreated, item.ID)
	return item, nil
}

// List returns all items ordered by name. An empty catalog yields an
// empty slice, not an error.
func (s *Service) List(ctx context.Context) ([]catalog.Item, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, 0, len(records))
	for _, record := range records {
		items = append(items, itemFromRecord(record))
	}

	// Collators are not safe for concurrent use, so build one per call.
	c := collate.New(language.English, collate.IgnoreCase)
	sort.Slice(items, func(i, j int) bool {
		return c.CompareString(items[i].Name, items[j].Name) < 0
	})

	return items, nil
}

// Get returns a single item by its opaque string identifier.
func (s *Service) Get(ctx context.Context, id string) (catalog.Item, error) {
	recordID, err := parseID(id)
	if err != nil {
		return catalog.Item{}, err
	}

	record, err := s.store.Get(ctx, recordID)
	if err != nil {
		return catalog.Item{}, err
	}
	return itemFromRecord(record), nil
}

// Update applies the supplied fields to an existing item and publishes an
// Updated event. Fields not supplied are left untouched, never nulled.
// Returns the item's state after the update.
func (s *Service) Update(ctx context.Context, id string, input catalog.UpdateItemInput) (catalog.Item, error) {
	if err := input.Validate(); err != nil {
		return catalog.Item{}, err
	}

	recordID, err := parseID(id)
	if err != nil {
		return catalog.Item{}, err
	}

	record, err := s.store.Update(ctx, recordID, patchFromUpdateInput(input))
	if err != nil {
		return catalog.Item{}, err
	}

	item := itemFromRecord(record)
	s.publish(catalog.MutationUpdated, item.ID)
	return item, nil
}

// Delete removes an item, returning its last state, and publishes a
// Deleted event.
func (s *Service) Delete(ctx context.Context, id string) (catalog.Item, error) {
	recordID, err := parseID(id)
	if err != nil {
		return catalog.Item{}, err
	}

	record, err := s.store.Delete(ctx, recordID)
	if err != nil {
		return catalog.Item{}, err
	}

	item := itemFromRecord(record)
	s.publish(catalog.MutationDeleted, item.ID)
	return item, nil
}

// Count reports how many items the catalog currently holds.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// publish emits a change event after the store confirmed the write.
// Publishing is best-effort and never fails the operation.
func (s *Service) publish(kind catalog.MutationKind, itemID string) {
	s.events.Publish(catalog.NewChangeEvent(kind, itemID))
	s.logger.Debug().
		Str("mutation_kind", string(kind)).
		Str("item_id", itemID).
		Msg("Change event published")
}

// parseID translates the opaque boundary identifier into the store's
// richer identifier type. An identifier that cannot name any stored item
// is reported as not found, matching lookup semantics for unknown ids.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.NewNotFoundError("item", id)
	}
	return parsed, nil
}
