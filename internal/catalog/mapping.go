package catalog

import (
	"github.com/simoneromano96/coffeed-coffee-service/internal/store"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// itemFromRecord maps a store record to its external representation.
// The mapping is total: the internal UUID becomes the opaque string
// identifier and an absent description becomes the empty string.
func itemFromRecord(record store.Item) catalog.Item {
	description := ""
	if record.Description != nil {
		description = *record.Description
	}

	return catalog.Item{
		ID:          record.ID.String(),
		Name:        record.Name,
		Price:       record.Price,
		ImageURL:    record.ImageURL,
		Description: description,
	}
}

// recordFromCreateInput maps a create input to a fresh store record.
// Identifier and timestamps are assigned by the store on insert.
func recordFromCreateInput(input catalog.CreateItemInput) store.Item {
	var description *string
	if input.Description != nil {
		d := *input.Description
		description = &d
	}

	return store.Item{
		Name:        input.Name,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: description,
	}
}

// patchFromUpdateInput maps a partial update input to a store patch.
func patchFromUpdateInput(input catalog.UpdateItemInput) store.Patch {
	return store.Patch{
		Name:        input.Name,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	}
}
