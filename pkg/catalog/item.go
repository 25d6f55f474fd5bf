// Package catalog defines the domain types for the coffeed item catalog:
// the wire representation of an item, the mutation inputs, and the change
// events emitted after successful writes.
package catalog

import (
	"net/url"
	"strings"

	"github.com/simoneromano96/coffeed-coffee-service/pkg/errors"
)

// Item is the external representation of a catalog item as it crosses the
// API boundary. The identifier is an opaque string; the store may use a
// richer identifier type internally.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

// CreateItemInput carries the fields required to create an item.
// Description is optional; all other fields are required.
type CreateItemInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Description *string `json:"description,omitempty"`
}

// Validate checks the input for a create operation.
func (in CreateItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.NewValidationError("name", in.Name, "must not be empty")
	}
	if in.Price < 0 {
		return errors.NewValidationError("price", in.Price, "must not be negative")
	}
	if err := validateURL(in.ImageURL); err != nil {
		return err
	}
	return nil
}

// UpdateItemInput carries a partial update: nil fields are left unchanged.
// A field that has been set once cannot be cleared back to empty through
// an update; only supplied values are applied.
type UpdateItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Validate checks the supplied fields of a partial update.
func (in UpdateItemInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return errors.NewValidationError("name", *in.Name, "must not be empty")
	}
	if in.Price != nil && *in.Price < 0 {
		return errors.NewValidationError("price", *in.Price, "must not be negative")
	}
	if in.ImageURL != nil {
		if err := validateURL(*in.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the update supplies no fields at all.
func (in UpdateItemInput) Empty() bool {
	return in.Name == nil && in.Price == nil && in.ImageURL == nil && in.Description == nil
}

// validateURL checks that a locator is an absolute URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return errors.NewValidationError("image_url", raw, "must be an absolute URL")
	}
	return nil
}
