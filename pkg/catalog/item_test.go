package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simoneromano96/coffeed-coffee-service/internal/utils/ptr"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/errors"
)

func TestCreateItemInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateItemInput
		wantErr bool
	}{
		{
			name:  "valid",
			input: CreateItemInput{Name: "Espresso", Price: 2.5, ImageURL: "http://x/e.jpg"},
		},
		{
			name:  "valid with description",
			input: CreateItemInput{Name: "Latte", Price: 3.0, ImageURL: "https://x/l.jpg", Description: ptr.String("with milk")},
		},
		{
			name:    "empty name",
			input:   CreateItemInput{Name: "  ", Price: 2.5, ImageURL: "http://x/e.jpg"},
			wantErr: true,
		},
		{
			name:    "negative price",
			input:   CreateItemInput{Name: "Espresso", Price: -0.1, ImageURL: "http://x/e.jpg"},
			wantErr: true,
		},
		{
			name:    "relative url",
			input:   CreateItemInput{Name: "Espresso", Price: 2.5, ImageURL: "/e.jpg"},
			wantErr: true,
		},
		{
			name:    "zero price is allowed",
			input:   CreateItemInput{Name: "Water", Price: 0, ImageURL: "http://x/w.jpg"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateItemInputValidate(t *testing.T) {
	t.Run("empty update is valid input", func(t *testing.T) {
		in := UpdateItemInput{}
		assert.NoError(t, in.Validate())
		assert.True(t, in.Empty())
	})

	t.Run("price only", func(t *testing.T) {
		in := UpdateItemInput{Price: ptr.Float64(3.0)}
		assert.NoError(t, in.Validate())
		assert.False(t, in.Empty())
	})

	t.Run("supplied empty name rejected", func(t *testing.T) {
		in := UpdateItemInput{Name: ptr.String("")}
		assert.Error(t, in.Validate())
	})

	t.Run("supplied bad url rejected", func(t *testing.T) {
		in := UpdateItemInput{ImageURL: ptr.String("not-a-url")}
		assert.Error(t, in.Validate())
	})

	t.Run("supplied negative price rejected", func(t *testing.T) {
		in := UpdateItemInput{Price: ptr.Float64(-1)}
		assert.Error(t, in.Validate())
	})
}

func TestParseMutationKind(t *testing.T) {
	for _, valid := range []string{"created", "updated", "deleted"} {
		kind, err := ParseMutationKind(valid)
		assert.NoError(t, err)
		assert.Equal(t, MutationKind(valid), kind)
	}

	_, err := ParseMutationKind("upserted")
	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestNewChangeEvent(t *testing.T) {
	ev := NewChangeEvent(MutationCreated, "abc")
	assert.Equal(t, MutationCreated, ev.Kind)
	assert.Equal(t, "abc", ev.ItemID)
	assert.False(t, ev.Timestamp.IsZero())
}
