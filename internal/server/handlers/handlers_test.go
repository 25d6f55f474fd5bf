package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// TestParseKindFilter tests the ?kind= query parsing.
func TestParseKindFilter(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    *catalog.MutationKind
		wantErr bool
	}{
		{
			name: "no filter",
			url:  "/items/subscribe/ws",
			want: nil,
		},
		{
			name: "created",
			url:  "/items/subscribe/ws?kind=created",
			want: kindPtr(catalog.MutationCreated),
		},
		{
			name: "updated",
			url:  "/items/subscribe/stream?kind=updated",
			want: kindPtr(catalog.MutationUpdated),
		},
		{
			name: "deleted",
			url:  "/items/subscribe/stream?kind=deleted",
			want: kindPtr(catalog.MutationDeleted),
		},
		{
			name:    "unknown kind",
			url:     "/items/subscribe/ws?kind=renamed",
			wantErr: true,
		},
		{
			name:    "kinds are case sensitive",
			url:     "/items/subscribe/ws?kind=CREATED",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got, err := parseKindFilter(r)

			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected nil filter, got %v", *got)
			case tt.want != nil && got == nil:
				t.Errorf("expected %v, got nil", *tt.want)
			case tt.want != nil && got != nil && *tt.want != *got:
				t.Errorf("expected %v, got %v", *tt.want, *got)
			}
		})
	}
}

func kindPtr(k catalog.MutationKind) *catalog.MutationKind { return &k }
