package store

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Seed is the YAML document format for preloading the catalog at startup.
//
//	items:
//	  - name: Espresso
//	    price: 2.5
//	    image_url: http://example.com/espresso.jpg
//	    description: Short and strong
type Seed struct {
	Items []SeedItem `yaml:"items"`
}

// SeedItem is one item entry in a seed file. Identifiers and timestamps are
// assigned by the store on insert.
type SeedItem struct {
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	ImageURL    string  `yaml:"image_url"`
	Description *string `yaml:"description,omitempty"`
}

// LoadSeedFile reads and parses a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Record converts a seed entry to a store record ready for insertion.
func (si SeedItem) Record() Item {
	return Item{
		Name:        si.Name,
		Price:       si.Price,
		ImageURL:    si.ImageURL,
		Description: si.Description,
	}
}
