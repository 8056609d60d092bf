// Package flavors serves the fixed drink catalog. The catalog is a
// static collaborator: inventory reports reference its ids but are not
// validated against it.
package flavors

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/monster-flavors.json
var catalogJSON []byte

type Flavor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	SizeOptions []string `json:"size_options"`
}

type Catalog struct {
	Flavors []Flavor `json:"flavors"`
}

func Load() (Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(catalogJSON, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse flavor catalog: %w", err)
	}

	return catalog, nil
}
