// Package importer ingests externally-sourced shop catalogs: it
// deduplicates incoming files against the library, files each survivor
// into a catalog-item folder, and commits the batch through the
// repository with rollback on partial failure.
package importer

import (
	"encoding/json"
	"fmt"
)

// File is one downloadable within a shop item. Either field may be empty;
// URLs are not assumed well-formed.
type File struct {
	URL      string `json:"url"`
	FileName string `json:"filename"`
}

// Item is one marketplace listing with its downloadable files.
type Item struct {
	ItemURL     string `json:"itemURL"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
	Files       []File `json:"files"`
}

// Shop is one marketplace storefront.
type Shop struct {
	ShopURL  string `json:"shopURL"`
	ShopName string `json:"shopName"`
	Items    []Item `json:"items"`
}

// ParsePayload decodes a shops batch. The pipeline is agnostic to how the
// payload arrived; it only needs the fully deserialized value.
func ParsePayload(data []byte) ([]Shop, error) {
	if len(data) == 0 {
		return []Shop{}, nil
	}
	var shops []Shop
	if err := json.Unmarshal(data, &shops); err != nil {
		return nil, fmt.Errorf("parsing import payload: %w", err)
	}
	return shops, nil
}
