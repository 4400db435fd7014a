package library

import (
	"encoding/json"
	"fmt"
)

// MarshalMetadata encodes the library structure as indented JSON.
func MarshalMetadata(m *Metadata) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding library metadata: %w", err)
	}
	return data, nil
}

// ParseMetadata decodes library metadata and validates the folder tree,
// including that every folder's kind is a known variant.
func ParseMetadata(data []byte) (*Metadata, error) {
	if len(data) == 0 {
		return NewMetadata(), nil
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing library metadata: %w", err)
	}
	if m.FolderList == nil {
		m.FolderList = []*Folder{}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("parsing library metadata: %w", err)
	}
	return &m, nil
}

// MarshalAsset encodes one asset record as indented JSON.
func MarshalAsset(a Asset) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding asset %s: %w", a.ID, err)
	}
	return data, nil
}

// ParseAsset decodes one asset record.
func ParseAsset(data []byte) (Asset, error) {
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return Asset{}, fmt.Errorf("parsing asset metadata: %w", err)
	}
	if a.ID.IsEmpty() {
		return Asset{}, fmt.Errorf("parsing asset metadata: missing ID")
	}
	return a, nil
}
