// Package library defines the metadata model for the asset library: the
// folder tree, per-asset records, and the JSON codec that persists them.
package library

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/assetctl/internal/uid"
)

// FolderKind discriminates the folder variants. The set is closed; every
// switch over it handles all kinds.
type FolderKind string

const (
	// KindFolder is a plain folder that may nest arbitrary children.
	KindFolder FolderKind = "folder"
	// KindCatalogItem is a folder representing one marketplace item. It is
	// leaf-only: it never contains child folders and never nests under
	// another catalog-item folder.
	KindCatalogItem FolderKind = "catalog_item"
)

// Folder is one node in the library tree. Kind selects the variant; the
// Shop* and CatalogItemID fields are only meaningful for KindCatalogItem,
// Children only for KindFolder.
type Folder struct {
	ID               uid.UID    `json:"ID"`
	Kind             FolderKind `json:"Kind"`
	Name             string     `json:"Name"`
	Description      string     `json:"Description,omitempty"`
	Tags             []string   `json:"Tags,omitempty"`
	ModificationTime int64      `json:"ModificationTime"`

	Children []*Folder `json:"Children,omitempty"`

	ShopDomain    string `json:"ShopDomain,omitempty"`
	ShopName      string `json:"ShopName,omitempty"`
	CatalogItemID string `json:"CatalogItemID,omitempty"`
}

// NewFolder creates a plain folder with a fresh UID.
func NewFolder(name string) *Folder {
	return &Folder{
		ID:               uid.New(),
		Kind:             KindFolder,
		Name:             normalizeName(name),
		ModificationTime: time.Now().UnixMilli(),
	}
}

// NewCatalogItemFolder creates a catalog-item folder with a fresh UID.
// The (shopDomain, identifier) pair is its natural key for lookup.
func NewCatalogItemFolder(shopDomain, shopName, itemID, name string) *Folder {
	return &Folder{
		ID:               uid.New(),
		Kind:             KindCatalogItem,
		Name:             normalizeName(name),
		ShopDomain:       shopDomain,
		ShopName:         shopName,
		CatalogItemID:    itemID,
		ModificationTime: time.Now().UnixMilli(),
	}
}

// Validate checks the variant invariants of this folder and its subtree.
func (f *Folder) Validate() error {
	switch f.Kind {
	case KindFolder:
		for _, c := range f.Children {
			if err := c.Validate(); err != nil {
				return err
			}
		}
		return nil
	case KindCatalogItem:
		if len(f.Children) > 0 {
			return fmt.Errorf("catalog-item folder %s (%s): %w", f.Name, f.ID, ErrCatalogFolderNesting)
		}
		return nil
	default:
		return fmt.Errorf("folder %s: unknown kind %q", f.ID, f.Kind)
	}
}

// Clone deep-copies the folder and its subtree.
func (f *Folder) Clone() *Folder {
	cp := *f
	cp.Tags = append([]string(nil), f.Tags...)
	if f.Children != nil {
		cp.Children = make([]*Folder, len(f.Children))
		for i, c := range f.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return &cp
}

// find returns the folder with the given id in this subtree, or nil.
func (f *Folder) find(id uid.UID) *Folder {
	if f.ID == id {
		return f
	}
	switch f.Kind {
	case KindCatalogItem:
		return nil
	case KindFolder:
		for _, c := range f.Children {
			if hit := c.find(id); hit != nil {
				return hit
			}
		}
	}
	return nil
}

// Touch bumps the modification time.
func (f *Folder) Touch() {
	f.ModificationTime = time.Now().UnixMilli()
}

// normalizeName returns a usable display name, defaulting blank or
// whitespace-only input.
func normalizeName(name string) string {
	if isBlank(name) {
		return "Unnamed"
	}
	return name
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
