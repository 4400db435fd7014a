package library

import (
	"fmt"

	"github.com/blackwell-systems/assetctl/internal/uid"
)

// CatalogFolderSpec describes the folder a catalog-sourced asset should be
// filed into. Identifier plus ShopDomain form the natural key.
type CatalogFolderSpec struct {
	ShopDomain  string
	ShopName    string
	Identifier  string
	DisplayName string
	Description string
	Parent      uid.UID // uid.Empty means the library root
}

// EnsureCatalogFolder finds or creates the catalog-item folder for the given
// spec, returning its id and whether the tree changed, either by creating
// the folder or by patching an existing one. The operation is idempotent:
// repeated calls with the same (ShopDomain, Identifier) return the same
// folder. An existing folder's display name and description are patched
// non-destructively, only when the incoming value is non-empty and differs.
//
// Creation is refused when the parent id does not exist or names a
// catalog-item folder, since those never contain child folders.
func EnsureCatalogFolder(m *Metadata, spec CatalogFolderSpec) (uid.UID, bool, error) {
	if existing := m.FindCatalogFolder(spec.ShopDomain, spec.Identifier); existing != nil {
		patched := false
		if spec.DisplayName != "" && existing.Name != spec.DisplayName {
			existing.Name = spec.DisplayName
			patched = true
		}
		if spec.Description != "" && existing.Description != spec.Description {
			existing.Description = spec.Description
			patched = true
		}
		if spec.ShopName != "" && existing.ShopName != spec.ShopName {
			existing.ShopName = spec.ShopName
			patched = true
		}
		if patched {
			existing.Touch()
		}
		return existing.ID, patched, nil
	}

	name := spec.DisplayName
	if name == "" {
		name = spec.Identifier
	}
	folder := NewCatalogItemFolder(spec.ShopDomain, spec.ShopName, spec.Identifier, name)
	folder.Description = spec.Description

	if spec.Parent.IsEmpty() {
		m.AddFolder(folder)
		return folder.ID, true, nil
	}

	parent := m.GetFolder(spec.Parent)
	if parent == nil {
		return uid.Empty, false, fmt.Errorf("folder %s: %w", spec.Parent, ErrParentNotFound)
	}
	switch parent.Kind {
	case KindCatalogItem:
		return uid.Empty, false, fmt.Errorf("folder %s: %w", parent.ID, ErrCatalogFolderNesting)
	case KindFolder:
		parent.Children = append(parent.Children, folder)
		parent.Touch()
		return folder.ID, true, nil
	default:
		return uid.Empty, false, fmt.Errorf("folder %s: unknown kind %q", parent.ID, parent.Kind)
	}
}
