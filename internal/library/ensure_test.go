package library_test

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

func TestEnsureCatalogFolder_CreatesOnce(t *testing.T) {
	m := library.NewMetadata()
	spec := library.CatalogFolderSpec{
		ShopDomain:  "shop.example.com",
		ShopName:    "Shop",
		Identifier:  "42",
		DisplayName: "Item 42",
	}

	id1, changed, err := library.EnsureCatalogFolder(m, spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder: %v", err)
	}
	if !changed {
		t.Error("first call should create")
	}

	id2, changed, err := library.EnsureCatalogFolder(m, spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder (second): %v", err)
	}
	if changed {
		t.Error("identical second call should change nothing")
	}
	if id1 != id2 {
		t.Errorf("ids differ: %s vs %s", id1, id2)
	}
	if len(m.FolderList) != 1 {
		t.Errorf("expected 1 root folder, got %d", len(m.FolderList))
	}
}

func TestEnsureCatalogFolder_PatchesNonDestructively(t *testing.T) {
	m := library.NewMetadata()
	spec := library.CatalogFolderSpec{ShopDomain: "shop.example.com", Identifier: "42", DisplayName: "Old Name"}
	id, _, err := library.EnsureCatalogFolder(m, spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder: %v", err)
	}

	// New non-empty values update; empty values leave the folder alone.
	spec.DisplayName = "New Name"
	spec.Description = "desc"
	_, changed, err := library.EnsureCatalogFolder(m, spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder (patch): %v", err)
	}
	if !changed {
		t.Error("patch should report a change")
	}
	f := m.GetFolder(id)
	if f.Name != "New Name" || f.Description != "desc" {
		t.Errorf("patch not applied: %+v", f)
	}

	spec.DisplayName = ""
	spec.Description = ""
	_, changed, err = library.EnsureCatalogFolder(m, spec)
	if err != nil {
		t.Fatalf("EnsureCatalogFolder (empty patch): %v", err)
	}
	if changed {
		t.Error("empty patch should change nothing")
	}
	if f.Name != "New Name" || f.Description != "desc" {
		t.Errorf("empty patch overwrote fields: %+v", f)
	}
}

func TestEnsureCatalogFolder_UnderPlainParent(t *testing.T) {
	m := library.NewMetadata()
	parent := library.NewFolder("parent")
	m.AddFolder(parent)

	id, changed, err := library.EnsureCatalogFolder(m, library.CatalogFolderSpec{
		ShopDomain: "shop.example.com",
		Identifier: "42",
		Parent:     parent.ID,
	})
	if err != nil || !changed {
		t.Fatalf("EnsureCatalogFolder under parent: changed=%v err=%v", changed, err)
	}
	if len(parent.Children) != 1 || parent.Children[0].ID != id {
		t.Error("folder not attached to parent")
	}
}

func TestEnsureCatalogFolder_RefusesCatalogParent(t *testing.T) {
	m := library.NewMetadata()
	parent := library.NewCatalogItemFolder("shop.example.com", "Shop", "1", "Parent")
	m.AddFolder(parent)

	_, _, err := library.EnsureCatalogFolder(m, library.CatalogFolderSpec{
		ShopDomain: "shop.example.com",
		Identifier: "2",
		Parent:     parent.ID,
	})
	if !errors.Is(err, library.ErrCatalogFolderNesting) {
		t.Errorf("err = %v, want ErrCatalogFolderNesting", err)
	}
	if m.FindCatalogFolder("shop.example.com", "2") != nil {
		t.Error("partial folder created despite refusal")
	}
}

func TestEnsureCatalogFolder_RefusesMissingParent(t *testing.T) {
	m := library.NewMetadata()
	_, _, err := library.EnsureCatalogFolder(m, library.CatalogFolderSpec{
		ShopDomain: "shop.example.com",
		Identifier: "42",
		Parent:     uid.New(),
	})
	if !errors.Is(err, library.ErrParentNotFound) {
		t.Errorf("err = %v, want ErrParentNotFound", err)
	}
	if len(m.FolderList) != 0 {
		t.Error("partial folder created despite refusal")
	}
}
