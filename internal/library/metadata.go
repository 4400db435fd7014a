package library

import (
	"sort"

	"github.com/blackwell-systems/assetctl/internal/uid"
)

// Metadata is the root container for the folder forest. It is the canonical
// library structure persisted at <root>/metadata.json.
type Metadata struct {
	FolderList []*Folder `json:"FolderList"`
}

// NewMetadata returns an empty library.
func NewMetadata() *Metadata {
	return &Metadata{FolderList: []*Folder{}}
}

// AddFolder appends a folder at the library root.
func (m *Metadata) AddFolder(f *Folder) {
	m.FolderList = append(m.FolderList, f)
}

// GetFolder finds a folder anywhere in the tree by id, or returns nil.
func (m *Metadata) GetFolder(id uid.UID) *Folder {
	if id.IsEmpty() {
		return nil
	}
	for _, f := range m.FolderList {
		if hit := f.find(id); hit != nil {
			return hit
		}
	}
	return nil
}

// FindCatalogFolder looks up a catalog-item folder by its natural key:
// the shop domain paired with the catalog item id, falling back to the
// folder name when no item id was recorded.
func (m *Metadata) FindCatalogFolder(shopDomain, identifier string) *Folder {
	var hit *Folder
	m.Walk(func(f *Folder) bool {
		if f.Kind != KindCatalogItem || f.ShopDomain != shopDomain {
			return true
		}
		key := f.CatalogItemID
		if key == "" {
			key = f.Name
		}
		if key == identifier {
			hit = f
			return false
		}
		return true
	})
	return hit
}

// Walk visits every folder in the tree, depth-first. Return false from fn
// to stop early.
func (m *Metadata) Walk(fn func(*Folder) bool) {
	var visit func(f *Folder) bool
	visit = func(f *Folder) bool {
		if !fn(f) {
			return false
		}
		for _, c := range f.Children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for _, f := range m.FolderList {
		if !visit(f) {
			return
		}
	}
}

// Clone deep-copies the whole library structure. Callers that stage
// changes work on a clone and hand the result back to the repository.
func (m *Metadata) Clone() *Metadata {
	cp := &Metadata{FolderList: make([]*Folder, len(m.FolderList))}
	for i, f := range m.FolderList {
		cp.FolderList[i] = f.Clone()
	}
	return cp
}

// Validate checks variant invariants and id uniqueness across the tree.
func (m *Metadata) Validate() error {
	seen := make(map[uid.UID]bool)
	var dup *Folder
	m.Walk(func(f *Folder) bool {
		if seen[f.ID] {
			dup = f
			return false
		}
		seen[f.ID] = true
		return true
	})
	if dup != nil {
		return &DuplicateIDError{ID: dup.ID, Name: dup.Name}
	}
	for _, f := range m.FolderList {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Tags returns the distinct tags across every folder in the tree, sorted.
func (m *Metadata) Tags() []string {
	set := make(map[string]bool)
	m.Walk(func(f *Folder) bool {
		for _, t := range f.Tags {
			set[t] = true
		}
		return true
	})
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// DuplicateIDError reports two folders sharing one id.
type DuplicateIDError struct {
	ID   uid.UID
	Name string
}

func (e *DuplicateIDError) Error() string {
	return "duplicate folder id " + e.ID.String() + " (" + e.Name + ")"
}
