package library

import (
	"strings"
	"time"

	"github.com/blackwell-systems/assetctl/internal/uid"
)

// CatalogData records where a shop-sourced asset came from. All fields are
// optional; an asset created by hand has none of them.
type CatalogData struct {
	ShopDomain string `json:"ShopDomain,omitempty"`
	ItemID     string `json:"ItemID,omitempty"`
	DownloadID string `json:"DownloadID,omitempty"`
	FileName   string `json:"FileName,omitempty"`
}

// CrossRefs carries opaque host-side references: external asset handles the
// host application resolves itself, and dependencies on other assets.
type CrossRefs struct {
	ExternalAssets []string  `json:"ExternalAssets,omitempty"`
	Dependencies   []uid.UID `json:"Dependencies,omitempty"`
}

// Asset is the per-asset metadata record. Values are immutable once
// handed out: edits go through the With* transforms, which keep the ID
// stable and produce a new value to save back through the repository.
type Asset struct {
	ID               uid.UID     `json:"ID"`
	Name             string      `json:"Name"`
	Description      string      `json:"Description,omitempty"`
	Size             int64       `json:"Size"`
	Ext              string      `json:"Ext,omitempty"`
	Folder           uid.UID     `json:"Folder,omitempty"`
	Tags             []string    `json:"Tags,omitempty"`
	IsDeleted        bool        `json:"IsDeleted,omitempty"`
	ModificationTime int64       `json:"ModificationTime"`
	Catalog          CatalogData `json:"Catalog,omitempty"`
	CrossRefs        CrossRefs   `json:"CrossRefs,omitempty"`
}

// NewAsset creates an asset record with a fresh UID. The name is defaulted
// when blank and the extension lower-cased.
func NewAsset(name, ext string, size int64) Asset {
	return Asset{
		ID:               uid.New(),
		Name:             normalizeName(name),
		Ext:              strings.ToLower(ext),
		Size:             size,
		ModificationTime: time.Now().UnixMilli(),
	}
}

// clone copies the asset including its slices, so transforms never alias
// the original's backing arrays.
func (a Asset) clone() Asset {
	cp := a
	cp.Tags = append([]string(nil), a.Tags...)
	cp.CrossRefs.ExternalAssets = append([]string(nil), a.CrossRefs.ExternalAssets...)
	cp.CrossRefs.Dependencies = append([]uid.UID(nil), a.CrossRefs.Dependencies...)
	return cp
}

func (a Asset) touch() Asset {
	a.ModificationTime = time.Now().UnixMilli()
	return a
}

// WithName returns a copy with the (normalized) name replaced.
func (a Asset) WithName(name string) Asset {
	cp := a.clone()
	cp.Name = normalizeName(name)
	return cp.touch()
}

// WithDescription returns a copy with the description replaced.
func (a Asset) WithDescription(desc string) Asset {
	cp := a.clone()
	cp.Description = desc
	return cp.touch()
}

// WithFolder returns a copy filed under the given folder. Pass uid.Empty
// to unfile the asset.
func (a Asset) WithFolder(folder uid.UID) Asset {
	cp := a.clone()
	cp.Folder = folder
	return cp.touch()
}

// WithTags returns a copy with the tag list replaced. Duplicates are
// dropped, first occurrence wins, order preserved.
func (a Asset) WithTags(tags []string) Asset {
	cp := a.clone()
	cp.Tags = dedupTags(tags)
	return cp.touch()
}

// WithDeleted returns a copy with the soft-delete flag set.
func (a Asset) WithDeleted(deleted bool) Asset {
	cp := a.clone()
	cp.IsDeleted = deleted
	return cp.touch()
}

// WithCatalog returns a copy with the catalog provenance replaced.
func (a Asset) WithCatalog(c CatalogData) Asset {
	cp := a.clone()
	cp.Catalog = c
	return cp.touch()
}

func dedupTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
