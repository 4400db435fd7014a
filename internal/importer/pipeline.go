package importer

import (
	"fmt"
	"sync/atomic"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/repo"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

// Store is the repository surface the pipeline commits through. It never
// bypasses these methods to touch files directly.
type Store interface {
	ListAssets() []library.Asset
	GetLibraryMetadata() *library.Metadata
	SaveLibraryMetadata(*library.Metadata) error
	SaveAsset(library.Asset) error
	DeleteAsset(id uid.UID) error
}

// Pipeline runs staged, deduplicated catalog imports against a Store.
type Pipeline struct {
	store      Store
	log        repo.Logger
	processing atomic.Bool
}

// New creates a pipeline over the given store.
func New(store Store, log repo.Logger) *Pipeline {
	if log == nil {
		log = repo.NewNopLogger()
	}
	return &Pipeline{store: store, log: log}
}

// Processing reports whether an import is in flight. Advisory only, for
// health and status reporting.
func (p *Pipeline) Processing() bool {
	return p.processing.Load()
}

// dedupIndex tracks the identity tuples of persisted plus staged assets.
type dedupIndex struct {
	downloadIDs  map[string]bool
	itemFileKeys map[string]bool
}

func newDedupIndex(existing []library.Asset) *dedupIndex {
	idx := &dedupIndex{
		downloadIDs:  make(map[string]bool),
		itemFileKeys: make(map[string]bool),
	}
	for _, a := range existing {
		idx.add(a.Catalog.DownloadID, a.Catalog.ItemID, a.Catalog.FileName)
	}
	return idx
}

func (idx *dedupIndex) add(downloadID, itemID, fileName string) {
	if downloadID != "" {
		idx.downloadIDs[downloadID] = true
	}
	if itemID != "" && fileName != "" {
		idx.itemFileKeys[itemID+"\x00"+fileName] = true
	}
}

// seen reports whether either dedup condition holds: a matching non-empty
// download id, or a matching (item id, filename) pair.
func (idx *dedupIndex) seen(downloadID, itemID, fileName string) bool {
	if downloadID != "" && idx.downloadIDs[downloadID] {
		return true
	}
	if itemID != "" && fileName != "" && idx.itemFileKeys[itemID+"\x00"+fileName] {
		return true
	}
	return false
}

// Run ingests the batch and returns the number of assets committed: zero
// for an empty or fully-deduplicated batch, and zero after a rolled-back
// commit failure. Re-running the same batch commits nothing new.
func (p *Pipeline) Run(shops []Shop) (int, error) {
	p.processing.Store(true)
	defer p.processing.Store(false)

	preCommit, working, staged := p.stage(shops)
	if len(staged) == 0 {
		return 0, nil
	}
	return p.commit(preCommit, working, staged)
}

// Preview stages the batch without committing and returns the assets that
// a Run would create. Used for dry runs.
func (p *Pipeline) Preview(shops []Shop) []library.Asset {
	p.processing.Store(true)
	defer p.processing.Store(false)

	_, _, staged := p.stage(shops)
	return staged
}

// stage resolves the whole batch on in-memory clones: nothing here touches
// the store. Returns the pre-commit snapshot, the working copy with any
// new folders, and the staged assets.
func (p *Pipeline) stage(shops []Shop) (preCommit, working *library.Metadata, staged []library.Asset) {
	preCommit = p.store.GetLibraryMetadata()
	working = preCommit.Clone()
	idx := newDedupIndex(p.store.ListAssets())

	for _, shop := range shops {
		for _, item := range shop.Items {
			for _, file := range item.Files {
				asset, ok, err := p.stageFile(working, idx, shop, item, file)
				if err != nil {
					p.log.Warn("skipping import file", "url", file.URL, "error", err)
					continue
				}
				if !ok {
					continue
				}
				staged = append(staged, asset)
			}
		}
	}
	return preCommit, working, staged
}

// stageFile resolves one file's identity and folder against the working
// copy. ok is false when the file deduplicated away or carried no usable
// identity at all.
func (p *Pipeline) stageFile(working *library.Metadata, idx *dedupIndex, shop Shop, item Item, file File) (library.Asset, bool, error) {
	downloadID := extractDownloadID(file.URL)
	itemID := extractItemID(item.ItemURL)
	shopDomain := extractShopDomain(shop.ShopURL, item.ItemURL)
	fileName := fileNameOf(file)

	if downloadID == "" && itemID == "" && fileName == "" {
		return library.Asset{}, false, fmt.Errorf("no identity derivable")
	}
	if idx.seen(downloadID, itemID, fileName) {
		p.log.Debug("deduplicated import file", "url", file.URL, "downloadID", downloadID, "itemID", itemID)
		return library.Asset{}, false, nil
	}

	identifier := firstNonEmpty(itemID, downloadID, fileName, item.ItemURL)
	displayName := firstNonEmpty(item.Name, itemID, item.ItemURL)

	folderID, _, err := library.EnsureCatalogFolder(working, library.CatalogFolderSpec{
		ShopDomain:  shopDomain,
		ShopName:    shop.ShopName,
		Identifier:  identifier,
		DisplayName: displayName,
		Description: item.Description,
	})
	if err != nil {
		return library.Asset{}, false, fmt.Errorf("resolving folder: %w", err)
	}

	name := firstNonEmpty(fileName, displayName)
	asset := library.NewAsset(name, extOf(fileName), 0).
		WithFolder(folderID).
		WithCatalog(library.CatalogData{
			ShopDomain: shopDomain,
			ItemID:     itemID,
			DownloadID: downloadID,
			FileName:   fileName,
		})

	idx.add(downloadID, itemID, fileName)
	return asset, true, nil
}

// commit persists the staged batch: the updated library first, so new
// folders exist before assets reference them, then each asset in turn.
// Any persistence failure rolls everything back to the pre-commit
// snapshot, best-effort.
func (p *Pipeline) commit(preCommit, working *library.Metadata, staged []library.Asset) (int, error) {
	if err := p.store.SaveLibraryMetadata(working); err != nil {
		// The save may have landed partially before failing, so restore
		// the snapshot here too.
		p.rollback(preCommit, nil)
		return 0, fmt.Errorf("committing library metadata: %w", err)
	}

	var saved []uid.UID
	for _, asset := range staged {
		if err := p.store.SaveAsset(asset); err != nil {
			p.rollback(preCommit, saved)
			return 0, fmt.Errorf("committing asset %s: %w", asset.ID, err)
		}
		saved = append(saved, asset.ID)
	}

	p.log.Info("import committed", "assets", len(saved))
	return len(saved), nil
}

// rollback deletes every asset saved during the failed commit and restores
// the pre-commit library snapshot. Failures here are logged and swallowed:
// surfacing them on top of the commit failure gives the caller nothing
// actionable.
func (p *Pipeline) rollback(preCommit *library.Metadata, saved []uid.UID) {
	for _, id := range saved {
		if err := p.store.DeleteAsset(id); err != nil {
			p.log.Warn("rollback: deleting asset failed", "id", id, "error", err)
		}
	}
	if err := p.store.SaveLibraryMetadata(preCommit); err != nil {
		p.log.Warn("rollback: restoring library metadata failed", "error", err)
	}
}
