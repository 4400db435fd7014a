package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

// cacheSnapshot is the derived read cache written after every mutating
// operation. It is disposable: Load rebuilds it from disk when it is
// missing or unreadable.
type cacheSnapshot struct {
	Metadata *library.Metadata `json:"Metadata"`
	Assets   []library.Asset   `json:"Assets"`
}

// Load populates the in-memory state, preferring the cache file and
// falling back to a full disk rescan when the cache is absent or
// malformed. After a rescan the rebuilt cache is persisted immediately.
func (r *Repository) Load() error {
	if err := r.loadCache(); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		r.log.Warn("cache unreadable, rebuilding from disk", "error", err)
	}
	if err := r.rebuildFromDisk(context.Background()); err != nil {
		return err
	}
	return r.persistCache()
}

func (r *Repository) loadCache() error {
	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return err
	}
	var snap cacheSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing cache: %w", err)
	}
	if snap.Metadata == nil {
		return fmt.Errorf("parsing cache: missing metadata")
	}
	if err := snap.Metadata.Validate(); err != nil {
		return fmt.Errorf("parsing cache: %w", err)
	}
	r.metadata = snap.Metadata
	r.assets = make(map[uid.UID]library.Asset, len(snap.Assets))
	for _, a := range snap.Assets {
		if a.ID.IsEmpty() {
			return fmt.Errorf("parsing cache: asset without id")
		}
		r.assets[a.ID] = a
	}
	return nil
}

// rebuildFromDisk is the explicit reconciliation path: read the canonical
// metadata file and rescan every asset subdirectory. Individual unreadable
// asset records are skipped with a warning, never fatal.
func (r *Repository) rebuildFromDisk(ctx context.Context) error {
	metadata, err := r.readMetadataFile()
	if err != nil {
		return err
	}
	assets, err := r.scanAssetDirs(ctx)
	if err != nil {
		return err
	}
	r.metadata = metadata
	r.assets = assets
	return nil
}

func (r *Repository) readMetadataFile() (*library.Metadata, error) {
	data, err := os.ReadFile(r.metadataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return library.NewMetadata(), nil
		}
		return nil, fmt.Errorf("reading library metadata: %w", err)
	}
	return library.ParseMetadata(data)
}

// scanAssetDirs reads every <root>/Assets/<id>/metadata.json in parallel.
// Entries that are not directories, have unparseable names, or hold an
// unreadable record are skipped with a warning.
func (r *Repository) scanAssetDirs(ctx context.Context) (map[uid.UID]library.Asset, error) {
	entries, err := os.ReadDir(r.assetsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return map[uid.UID]library.Asset{}, nil
		}
		return nil, fmt.Errorf("scanning assets dir: %w", err)
	}

	var mu sync.Mutex
	found := make(map[uid.UID]library.Asset)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.scanWorkers)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		g.Go(func() error {
			id, err := uid.Parse(name)
			if err != nil {
				r.log.Warn("skipping asset dir with invalid name", "dir", name)
				return nil
			}
			data, err := os.ReadFile(r.assetMetaPath(id))
			if err != nil {
				r.log.Warn("skipping unreadable asset record", "id", name, "error", err)
				return nil
			}
			asset, err := library.ParseAsset(data)
			if err != nil {
				r.log.Warn("skipping malformed asset record", "id", name, "error", err)
				return nil
			}
			mu.Lock()
			found[asset.ID] = asset
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

// persistCache writes the cache snapshot: serialize to a temp file, delete
// the stale cache if present, rename the temp file into place. Readers
// always see either the old or the new complete cache.
func (r *Repository) persistCache() error {
	if err := os.MkdirAll(r.cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	assets := make([]library.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID.Compare(assets[j].ID) < 0 })

	data, err := json.MarshalIndent(cacheSnapshot{Metadata: r.metadata, Assets: assets}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	path := r.cachePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		_ = os.Remove(tmp)
		return fmt.Errorf("removing stale cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming cache into place: %w", err)
	}
	return nil
}
