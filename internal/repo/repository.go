// Package repo owns the on-disk library store and its in-memory cache.
// It is the only component that touches the physical layout; everything
// else reads snapshots from it and routes mutations back through its
// methods.
//
// Layout under the configured root:
//
//	<root>/metadata.json                      library structure, canonical
//	<root>/Assets/<assetID>/metadata.json     per-asset record
//	<root>/Assets/<assetID>/<content files>
//	<root>/Assets/<assetID>/thumbnail.png     optional
//	<root>/FolderIcon/<folderID>.png          optional
//	<cacheDir>/assetManager_cache.json        derived read cache
package repo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

const (
	metadataFile  = "metadata.json"
	assetsDirName = "Assets"
	iconDirName   = "FolderIcon"
	thumbnailFile = "thumbnail.png"
	cacheFile     = "assetManager_cache.json"

	defaultScanWorkers = 8
)

// Repository is the single source of truth for library metadata and the
// asset set. It assumes one writer on one logical sequence; only the
// read-only verification path is safe to run concurrently.
type Repository struct {
	rootDir     string
	cacheDir    string
	log         Logger
	scanWorkers int

	metadata *library.Metadata
	assets   map[uid.UID]library.Asset

	onChange func(Change)
}

// New creates a repository over the given root and cache directories.
// Call Initialize and Load before anything else.
func New(rootDir, cacheDir string, log Logger) *Repository {
	if log == nil {
		log = NewNopLogger()
	}
	return &Repository{
		rootDir:     rootDir,
		cacheDir:    cacheDir,
		log:         log,
		scanWorkers: defaultScanWorkers,
		metadata:    library.NewMetadata(),
		assets:      make(map[uid.UID]library.Asset),
	}
}

// SetScanWorkers overrides the parallelism of disk rescans and
// verification. Values below one keep the default.
func (r *Repository) SetScanWorkers(n int) {
	if n > 0 {
		r.scanWorkers = n
	}
}

func (r *Repository) metadataPath() string  { return filepath.Join(r.rootDir, metadataFile) }
func (r *Repository) assetsDir() string     { return filepath.Join(r.rootDir, assetsDirName) }
func (r *Repository) iconDir() string       { return filepath.Join(r.rootDir, iconDirName) }
func (r *Repository) cachePath() string     { return filepath.Join(r.cacheDir, cacheFile) }
func (r *Repository) assetDir(id uid.UID) string {
	return filepath.Join(r.assetsDir(), id.String())
}
func (r *Repository) assetMetaPath(id uid.UID) string {
	return filepath.Join(r.assetDir(id), metadataFile)
}

// Initialize idempotently creates the directory skeleton and, when no
// metadata file exists yet, writes an empty library. Existing data is
// never overwritten.
func (r *Repository) Initialize() error {
	for _, dir := range []string{r.rootDir, r.assetsDir(), r.iconDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if _, err := os.Stat(r.metadataPath()); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking metadata file: %w", err)
	}
	data, err := library.MarshalMetadata(library.NewMetadata())
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.metadataPath(), data); err != nil {
		return fmt.Errorf("writing empty metadata: %w", err)
	}
	return nil
}

// GetLibraryMetadata returns a deep copy of the current library structure.
// Callers mutate the copy and hand it back through SaveLibraryMetadata.
func (r *Repository) GetLibraryMetadata() *library.Metadata {
	return r.metadata.Clone()
}

// SaveLibraryMetadata replaces the folder tree wholesale, persists it and
// the cache, and raises one coarse "library changed" notification.
func (r *Repository) SaveLibraryMetadata(m *library.Metadata) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("saving library metadata: %w", err)
	}
	data, err := library.MarshalMetadata(m)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.metadataPath(), data); err != nil {
		return fmt.Errorf("writing library metadata: %w", err)
	}
	r.metadata = m.Clone()
	if err := r.persistCache(); err != nil {
		return err
	}
	r.notify(Change{Kind: LibraryChanged})
	return nil
}

// GetAsset returns the cached record for id.
func (r *Repository) GetAsset(id uid.UID) (library.Asset, bool) {
	a, ok := r.assets[id]
	return a, ok
}

// ListAssets returns all cached asset records, ordered by id (which for
// time-ordered UIDs is creation order).
func (r *Repository) ListAssets() []library.Asset {
	out := make([]library.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Compare(out[j].ID) < 0 })
	return out
}

// SaveAsset writes the per-asset metadata file, updates the cache entry,
// and re-persists the cache snapshot. Each call is independently durable.
func (r *Repository) SaveAsset(a library.Asset) error {
	if err := r.writeAsset(a); err != nil {
		return err
	}
	if err := r.persistCache(); err != nil {
		return err
	}
	r.notify(Change{Kind: AssetsChanged, Assets: []uid.UID{a.ID}})
	return nil
}

// SaveAssets writes each asset in turn and persists the cache once at the
// end, raising a single batched notification. A failure part-way leaves
// the already-written assets intact; there is no multi-asset transaction.
func (r *Repository) SaveAssets(batch []library.Asset) error {
	ids := make([]uid.UID, 0, len(batch))
	for _, a := range batch {
		if err := r.writeAsset(a); err != nil {
			// Reflect what actually landed before bailing.
			if cerr := r.persistCache(); cerr != nil {
				r.log.Warn("cache persist after partial batch failed", "error", cerr)
			}
			return err
		}
		ids = append(ids, a.ID)
	}
	if err := r.persistCache(); err != nil {
		return err
	}
	r.notify(Change{Kind: AssetsChanged, Assets: ids})
	return nil
}

func (r *Repository) writeAsset(a library.Asset) error {
	if a.ID.IsEmpty() {
		return fmt.Errorf("saving asset: empty id")
	}
	data, err := library.MarshalAsset(a)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.assetDir(a.ID), 0755); err != nil {
		return fmt.Errorf("creating asset dir %s: %w", a.ID, err)
	}
	if err := writeFileAtomic(r.assetMetaPath(a.ID), data); err != nil {
		return fmt.Errorf("writing asset %s: %w", a.ID, err)
	}
	r.assets[a.ID] = a
	return nil
}

// DeleteAsset removes the asset's directory recursively and drops its
// cache entry. Deleting an absent asset is not an error.
func (r *Repository) DeleteAsset(id uid.UID) error {
	if err := os.RemoveAll(r.assetDir(id)); err != nil {
		return fmt.Errorf("deleting asset %s: %w", id, err)
	}
	if _, ok := r.assets[id]; !ok {
		return nil
	}
	delete(r.assets, id)
	if err := r.persistCache(); err != nil {
		return err
	}
	r.notify(Change{Kind: AssetsChanged, Assets: []uid.UID{id}})
	return nil
}

// StoreContent writes a content file into the asset's directory. The name
// must be a bare filename; the metadata record and thumbnail names are
// reserved.
func (r *Repository) StoreContent(id uid.UID, name string, src io.Reader) error {
	if name == "" || name != filepath.Base(name) || name == metadataFile || name == thumbnailFile {
		return fmt.Errorf("storing content for %s: invalid file name %q", id, name)
	}
	if err := os.MkdirAll(r.assetDir(id), 0755); err != nil {
		return fmt.Errorf("creating asset dir %s: %w", id, err)
	}
	dest := filepath.Join(r.assetDir(id), name)
	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating content temp file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing content: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("closing content temp file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// ContentFiles lists the names of the asset's content files, excluding the
// metadata record and thumbnail.
func (r *Repository) ContentFiles(id uid.UID) ([]string, error) {
	entries, err := os.ReadDir(r.assetDir(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing asset %s: %w", id, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == metadataFile || e.Name() == thumbnailFile {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Tags returns the distinct tags across all assets and folders, sorted.
func (r *Repository) Tags() []string {
	set := make(map[string]bool)
	for _, a := range r.assets {
		for _, t := range a.Tags {
			set[t] = true
		}
	}
	for _, t := range r.metadata.Tags() {
		set[t] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// writeFileAtomic writes data to path via a temp file and rename, so a
// crash mid-write never leaves a half-written file at the canonical path.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
