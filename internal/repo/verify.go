package repo

import (
	"context"
	"slices"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

// VerificationResult is the diff between the on-disk asset set and the
// in-memory cache. It is a plain value: producing it mutates nothing.
type VerificationResult struct {
	// MissingInCache holds asset records found on disk with no cache
	// entry (orphan recovery candidates).
	MissingInCache []library.Asset
	// MissingOnDisk holds ids of cached assets whose directory or record
	// is gone (stale entries).
	MissingOnDisk []uid.UID
	// Modified holds the on-disk version of assets present in both but
	// differing in name, size, ext, folder or tag set.
	Modified []library.Asset
}

// Empty reports whether the verification found no drift.
func (v *VerificationResult) Empty() bool {
	return len(v.MissingInCache) == 0 && len(v.MissingOnDisk) == 0 && len(v.Modified) == 0
}

// LoadAndVerify rescans the asset directories and diffs them against the
// cache. It never mutates repository state, so it is safe to run off the
// main sequence while reads continue; pass the result to
// ApplyVerificationResult to accept it.
//
// The cache is snapshotted synchronously at entry; only the disk scan
// happens after this call would return to a worker.
func (r *Repository) LoadAndVerify(ctx context.Context) (*VerificationResult, error) {
	cached := make(map[uid.UID]library.Asset, len(r.assets))
	for id, a := range r.assets {
		cached[id] = a
	}

	onDisk, err := r.scanAssetDirs(ctx)
	if err != nil {
		return nil, err
	}

	res := &VerificationResult{}
	for id, diskAsset := range onDisk {
		cachedAsset, ok := cached[id]
		if !ok {
			res.MissingInCache = append(res.MissingInCache, diskAsset)
			continue
		}
		if !assetsEquivalent(cachedAsset, diskAsset) {
			res.Modified = append(res.Modified, diskAsset)
		}
	}
	for id := range cached {
		if _, ok := onDisk[id]; !ok {
			res.MissingOnDisk = append(res.MissingOnDisk, id)
		}
	}

	slices.SortFunc(res.MissingInCache, func(a, b library.Asset) int { return a.ID.Compare(b.ID) })
	slices.SortFunc(res.Modified, func(a, b library.Asset) int { return a.ID.Compare(b.ID) })
	slices.SortFunc(res.MissingOnDisk, uid.UID.Compare)
	return res, nil
}

// assetsEquivalent is the narrow equality verification uses: name, size,
// ext, folder and tag set only. Description and catalog provenance are
// deliberately ignored.
func assetsEquivalent(a, b library.Asset) bool {
	return a.Name == b.Name &&
		a.Size == b.Size &&
		a.Ext == b.Ext &&
		a.Folder == b.Folder &&
		slices.Equal(a.Tags, b.Tags)
}

// ApplyVerificationResult is the only path that accepts a verification
// diff: disk-only records are adopted, stale entries dropped, and modified
// entries overwritten with their on-disk version. The cache is persisted
// once and a single batched notification raised.
func (r *Repository) ApplyVerificationResult(res *VerificationResult) error {
	if res == nil || res.Empty() {
		return nil
	}
	var changed []uid.UID
	for _, a := range res.MissingInCache {
		r.assets[a.ID] = a
		changed = append(changed, a.ID)
	}
	for _, a := range res.Modified {
		r.assets[a.ID] = a
		changed = append(changed, a.ID)
	}
	for _, id := range res.MissingOnDisk {
		delete(r.assets, id)
		changed = append(changed, id)
	}
	if err := r.persistCache(); err != nil {
		return err
	}
	r.notify(Change{Kind: AssetsChanged, Assets: changed})
	return nil
}
