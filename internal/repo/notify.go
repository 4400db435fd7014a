package repo

import "github.com/blackwell-systems/assetctl/internal/uid"

// ChangeKind classifies a repository change notification.
type ChangeKind int

const (
	// AssetsChanged covers saves, deletes and verification repairs of
	// individual assets. Assets lists the affected ids, batched per
	// operation.
	AssetsChanged ChangeKind = iota
	// LibraryChanged signals a wholesale folder-tree replacement, a
	// coarser event than per-asset changes.
	LibraryChanged
)

// Change is one repository change event.
type Change struct {
	Kind   ChangeKind
	Assets []uid.UID
}

// OnChange registers the change callback. Only one callback is supported;
// registering replaces the previous one. The callback runs synchronously
// on the mutating sequence, after the state it describes is persisted.
func (r *Repository) OnChange(fn func(Change)) {
	r.onChange = fn
}

func (r *Repository) notify(c Change) {
	if r.onChange != nil {
		r.onChange(c)
	}
}
