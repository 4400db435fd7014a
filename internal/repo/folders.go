package repo

import (
	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/uid"
)

// EnsureCatalogFolder finds or creates a catalog-item folder on the live
// library via the usual clone-mutate-save cycle. The import pipeline uses
// the library-level function directly on its staged clone; this wrapper
// serves direct asset edits.
func (r *Repository) EnsureCatalogFolder(spec library.CatalogFolderSpec) (uid.UID, error) {
	m := r.GetLibraryMetadata()
	id, changed, err := library.EnsureCatalogFolder(m, spec)
	if err != nil {
		return uid.Empty, err
	}
	if !changed {
		// Nothing to persist, and no notification to raise.
		return id, nil
	}
	if err := r.SaveLibraryMetadata(m); err != nil {
		return uid.Empty, err
	}
	return id, nil
}
