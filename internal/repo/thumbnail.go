package repo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/assetctl/internal/uid"
)

// Thumbnail storage. The repository stores already-encoded PNG bytes at
// deterministic paths; decoding and resizing happen upstream. A missing
// thumbnail is a normal, queryable state, not an error.

// AssetThumbnail returns the path of the asset's thumbnail and whether it
// exists.
func (r *Repository) AssetThumbnail(id uid.UID) (string, bool) {
	path := filepath.Join(r.assetDir(id), thumbnailFile)
	_, err := os.Stat(path)
	return path, err == nil
}

// SetAssetThumbnail stores the encoded image as the asset's thumbnail.
func (r *Repository) SetAssetThumbnail(id uid.UID, img io.Reader) error {
	if err := os.MkdirAll(r.assetDir(id), 0755); err != nil {
		return fmt.Errorf("creating asset dir %s: %w", id, err)
	}
	return storeImage(filepath.Join(r.assetDir(id), thumbnailFile), img)
}

// FolderIcon returns the path of the folder's icon and whether it exists.
func (r *Repository) FolderIcon(folderID uid.UID) (string, bool) {
	path := filepath.Join(r.iconDir(), folderID.String()+".png")
	_, err := os.Stat(path)
	return path, err == nil
}

// SetFolderIcon stores the encoded image as the folder's icon.
func (r *Repository) SetFolderIcon(folderID uid.UID, img io.Reader) error {
	if err := os.MkdirAll(r.iconDir(), 0755); err != nil {
		return fmt.Errorf("creating icon dir: %w", err)
	}
	return storeImage(filepath.Join(r.iconDir(), folderID.String()+".png"), img)
}

func storeImage(path string, img io.Reader) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp image: %w", err)
	}
	if _, err := io.Copy(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing image: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("closing temp image: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
