package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/blackwell-systems/assetctl/internal/uid"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var (
		name     string
		folderID string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a local file to the library as a new asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			path := args[0]
			fi, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("reading %q: %w", path, err)
			}
			if fi.IsDir() {
				return fmt.Errorf("%q is a directory", path)
			}

			base := filepath.Base(path)
			if name == "" {
				name = base
			}
			ext := strings.TrimPrefix(filepath.Ext(base), ".")

			asset := library.NewAsset(name, ext, fi.Size()).WithTags(tags)
			if folderID != "" {
				id, err := uid.Parse(folderID)
				if err != nil {
					return err
				}
				if repository.GetLibraryMetadata().GetFolder(id) == nil {
					return fmt.Errorf("folder %s not found", id)
				}
				asset = asset.WithFolder(id)
			}

			if err := repository.SaveAsset(asset); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := repository.StoreContent(asset.ID, base, f); err != nil {
				return err
			}

			ok("Added %s (%s)", asset.Name, asset.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: file name)")
	cmd.Flags().StringVar(&folderID, "folder", "", "Folder id to file the asset under")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags to apply (repeatable)")
	return cmd
}
