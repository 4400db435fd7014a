package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/assetctl/internal/uid"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show metadata and files for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			id, err := uid.Parse(args[0])
			if err != nil {
				return err
			}
			a, found := repository.GetAsset(id)
			if !found {
				return fmt.Errorf("asset %s not found", id)
			}

			header("Asset: %s", a.Name)
			printField("id", a.ID.String())
			if a.Description != "" {
				printField("description", a.Description)
			}
			printField("ext", a.Ext)
			printField("size", humanBytes(a.Size))
			if len(a.Tags) > 0 {
				printField("tags", strings.Join(a.Tags, ", "))
			}
			if f := repository.GetLibraryMetadata().GetFolder(a.Folder); f != nil {
				printField("folder", fmt.Sprintf("%s (%s)", f.Name, f.ID))
			}
			printField("modified", time.UnixMilli(a.ModificationTime).Format(time.RFC3339))
			if a.IsDeleted {
				printField("deleted", "yes (soft)")
			}

			if a.Catalog.ShopDomain != "" {
				printField("shop", a.Catalog.ShopDomain)
			}
			if a.Catalog.ItemID != "" {
				printField("item id", a.Catalog.ItemID)
			}
			if a.Catalog.DownloadID != "" {
				printField("download id", a.Catalog.DownloadID)
			}

			files, err := repository.ContentFiles(a.ID)
			if err != nil {
				warn("Could not list content files: %v", err)
			} else if len(files) > 0 {
				printField("files", strings.Join(files, ", "))
			}
			if _, hasThumb := repository.AssetThumbnail(a.ID); hasThumb {
				printField("thumbnail", "yes")
			}
			return nil
		},
	}
}
