package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/assetctl/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newFoldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "Print the folder tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			m := repository.GetLibraryMetadata()
			if len(m.FolderList) == 0 {
				fmt.Println("No folders.")
				return nil
			}
			for _, f := range m.FolderList {
				printFolder(f, 0)
			}
			return nil
		},
	}
}

func printFolder(f *library.Folder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch f.Kind {
	case library.KindCatalogItem:
		fmt.Printf("%s%s %s %s\n", indent, color.MagentaString("▪"), f.Name,
			color.HiBlackString("(%s · %s)", f.ShopDomain, f.ID))
	case library.KindFolder:
		fmt.Printf("%s%s %s %s\n", indent, color.CyanString("▸"), f.Name,
			color.HiBlackString("(%s)", f.ID))
		for _, c := range f.Children {
			printFolder(c, depth+1)
		}
	}
}
