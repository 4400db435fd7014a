package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var showDeleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			assets := repository.ListAssets()
			m := repository.GetLibraryMetadata()
			shown := 0
			for _, a := range assets {
				if a.IsDeleted && !showDeleted {
					continue
				}
				shown++
				folderName := ""
				if f := m.GetFolder(a.Folder); f != nil {
					folderName = f.Name
				}
				line := fmt.Sprintf("  %s  %-30s %-8s %10s  %s",
					color.HiBlackString(a.ID.String()),
					a.Name, a.Ext, humanBytes(a.Size), folderName)
				if len(a.Tags) > 0 {
					line += "  " + color.CyanString("["+strings.Join(a.Tags, ", ")+"]")
				}
				if a.IsDeleted {
					line += "  " + color.RedString("(deleted)")
				}
				fmt.Println(line)
			}
			fmt.Printf("\n%d assets\n", shown)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDeleted, "all", false, "Include soft-deleted assets")
	return cmd
}
