package app

import (
	"fmt"

	"github.com/blackwell-systems/assetctl/internal/uid"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var soft bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset",
		Long: `Removes an asset and its files from the library. With --soft the files
stay on disk and the asset is only flagged deleted; a second delete
without --soft removes it for good.`,
		Args: cobra.ExactArgs(1),
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

			if soft {
				if err := repository.SaveAsset(a.WithDeleted(true)); err != nil {
					return err
				}
				ok("Marked %s deleted", a.Name)
				return nil
			}

			if err := repository.DeleteAsset(id); err != nil {
				return err
			}
			ok("Deleted %s", a.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&soft, "soft", false, "Flag as deleted without removing files")
	return cmd
}
