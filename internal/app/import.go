package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/assetctl/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <batch.json>",
		Short: "Import a shop catalog batch",
		Long: `Reads a shops/items/files batch from a JSON file and imports each
distinct downloadable file as a new asset, filed into a per-item catalog
folder. Files already known to the library are skipped, so re-importing
the same batch is a no-op.

The commit is all-or-nothing: a persistence failure rolls back every
asset written during this run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading batch file: %w", err)
			}
			shops, err := importer.ParsePayload(data)
			if err != nil {
				return err
			}

			pipeline := importer.New(repository, newLogger(flagVerbose))

			if dryRun {
				staged := pipeline.Preview(shops)
				if len(staged) == 0 {
					fmt.Println("Nothing to import.")
					return nil
				}
				header("Would import %d assets:", len(staged))
				for _, a := range staged {
					fmt.Printf("  %s  %s\n", a.ID, a.Name)
				}
				return nil
			}

			n, err := pipeline.Run(shops)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Nothing to import.")
				return nil
			}
			ok("Imported %d assets", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Stage the batch and report without committing")
	return cmd
}
