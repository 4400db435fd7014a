package app

import (
	"os"

	"github.com/blackwell-systems/assetctl/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the library store and config file",
		Long: `Creates the library directory skeleton (metadata, Assets/, FolderIcon/)
and writes the config file if it does not exist yet. Safe to run again:
existing data is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := repository.Initialize(); err != nil {
				return err
			}
			ok("Library initialized at %s", cfg.Library.RootDir)

			if _, err := os.Stat(config.DefaultPath()); os.IsNotExist(err) {
				if err := config.Save(cfg); err != nil {
					return err
				}
				ok("Config written to %s", config.DefaultPath())
			}
			return nil
		},
	}
}
