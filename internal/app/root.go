// Package app wires the assetctl CLI: configuration, the repository, and
// the cobra command tree.
package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/assetctl/internal/config"
	"github.com/blackwell-systems/assetctl/internal/repo"
	"github.com/blackwell-systems/assetctl/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	repository *repo.Repository

	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "Manage a local library of downloaded assets",
	Long: `assetctl manages a local library of file assets organized into folders,
with a JSON metadata store, a derived read cache, and bulk import of
shop catalogs with deduplication.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/assetctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)
		if flagConfig != "" {
			if err := os.Setenv("ASSETCTL_CONFIG", flagConfig); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		repository = repo.New(cfg.Library.RootDir, cfg.Library.CacheDir, newLogger(flagVerbose))
		repository.SetScanWorkers(cfg.Library.ScanWorkers)
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInitCmd(),
		newImportCmd(),
		newVerifyCmd(),
		newAddCmd(),
		newListCmd(),
		newInfoCmd(),
		newFoldersCmd(),
		newTagsCmd(),
		newDeleteCmd(),
		newVersionCmd(),
	)
}

// loadRepository loads the store for commands that need library data,
// with a friendly hint when the store was never initialized.
func loadRepository() error {
	if _, err := os.Stat(cfg.Library.RootDir); os.IsNotExist(err) {
		return fmt.Errorf("library not found at %s — run 'assetctl init' first", cfg.Library.RootDir)
	}
	if err := repository.Load(); err != nil {
		return fmt.Errorf("loading library: %w", err)
	}
	return nil
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(name, value string) {
	fmt.Printf("  %-12s %s\n", color.HiBlackString(name), value)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
