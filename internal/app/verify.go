package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Detect cache vs disk drift",
		Long: `Rescans the asset directories and diffs them against the cache:
assets on disk the cache never saw, cached assets whose files are gone,
and assets whose on-disk record was edited. Use --fix to accept the diff.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			res, err := repository.LoadAndVerify(context.Background())
			if err != nil {
				return fmt.Errorf("verifying library: %w", err)
			}
			if res.Empty() {
				ok("No drift detected")
				return nil
			}

			if len(res.MissingInCache) > 0 {
				header("On disk but not cached (%d):", len(res.MissingInCache))
				for _, a := range res.MissingInCache {
					fmt.Printf("  %s  %s\n", a.ID, a.Name)
				}
			}
			if len(res.MissingOnDisk) > 0 {
				header("Cached but missing on disk (%d):", len(res.MissingOnDisk))
				for _, id := range res.MissingOnDisk {
					fmt.Printf("  %s\n", id)
				}
			}
			if len(res.Modified) > 0 {
				header("Modified on disk (%d):", len(res.Modified))
				for _, a := range res.Modified {
					fmt.Printf("  %s  %s\n", a.ID, a.Name)
				}
			}

			if !fix {
				warn("Run with --fix to accept the on-disk state.")
				return nil
			}
			if err := repository.ApplyVerificationResult(res); err != nil {
				return fmt.Errorf("applying verification result: %w", err)
			}
			ok("Cache repaired")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Accept the diff and repair the cache")
	return cmd
}
