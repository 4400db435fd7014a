package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all distinct tags across assets and folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadRepository(); err != nil {
				return err
			}

			tags := repository.Tags()
			if len(tags) == 0 {
				fmt.Println("No tags found.")
				return nil
			}
			for _, t := range tags {
				fmt.Printf("  %s\n", color.CyanString(t))
			}
			fmt.Printf("\n%d tags\n", len(tags))
			return nil
		},
	}
}
