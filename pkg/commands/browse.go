package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/browse"
)

func addBrowse(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"ui"},
		Short:   "Open the text-based page browser.",
		Example: `
diary browse
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			b := browse.Browse{Service: svc}
			return b.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
