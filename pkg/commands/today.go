package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/edit"
)

func addToday(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "today",
		Aliases: []string{"diary"},
		Short:   "Edit today's page, creating it when needed.",
		Example: `
diary today
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToday(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runToday(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	svc, _, err := loadService()
	if err != nil {
		return err
	}
	s := edit.Edit{
		Service: svc,
		Today:   true,
		Out:     cmd.OutOrStdout(),
	}
	return s.Do(context.Background())
}
