package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/rename"
)

func addEditID(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "editid <id> <new id>",
		Aliases: []string{"mv"},
		Short:   "Rename a page, keeping its place in the chain.",
		Example: `
diary editid groceries shopping
diary mv 2020-02-28 2020-02-27
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completePageIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := rename.Rename{
				Service: svc,
				From:    args[0],
				To:      args[1],
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
