package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a page, today's by default.",
		Example: `
diary edit
diary edit groceries
diary edit --on 2/28
diary edit --ago 1d
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("edit takes at most one page id")
			}
			if len(args) == 1 && oo.Set() {
				return errors.New("give either a page id or --on/--ago, not both")
			}
			return nil
		},
		ValidArgsFunction: completePageIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else if id, err = svc.Day(oo.On, oo.Ago); err != nil {
				return err
			}
			s := edit.Edit{
				Service: svc,
				ID:      id,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
