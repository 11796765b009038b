package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	so := &options.ShowOptions{}
	on := &options.OnOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show [id|pattern]",
		Short: "Print a page, today's by default.",
		Long: `Print a page, today's by default.

The argument is a page id, or a regular expression over page ids in which case
the last matching id in sorted order is shown.`,
		Example: `
diary show
diary show groceries
diary show 2020-02
diary show --on yesterday --raw
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("show takes at most one page id or pattern")
			}
			if len(args) == 1 && on.Set() {
				return errors.New("give either a page id or --on/--ago, not both")
			}
			return nil
		},
		ValidArgsFunction: completePageIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else if id, err = svc.Day(on.On, on.Ago); err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Service: svc,
				ID:      id,
				Raw:     so.Raw,
				Meta:    so.Meta,
				Width:   so.Width,
				Output:  format,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowArgs(cmd, so)
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
