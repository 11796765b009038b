package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the newest pages.",
		Example: `
diary list
diary list -n 20 --skip 10
diary list --since 1w --long
diary list -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			window, err := lo.Window()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, cfg, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			count := lo.Count
			if count <= 0 {
				count = cfg.ListMaxCount()
			}
			s := list.List{
				Service: svc,
				Count:   count,
				Skip:    lo.Skip,
				Since:   window,
				Long:    lo.Long,
				Output:  format,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
