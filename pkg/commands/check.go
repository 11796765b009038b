package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/check"
)

func addCheck(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report broken links, cycles and orphaned pages.",
		Example: `
diary check
diary check -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			svc, _, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := check.Check{
				Service: svc,
				Output:  format,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(context.Background())
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
