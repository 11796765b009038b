package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	so := &options.SearchOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "search <query>",
		Aliases: []string{"grep"},
		Short:   "Find pages containing text.",
		Example: `
diary search apples
diary search -i "went to"
diary search -E "^TODO"
`,
		Args: cobra.MinimumNArgs(1),
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
			s := search.Search{
				Service: svc,
				Query: app.Query{
					Text:       strings.Join(args, " "),
					Regex:      so.Regex,
					IgnoreCase: so.IgnoreCase,
					Titles:     so.Titles,
				},
				Output: format,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSearchArgs(cmd, so)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
