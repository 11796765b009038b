package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/create"
)

func addNew(topLevel *cobra.Command) {
	title := ""

	cmd := &cobra.Command{
		Use:   "new [id]",
		Short: "Create a page and open it in the editor.",
		Long: `Create a page and open it in the editor.

Without an id today's page is created. A page with an explicit id is a memo:
it sits in the chain like any other page but is marked as a note rather than
a day.`,
		Example: `
diary new
diary new groceries --title "Shopping list"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := create.Create{
				Service: svc,
				Title:   title,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				s.ID = args[0]
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title of the page. Defaults to the id.")

	topLevel.AddCommand(cmd)
}
