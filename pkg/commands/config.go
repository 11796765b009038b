package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/runner/config"
)

func addConfig(topLevel *cobra.Command) {
	path := false

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open the config file in the editor.",
		Long: `Open the config file in the editor. The file is created with the current
defaults first when it does not exist.

Keys: editor, author, list_max_count. Each can also be set from the
environment as DIARY_EDITOR, DIARY_AUTHOR and DIARY_LIST_MAX_COUNT.`,
		Example: `
diary config
diary config --path
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := config.Config{
				Config: cfg,
				Editor: editor.New(cfg.Editor()),
				Path:   path,
				Out:    cmd.OutOrStdout(),
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&path, "path", false, "Only print where the config file lives.")

	topLevel.AddCommand(cmd)
}
