package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/setup"
	"tableflip.dev/diary/pkg/store"
)

func addInit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the diary directory and a default config.",
		Example: `
diary init
diary init --dir ~/notes/diary
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			s := setup.Init{
				Config:      cfg,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
