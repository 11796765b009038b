package options

import (
	"github.com/spf13/cobra"
)

// RootOptions are the persistent flags shared by every command.
type RootOptions struct {
	Dir     string
	Verbose bool
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().StringVar(&o.Dir, "dir", "",
		Wrap80("Diary directory. Overrides DIARY_DIR and the platform default."))
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug details to stderr.")
}
