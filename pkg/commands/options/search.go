package options

import (
	"github.com/spf13/cobra"
)

// SearchOptions
type SearchOptions struct {
	Regex      bool
	IgnoreCase bool
	Titles     bool
}

func AddSearchArgs(cmd *cobra.Command, o *SearchOptions) {
	cmd.Flags().BoolVarP(&o.Regex, "regex", "E", false,
		"Treat the query as a regular expression.")
	cmd.Flags().BoolVarP(&o.IgnoreCase, "ignore-case", "i", false,
		"Match case insensitively.")
	cmd.Flags().BoolVar(&o.Titles, "titles", false,
		"Match page titles as well as bodies.")
}
