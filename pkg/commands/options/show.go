package options

import (
	"github.com/spf13/cobra"
)

// ShowOptions
type ShowOptions struct {
	Raw   bool
	Meta  bool
	Width int
}

func AddShowArgs(cmd *cobra.Command, o *ShowOptions) {
	cmd.Flags().BoolVar(&o.Raw, "raw", false,
		"Print the page without markdown rendering.")
	cmd.Flags().BoolVar(&o.Meta, "meta", false,
		"Print the page header before the body.")
	cmd.Flags().IntVar(&o.Width, "width", 0,
		"Wrap rendered output at this width.")
}
