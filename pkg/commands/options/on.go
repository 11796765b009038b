package options

import (
	"github.com/spf13/cobra"
)

// OnOptions select a day page by date or by distance from today.
type OnOptions struct {
	On  string
	Ago string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.On, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=yesterday.`)
	cmd.Flags().StringVar(&o.Ago, "ago", "",
		`Specify a distance back from today, example: --ago=3d or --ago=1w.`)
}

// Set reports whether either flag was given.
func (o *OnOptions) Set() bool {
	return o.On != "" || o.Ago != ""
}
