package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/timeutil"
)

// ListOptions
type ListOptions struct {
	Count int
	Skip  int
	Since string
	Long  bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().IntVarP(&o.Count, "number", "n", 0,
		Wrap80("Number of pages to list. Defaults to list_max_count from the config."))
	cmd.Flags().IntVar(&o.Skip, "skip", 0,
		"Skip the newest pages.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only pages created within a window, example: --since=1w or --since=2d12h.`)
	cmd.Flags().BoolVarP(&o.Long, "long", "l", false,
		"Show creation time and author.")
}

// Window parses --since.
func (o *ListOptions) Window() (time.Duration, error) {
	if o.Since == "" {
		return 0, nil
	}
	d, _, err := timeutil.ParseWindow(o.Since)
	return d, err
}
