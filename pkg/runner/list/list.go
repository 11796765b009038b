package list

import (
	"context"
	"io"
	"time"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// List prints the newest pages of the chain.
type List struct {
	Service *app.Service
	Count   int
	Skip    int
	Since   time.Duration
	Long    bool
	Output  printers.Format
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	pages, err := n.Service.List(ctx, app.ListOptions{
		Skip:   n.Skip,
		Count:  n.Count,
		Within: n.Since,
	})
	if err != nil {
		return err
	}
	if n.Output != printers.FormatText {
		return printers.Encode(n.Out, n.Output, printers.Views(pages))
	}
	pp := printers.PrettyPrint{Out: n.Out, Long: n.Long}
	pp.Pages(pages...)
	return nil
}
