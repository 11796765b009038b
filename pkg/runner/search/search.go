package search

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// Search scans every page in the chain for a query.
type Search struct {
	Service *app.Service
	Query   app.Query
	Output  printers.Format
	Out     io.Writer
}

func (n *Search) Do(ctx context.Context) error {
	hits, err := n.Service.Search(ctx, n.Query)
	if err != nil {
		return err
	}
	if n.Output != printers.FormatText {
		return printers.Encode(n.Out, n.Output, printers.HitViews(hits))
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Hits(hits...)
	return nil
}
