package show

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// Show prints a single page. ID may be a regular expression over page ids.
type Show struct {
	Service *app.Service
	ID      string
	Raw     bool
	Meta    bool
	Width   int
	Output  printers.Format
	Out     io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	id, err := n.Service.Resolve(ctx, n.ID)
	if err != nil {
		return err
	}
	p, err := n.Service.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.Output != printers.FormatText {
		return printers.Encode(n.Out, n.Output, printers.ViewOf(p, true))
	}
	if n.Meta {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.Header(p)
	}
	pr := printers.PagePrinter{Out: n.Out, Raw: n.Raw, Width: n.Width}
	return pr.Print(p)
}
