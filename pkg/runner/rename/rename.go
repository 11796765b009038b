package rename

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
)

// Rename moves a page to a new id, keeping the chain intact.
type Rename struct {
	Service *app.Service
	From    string
	To      string
	Out     io.Writer
}

func (n *Rename) Do(ctx context.Context) error {
	if _, err := n.Service.Rename(ctx, n.From, n.To); err != nil {
		return err
	}
	y := color.New(color.FgHiYellow)
	_, _ = fmt.Fprintf(n.Out, "renamed %s -> %s\n", y.Sprint(n.From), y.Sprint(n.To))
	return nil
}
