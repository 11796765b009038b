package edit

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/page"
)

// Edit opens an existing page in the editor. With Today set, today's page is
// created first when it is missing.
type Edit struct {
	Service *app.Service
	ID      string
	Today   bool
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	var (
		p   *page.Page
		err error
	)
	if n.Today {
		p, err = n.Service.Today(ctx)
	} else {
		p, err = n.Service.Edit(ctx, n.ID)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Out, "saved %s\n", color.New(color.FgHiYellow).Sprint(p.ID))
	return nil
}
