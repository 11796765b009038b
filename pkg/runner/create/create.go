package create

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
)

// Create adds a page in front of HEAD. Without an id it creates today's page;
// a page with an explicit id is a memo.
type Create struct {
	Service *app.Service
	ID      string
	Title   string
	Out     io.Writer
}

func (n *Create) Do(ctx context.Context) error {
	id, memo := n.ID, true
	if id == "" {
		var err error
		if id, err = n.Service.Day("", ""); err != nil {
			return err
		}
		memo = false
	}
	p, err := n.Service.Create(ctx, id, app.CreateOptions{Memo: memo, Title: n.Title})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Out, "created %s\n", color.New(color.FgHiYellow).Sprint(p.ID))
	return nil
}
