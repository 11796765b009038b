package remove

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
)

// Remove splices pages out of the chain and deletes them.
type Remove struct {
	Service *app.Service
	IDs     []string
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	y := color.New(color.FgHiYellow)
	for _, id := range n.IDs {
		if err := n.Service.Remove(ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(n.Out, "removed %s\n", y.Sprint(id))
	}
	return nil
}
