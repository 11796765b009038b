package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/store"
)

// Watch prints a line for every page change until ctx is done.
type Watch struct {
	Service *app.Service
	Logger  *zap.Logger
	Out     io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	log := n.Logger
	if log == nil {
		log = zap.NewNop()
	}
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	log.Debug("watching", zap.String("dir", n.Service.Persistence.BasePath()))

	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow)
	for ev := range events {
		stamp := f.Sprint(time.Now().Format("15:04:05"))
		switch ev.Type {
		case store.EventHeadChanged:
			head, err := n.Service.Persistence.Head()
			if err != nil {
				log.Warn("read head", zap.Error(err))
				continue
			}
			_, _ = fmt.Fprintf(n.Out, "%s %s %s\n", stamp, ev.Type, y.Sprint(head))
		default:
			_, _ = fmt.Fprintf(n.Out, "%s %s %s\n", stamp, ev.Type, y.Sprint(ev.ID))
		}
	}
	return nil
}
