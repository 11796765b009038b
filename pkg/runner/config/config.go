package config

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/store"
)

// Config opens the config file in the editor, writing the defaults first when
// it does not exist yet.
type Config struct {
	Config store.Config
	Editor editor.Editor
	// Path only prints the config file location.
	Path bool
	Out  io.Writer
}

func (n *Config) Do(ctx context.Context) error {
	if n.Path {
		_, _ = fmt.Fprintln(n.Out, n.Config.ConfigFile())
		return nil
	}
	created, err := store.WriteConfig(n.Config)
	if err != nil {
		return err
	}
	if created {
		_, _ = fmt.Fprintf(n.Out, "wrote defaults to %s\n", n.Config.ConfigFile())
	}
	return n.Editor.Edit(ctx, n.Config.ConfigFile())
}
