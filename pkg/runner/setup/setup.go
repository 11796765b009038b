// Package setup creates a new diary directory.
package setup

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/store"
)

// Init creates the directory layout, a HEAD pointing at NULL and a default
// config file. Existing state is left alone.
type Init struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Init) Do(_ context.Context) error {
	if err := store.Init(n.Persistence); err != nil {
		return err
	}
	created, err := store.WriteConfig(n.Config)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Out, "diary ready in %s\n", n.Persistence.BasePath())
	if created {
		_, _ = fmt.Fprintf(n.Out, "wrote %s\n", n.Config.ConfigFile())
	}
	return nil
}
