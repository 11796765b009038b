package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

// Info describes where the diary lives and what is in it.
type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Output      printers.Format
	Out         io.Writer
}

// Details is the machine readable form of Info.
type Details struct {
	Dir          string `json:"dir"`
	ConfigFile   string `json:"configFile" yaml:"configFile"`
	ConfigExists bool   `json:"configExists" yaml:"configExists"`
	Editor       string `json:"editor"`
	Author       string `json:"author"`
	ListMaxCount int    `json:"listMaxCount" yaml:"listMaxCount"`
	Head         string `json:"head"`
	Pages        int    `json:"pages"`
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil || n.Persistence == nil {
		return errors.New("info: config and persistence required")
	}
	head, err := n.Persistence.Head()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(n.Config.ConfigFile())
	d := Details{
		Dir:          n.Config.BasePath(),
		ConfigFile:   n.Config.ConfigFile(),
		ConfigExists: statErr == nil,
		Editor:       n.Config.Editor(),
		Author:       n.Config.Author(),
		ListMaxCount: n.Config.ListMaxCount(),
		Head:         head,
		Pages:        len(n.Persistence.IDs(ctx)),
	}
	if n.Output != printers.FormatText {
		return printers.Encode(n.Out, n.Output, d)
	}

	configFile := d.ConfigFile
	if !d.ConfigExists {
		configFile += " (not written, using defaults)"
	}
	if override := os.Getenv(store.EnvPrefix + "_DIR"); override != "" {
		_, _ = fmt.Fprintf(n.Out, "%s_DIR found on env, using %s\n", store.EnvPrefix, override)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Fields(
		"dir", d.Dir,
		"config", configFile,
		"editor", d.Editor,
		"author", d.Author,
		"list_max_count", fmt.Sprint(d.ListMaxCount),
		"head", d.Head,
		"pages", fmt.Sprint(d.Pages),
	)
	return nil
}
