package setup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/diary/pkg/page"
	"tableflip.dev/diary/pkg/store"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string   { return t.path }
func (t testConfig) ConfigFile() string { return filepath.Join(t.path, "config.toml") }
func (t testConfig) Editor() string     { return "ed" }
func (t testConfig) Author() string     { return "tester" }
func (t testConfig) ListMaxCount() int  { return 7 }

func TestInit(t *testing.T) {
	cfg := testConfig{path: filepath.Join(t.TempDir(), "diary")}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	n := &Init{Config: cfg, Persistence: p, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "wrote") {
		t.Fatalf("expected config to be written, got %q", buf.String())
	}
	head, err := p.Head()
	if err != nil || head != page.NullID {
		t.Fatalf("unexpected head %q %v", head, err)
	}
	data, err := os.ReadFile(cfg.ConfigFile())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "tester") {
		t.Fatalf("expected author in config, got %q", data)
	}

	// Existing state is kept.
	if err := p.SetHead("x"); err != nil {
		t.Fatalf("set head: %v", err)
	}
	buf.Reset()
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("second do: %v", err)
	}
	if strings.Contains(buf.String(), "wrote") {
		t.Fatalf("config rewritten: %q", buf.String())
	}
	if head, _ := p.Head(); head != "x" {
		t.Fatalf("head reset to %q", head)
	}
}
