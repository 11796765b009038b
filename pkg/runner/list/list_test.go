package list

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
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

func TestListSince(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	now := time.Date(2020, 2, 28, 9, 0, 0, 0, time.UTC)
	old := page.New("old", "tester", now.AddDate(0, 0, -10))
	recent := page.New("recent", "tester", now.AddDate(0, 0, -1))
	recent.Header.Prev = "old"
	old.Header.Next = "recent"
	for _, pg := range []*page.Page{old, recent} {
		if err := p.Write(pg); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := p.SetHead("recent"); err != nil {
		t.Fatalf("set head: %v", err)
	}

	var buf bytes.Buffer
	n := &List{
		Service: &app.Service{Persistence: p, Now: func() time.Time { return now }},
		Count:   10,
		Since:   7 * 24 * time.Hour,
		Out:     &buf,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(buf.String(), "(recent)") || strings.Contains(buf.String(), "(old)") {
		t.Fatalf("unexpected listing %q", buf.String())
	}
}
