package browse

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/editor"
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
func (t testConfig) ListMaxCount() int  { return 10 }

func appendLine(line string) editor.Editor {
	return editor.Func(func(_ context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		d, err := page.ParseDraft(data)
		if err != nil {
			return err
		}
		d.Text = strings.TrimSpace(d.Text + "\n" + line)
		out, err := d.Marshal()
		if err != nil {
			return err
		}
		return os.WriteFile(path, out, 0o600)
	})
}

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return &app.Service{
		Persistence: p,
		Editor:      appendLine("hello world"),
		Author:      "tester",
		Now:         func() time.Time { return time.Date(2020, 2, 28, 9, 0, 0, 0, time.Local) },
		Logger:      zap.NewNop(),
	}
}

func loaded(t *testing.T, m *Model) {
	t.Helper()
	m.Update(m.loadPages()())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestViewShowsPages(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, id := range []string{"groceries", "ideas"} {
		if _, err := svc.Create(ctx, id, app.CreateOptions{Memo: true}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	m := New(ctx, svc)
	loaded(t, m)

	view := m.View()
	for _, want := range []string{"groceries", "ideas", "hello", "2 pages"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if m.shown != "ideas" {
		t.Fatalf("expected newest page shown, got %q", m.shown)
	}
}

func TestTabSwitchesFocus(t *testing.T) {
	m := New(context.Background(), newTestService(t))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusPage {
		t.Fatalf("expected page focus, got %d", m.focus)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatalf("expected list focus, got %d", m.focus)
	}
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), newTestService(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestEditExecRunsService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, "a", app.CreateOptions{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.Editor = appendLine("more")

	c := &editExec{ctx: ctx, svc: svc, id: "a"}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	p, err := svc.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Text != "hello world\nmore" {
		t.Fatalf("unexpected text %q", p.Text)
	}
}

func TestEditExecToday(t *testing.T) {
	svc := newTestService(t)
	c := &editExec{ctx: context.Background(), svc: svc, today: true}
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	want, _ := svc.Day("", "")
	if c.id != want {
		t.Fatalf("expected %q, got %q", want, c.id)
	}
}

func TestEditedErrorShown(t *testing.T) {
	m := New(context.Background(), newTestService(t))
	m.Update(editedMsg{id: "a", err: app.ErrNotFound})
	if !strings.Contains(m.View(), "ERR:") {
		t.Fatalf("expected error in status:\n%s", m.View())
	}
}
