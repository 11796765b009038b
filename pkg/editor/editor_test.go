package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShellCommand(t *testing.T) {
	tests := map[string]struct {
		goos     string
		editor   string
		path     string
		wantName string
		wantArgs []string
	}{
		"posix": {
			goos:     "linux",
			editor:   "vim",
			path:     "/home/me/.config/diary/EDIT_PAGE",
			wantName: "sh",
			wantArgs: []string{"-c", "vim '/home/me/.config/diary/EDIT_PAGE'"},
		},
		"posix with flags and quote": {
			goos:     "darwin",
			editor:   "code --wait",
			path:     "/Users/o'neil/diary/EDIT_PAGE",
			wantName: "sh",
			wantArgs: []string{"-c", `code --wait '/Users/o'\''neil/diary/EDIT_PAGE'`},
		},
		"windows": {
			goos:     "windows",
			editor:   "notepad",
			path:     `C:\Users\me\AppData\Local\diary\EDIT_PAGE`,
			wantName: "cmd",
			wantArgs: []string{"/c", `notepad "C:\Users\me\AppData\Local\diary\EDIT_PAGE"`},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			gotName, gotArgs := shellCommand(tc.goos, tc.editor, tc.path)
			if gotName != tc.wantName {
				t.Fatalf("expected %q, got %q", tc.wantName, gotName)
			}
			if diff := cmp.Diff(tc.wantArgs, gotArgs); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommandEdit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "EDIT_PAGE")
	if err := os.WriteFile(path, []byte("before"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stderr bytes.Buffer
	c := &Command{Command: "echo after >", Stderr: &stderr}
	if err := c.Edit(context.Background(), path); err != nil {
		t.Fatalf("edit: %v (stderr %q)", err, stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != "after" {
		t.Fatalf("expected editor to rewrite the file, got %q", data)
	}
}

func TestCommandEditFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	c := &Command{Command: "false"}
	err := c.Edit(context.Background(), filepath.Join(t.TempDir(), "EDIT_PAGE"))
	if err == nil {
		t.Fatalf("expected failure from a non-zero exit")
	}
	if !strings.Contains(err.Error(), "`false` failed") {
		t.Fatalf("expected error to name the editor, got %v", err)
	}
}

func TestCommandEditNoEditor(t *testing.T) {
	c := &Command{}
	if err := c.Edit(context.Background(), "x"); err == nil {
		t.Fatalf("expected error when no editor is configured")
	}
}

func TestFunc(t *testing.T) {
	want := errors.New("boom")
	var got string
	e := Func(func(_ context.Context, path string) error {
		got = path
		return want
	})
	if err := e.Edit(context.Background(), "p"); !errors.Is(err, want) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if got != "p" {
		t.Fatalf("expected path p, got %q", got)
	}
}
