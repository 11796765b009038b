// Package editor hands files to the user's external editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Editor edits the file at path in place and returns once the user is done.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// Func adapts a function to Editor.
type Func func(ctx context.Context, path string) error

// Edit calls f.
func (f Func) Edit(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Command runs a configured editor command line through the platform shell,
// so settings such as "code --wait" work unchanged.
type Command struct {
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Command attached to the process's terminal.
func New(command string) *Command {
	return &Command{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Edit blocks until the editor exits. A non-zero exit status is an error.
func (c *Command) Edit(ctx context.Context, path string) error {
	if strings.TrimSpace(c.Command) == "" {
		return errors.New("editor: no editor configured, set `editor` in config.toml or $EDITOR")
	}

	name, args := shellCommand(runtime.GOOS, c.Command, path)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("editor: unable to execute `%s %s`: %w", name, strings.Join(args, " "), err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor: `%s` failed with exit code %d", c.Command, exitErr.ExitCode())
		}
		return fmt.Errorf("editor: unable to wait for `%s`: %w", c.Command, err)
	}
	return nil
}

// shellCommand builds the shell invocation for goos.
func shellCommand(goos, editor, path string) (string, []string) {
	if goos == "windows" {
		return "cmd", []string{"/c", editor + ` "` + path + `"`}
	}
	return "sh", []string{"-c", editor + " " + quote(path)}
}

// quote single-quotes s for a POSIX shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
