package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"

	"tableflip.dev/diary/pkg/page"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 80

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Markdown renders markdown for a terminal.
func Markdown(text string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("printers: create renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("printers: render markdown: %w", err)
	}
	return out, nil
}

// PagePrinter writes the body of a page. Output to a terminal is rendered as
// markdown unless Raw is set; anything else gets the plain text.
type PagePrinter struct {
	Out   io.Writer
	Raw   bool
	Width int
}

func (pp *PagePrinter) Print(p *page.Page) error {
	out := pp.Out
	if out == nil {
		out = os.Stdout
	}
	body := p.Body()
	if pp.Raw || !IsTerminal(out) {
		if body != "" && !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		_, err := io.WriteString(out, body)
		return err
	}
	rendered, err := Markdown(body, pp.Width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}
