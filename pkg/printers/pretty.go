package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/page"
)

const (
	timeLayout = "2006-01-02 15:04"
	memoMark   = "*"
	// lineWidth bounds search hit lines.
	lineWidth = 72
)

// PrettyPrint writes human readable listings.
type PrettyPrint struct {
	Out io.Writer
	// Long adds timestamps and authors to page listings.
	Long bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " page")
	default:
		_, _ = c.Fprintln(pp.out(), " pages")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n")
}

// Pages prints one row per page, newest first as given: a memo marker, the
// title and the id.
func (pp *PrettyPrint) Pages(pages ...*page.Page) {
	if len(pages) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, p := range pages {
		mark := " "
		if p.Header.Memo {
			mark = memoMark
		}
		id := y.Sprintf("(%s)", p.ID)
		if pp.Long {
			tbl.AddRow(mark, p.Header.Title, id,
				f.Sprint(formatTime(p.Header.Created)),
				f.Sprint(p.Header.Author))
			continue
		}
		tbl.AddRow(mark, p.Header.Title, id)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Hits prints search results with the first matching line of each page.
func (pp *PrettyPrint) Hits(hits ...app.Hit) {
	if len(hits) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, h := range hits {
		tbl.AddRow(y.Sprint(h.Page.ID), f.Sprint(truncate.StringWithTail(h.Line, lineWidth, "…")))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Problems prints the outcome of a chain check.
func (pp *PrettyPrint) Problems(report *app.CheckReport) {
	_, _ = fmt.Fprintf(pp.out(), "HEAD %s, %d of %d pages reachable\n", report.Head, report.Reachable, report.Pages)
	if report.OK() {
		_, _ = color.New(color.FgGreen).Fprintln(pp.out(), "chain ok")
		return
	}

	r := color.New(color.FgRed)
	y := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, p := range report.Problems {
		tbl.AddRow(r.Sprint(string(p.Kind)), y.Sprint(p.ID), p.Detail)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Fields prints aligned key/value pairs.
func (pp *PrettyPrint) Fields(kv ...string) {
	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	for i := 0; i+1 < len(kv); i += 2 {
		tbl.AddRow(b.Sprint(kv[i]), kv[i+1])
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Header prints the metadata of a single page above its body.
func (pp *PrettyPrint) Header(p *page.Page) {
	edits := make([]string, 0, len(p.Header.Updated))
	for _, u := range p.Header.Updated {
		edits = append(edits, formatTime(u))
	}
	pp.Fields(
		"id", p.ID,
		"title", p.Header.Title,
		"author", p.Header.Author,
		"created", formatTime(p.Header.Created),
		"updated", strings.Join(edits, ", "),
		"memo", fmt.Sprint(p.Header.Memo),
		"prev", p.Header.Prev,
		"next", p.Header.Next,
	)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}
