package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/page"
)

// Format selects machine readable output.
type Format string

const (
	FormatText Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "text":
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return FormatText, fmt.Errorf("printers: unknown output format %q, use json or yaml", s)
}

// PageView is the serialised form of a page.
type PageView struct {
	ID      string      `json:"id" yaml:"id"`
	Title   string      `json:"title" yaml:"title"`
	Author  string      `json:"author" yaml:"author"`
	Memo    bool        `json:"memo" yaml:"memo"`
	Created time.Time   `json:"created" yaml:"created"`
	Updated []time.Time `json:"updated" yaml:"updated"`
	Prev    string      `json:"prev" yaml:"prev"`
	Next    string      `json:"next" yaml:"next"`
	Text    string      `json:"text,omitempty" yaml:"text,omitempty"`
}

// ViewOf converts p. The body is included only when withText is set.
func ViewOf(p *page.Page, withText bool) PageView {
	v := PageView{
		ID:      p.ID,
		Title:   p.Header.Title,
		Author:  p.Header.Author,
		Memo:    p.Header.Memo,
		Created: p.Header.Created,
		Updated: p.Header.Updated,
		Prev:    p.Header.Prev,
		Next:    p.Header.Next,
	}
	if v.Updated == nil {
		v.Updated = []time.Time{}
	}
	if withText {
		v.Text = p.Text
	}
	return v
}

// Views converts a listing.
func Views(pages []*page.Page) []PageView {
	out := make([]PageView, 0, len(pages))
	for _, p := range pages {
		out = append(out, ViewOf(p, false))
	}
	return out
}

// HitView is the serialised form of a search hit.
type HitView struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Line  string `json:"line" yaml:"line"`
}

// HitViews converts search results.
func HitViews(hits []app.Hit) []HitView {
	out := make([]HitView, 0, len(hits))
	for _, h := range hits {
		out = append(out, HitView{ID: h.Page.ID, Title: h.Page.Header.Title, Line: h.Line})
	}
	return out
}

// Encode writes v in the requested machine format.
func Encode(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("printers: %q is not a machine format", f)
}
