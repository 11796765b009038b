package page

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DraftHeader holds the header fields a user may change in the editor.
type DraftHeader struct {
	Title       string `toml:"title"`
	InsertTitle bool   `toml:"insert_title"`
	Author      string `toml:"author"`
	Memo        bool   `toml:"memo"`
}

// Draft is the editable view of a page handed to the external editor. Links
// and timestamps are kept out of it so the editor cannot corrupt the chain.
type Draft struct {
	Header DraftHeader
	Text   string
}

// DraftOf copies the editable parts of p.
func DraftOf(p *Page) *Draft {
	return &Draft{
		Header: DraftHeader{
			Title:       p.Header.Title,
			InsertTitle: p.Header.InsertTitle,
			Author:      p.Header.Author,
			Memo:        p.Header.Memo,
		},
		Text: p.Text,
	}
}

// ParseDraft decodes an edited draft.
func ParseDraft(data []byte) (*Draft, error) {
	header, text, err := split(data)
	if err != nil {
		return nil, err
	}
	d := &Draft{Text: text}
	if _, err := toml.Decode(header, &d.Header); err != nil {
		return nil, fmt.Errorf("page: decode draft header: %w", err)
	}
	return d, nil
}

// Marshal encodes the draft in the same fenced form as a page.
func (d *Draft) Marshal() ([]byte, error) {
	return marshal(d.Header, d.Text)
}

// Apply copies the draft onto p.
func (d *Draft) Apply(p *Page) {
	p.Header.Title = d.Header.Title
	p.Header.InsertTitle = d.Header.InsertTitle
	p.Header.Author = d.Header.Author
	p.Header.Memo = d.Header.Memo
	p.Text = d.Text
}
