// Package page reads and writes diary page files.
//
// A page file is a TOML header fenced by "---" lines followed by free-form
// body text:
//
//	---
//	title = "2020-02-28"
//	insert_title = true
//	...
//	---
//	body text
package page

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// NullID terminates the chain in both directions.
const NullID = "NULL"

const delimiter = "---"

// ErrMalformed is returned when the header fences cannot be found.
var ErrMalformed = errors.New("page: header or text does not exist")

// Header is the metadata stored at the top of every page file.
type Header struct {
	Title       string      `toml:"title"`
	InsertTitle bool        `toml:"insert_title"`
	Author      string      `toml:"author"`
	Created     time.Time   `toml:"created"`
	Updated     []time.Time `toml:"updated"`
	Memo        bool        `toml:"memo"`
	Prev        string      `toml:"prev"`
	Next        string      `toml:"next"`
}

// Page is a single diary entry. ID is the file stem and is not stored in the
// header.
type Page struct {
	ID     string
	Header Header
	Text   string
}

// New returns an unlinked page created at now.
func New(id, author string, now time.Time) *Page {
	return &Page{
		ID: id,
		Header: Header{
			Title:       id,
			InsertTitle: true,
			Author:      author,
			Created:     now.UTC().Truncate(time.Second),
			Updated:     []time.Time{},
			Prev:        NullID,
			Next:        NullID,
		},
	}
}

// Parse decodes the contents of the page file for id.
func Parse(id string, data []byte) (*Page, error) {
	header, text, err := split(data)
	if err != nil {
		return nil, fmt.Errorf("%w (page %q)", err, id)
	}
	p := &Page{ID: id}
	if _, err := toml.Decode(header, &p.Header); err != nil {
		return nil, fmt.Errorf("page: decode header of %q: %w", id, err)
	}
	if p.Header.Prev == "" {
		p.Header.Prev = NullID
	}
	if p.Header.Next == "" {
		p.Header.Next = NullID
	}
	p.Text = text
	return p, nil
}

// Marshal encodes the page in its on-disk form.
func (p *Page) Marshal() ([]byte, error) {
	return marshal(p.Header, p.Text)
}

// Touch records an edit at now.
func (p *Page) Touch(now time.Time) {
	p.Header.Updated = append(p.Header.Updated, now.UTC().Truncate(time.Second))
}

// LastUpdated returns the most recent edit time, or the creation time when
// the page was never edited.
func (p *Page) LastUpdated() time.Time {
	if n := len(p.Header.Updated); n > 0 {
		return p.Header.Updated[n-1]
	}
	return p.Header.Created
}

// IsHead reports whether nothing follows p in the chain.
func (p *Page) IsHead() bool {
	return p.Header.Next == NullID
}

// IsTail reports whether nothing precedes p in the chain.
func (p *Page) IsTail() bool {
	return p.Header.Prev == NullID
}

// Body returns the text as it should be displayed, with the title heading
// when the header asks for one.
func (p *Page) Body() string {
	if !p.Header.InsertTitle {
		return p.Text
	}
	if p.Text == "" {
		return "# " + p.Header.Title + "\n"
	}
	return "# " + p.Header.Title + "\n\n" + p.Text
}

func marshal(header interface{}, text string) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(delimiter + "\n")
	if err := toml.NewEncoder(&b).Encode(header); err != nil {
		return nil, fmt.Errorf("page: encode header: %w", err)
	}
	b.WriteString(delimiter + "\n")
	if text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.Bytes(), nil
}

// split finds the first two lines that are exactly "---" and returns the
// header between them and the trimmed text after them. Anything before the
// opening fence is ignored.
func split(data []byte) (string, string, error) {
	s := strings.TrimPrefix(string(data), "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.SplitAfter(s, "\n")

	open, closing := -1, -1
	for i, line := range lines {
		if strings.TrimSuffix(line, "\n") != delimiter {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		closing = i
		break
	}
	if open < 0 || closing < 0 {
		return "", "", ErrMalformed
	}

	header := strings.Join(lines[open+1:closing], "")
	text := strings.TrimSpace(strings.Join(lines[closing+1:], ""))
	return header, text, nil
}
