package page

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	data := `---
title = "A day at the beach"
insert_title = true
author = "shinsuke"
created = 2020-02-28T09:30:00Z
updated = [2020-02-28T10:00:00Z]
memo = false
prev = "2020-02-27"
next = "NULL"
---

Sand everywhere.
---
Still sand.
`
	p, err := Parse("2020-02-28", []byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Header{
		Title:       "A day at the beach",
		InsertTitle: true,
		Author:      "shinsuke",
		Created:     time.Date(2020, 2, 28, 9, 30, 0, 0, time.UTC),
		Updated:     []time.Time{time.Date(2020, 2, 28, 10, 0, 0, 0, time.UTC)},
		Prev:        "2020-02-27",
		Next:        NullID,
	}
	if diff := cmp.Diff(want, p.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if p.ID != "2020-02-28" {
		t.Fatalf("expected id 2020-02-28, got %q", p.ID)
	}
	if p.Text != "Sand everywhere.\n---\nStill sand." {
		t.Fatalf("unexpected text %q", p.Text)
	}
}

func TestParseDefaultsLinks(t *testing.T) {
	p, err := Parse("x", []byte("---\ntitle = \"x\"\n---\nbody"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Header.Prev != NullID || p.Header.Next != NullID {
		t.Fatalf("expected NULL links, got prev=%q next=%q", p.Header.Prev, p.Header.Next)
	}
}

func TestParseTitleContainingFence(t *testing.T) {
	p, err := Parse("x", []byte("---\ntitle = \"before --- after\"\n---\nbody\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Header.Title != "before --- after" {
		t.Fatalf("unexpected title %q", p.Header.Title)
	}
}

func TestParseCRLF(t *testing.T) {
	p, err := Parse("x", []byte("---\r\ntitle = \"x\"\r\nmemo = true\r\n---\r\nline one\r\nline two\r\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !p.Header.Memo {
		t.Fatalf("expected memo page")
	}
	if p.Text != "line one\nline two" {
		t.Fatalf("unexpected text %q", p.Text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no fences":    "just some text",
		"one fence":    "---\ntitle = \"x\"\n",
		"bad toml":     "---\ntitle = \n---\n",
		"wrong types":  "---\nmemo = \"yes\"\n---\n",
		"padded fence": "---\ntitle = \"x\"\n --- \n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse("x", []byte(data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Parse("x", []byte("nothing")); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestMarshalParse(t *testing.T) {
	now := time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC)
	p := New("2021-07-01", "me", now)
	p.Header.Prev = "2021-06-30"
	p.Text = "Hello.\n\nSecond paragraph."
	p.Touch(now.Add(time.Hour))

	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Fatalf("expected leading fence, got %q", data)
	}

	got, err := Parse(p.ID, data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	p := New("memo", "me", time.Date(2021, 7, 1, 12, 0, 0, 500, time.UTC))
	if !p.IsHead() || !p.IsTail() {
		t.Fatalf("expected unlinked page, got prev=%q next=%q", p.Header.Prev, p.Header.Next)
	}
	if p.Header.Title != "memo" || !p.Header.InsertTitle {
		t.Fatalf("unexpected title settings %+v", p.Header)
	}
	if p.Header.Created.Nanosecond() != 0 {
		t.Fatalf("expected created truncated to seconds, got %v", p.Header.Created)
	}
	if !p.LastUpdated().Equal(p.Header.Created) {
		t.Fatalf("expected LastUpdated to fall back to created")
	}
}

func TestBody(t *testing.T) {
	p := &Page{Header: Header{Title: "Trip", InsertTitle: true}, Text: "We left early."}
	if got := p.Body(); got != "# Trip\n\nWe left early." {
		t.Fatalf("unexpected body %q", got)
	}
	p.Header.InsertTitle = false
	if got := p.Body(); got != "We left early." {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	p := New("2021-07-01", "me", time.Now())
	p.Header.Prev = "2021-06-30"
	p.Text = "original"

	data, err := DraftOf(p).Marshal()
	if err != nil {
		t.Fatalf("marshal draft: %v", err)
	}
	for _, field := range []string{"prev", "next", "created", "updated"} {
		if strings.Contains(string(data), field+" =") {
			t.Fatalf("draft should not expose %s:\n%s", field, data)
		}
	}

	edited := strings.Replace(string(data), "original", "rewritten", 1)
	edited = strings.Replace(edited, "memo = false", "memo = true", 1)
	d, err := ParseDraft([]byte(edited))
	if err != nil {
		t.Fatalf("parse draft: %v", err)
	}
	d.Apply(p)

	if p.Text != "rewritten" || !p.Header.Memo {
		t.Fatalf("draft not applied: %+v", p)
	}
	if p.Header.Prev != "2021-06-30" || p.Header.Next != NullID {
		t.Fatalf("links changed by draft: prev=%q next=%q", p.Header.Prev, p.Header.Next)
	}
}
