package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tableflip.dev/diary/pkg/page"
)

// Query describes a scan over every page in the chain.
type Query struct {
	Text       string
	Regex      bool
	IgnoreCase bool
	// Titles also matches against page titles.
	Titles bool
}

// Hit is a page that matched a Query together with the first matching line.
type Hit struct {
	Page *page.Page
	Line string
}

func (q Query) compile() (*regexp.Regexp, error) {
	if q.Text == "" {
		return nil, errors.New("app: empty search query")
	}
	expr := q.Text
	if !q.Regex {
		expr = regexp.QuoteMeta(expr)
	}
	if q.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("app: invalid search pattern %q: %w", q.Text, err)
	}
	return re, nil
}

// Search walks the chain from HEAD and returns every matching page in chain
// order.
func (s *Service) Search(ctx context.Context, q Query) ([]Hit, error) {
	re, err := q.compile()
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0)
	err = s.Walk(ctx, func(p *page.Page) error {
		if line, ok := firstMatch(re, p.Text); ok {
			hits = append(hits, Hit{Page: p, Line: line})
			return nil
		}
		if q.Titles && re.MatchString(p.Header.Title) {
			hits = append(hits, Hit{Page: p, Line: p.Header.Title})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func firstMatch(re *regexp.Regexp, text string) (string, bool) {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	start := strings.LastIndexByte(text[:loc[0]], '\n') + 1
	end := len(text)
	if i := strings.IndexByte(text[loc[0]:], '\n'); i >= 0 {
		end = loc[0] + i
	}
	return strings.TrimSpace(text[start:end]), true
}
