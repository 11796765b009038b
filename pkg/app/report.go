package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/diary/pkg/page"
)

// ProblemKind classifies an inconsistency found by Check.
type ProblemKind string

const (
	// ProblemHeadNext means the page HEAD points at has a next link.
	ProblemHeadNext ProblemKind = "head-next"
	// ProblemBrokenNext means a next link disagrees with the page that links
	// to it through prev.
	ProblemBrokenNext ProblemKind = "broken-next"
	// ProblemMissing means HEAD or a prev link names a page that does not exist.
	ProblemMissing ProblemKind = "missing"
	// ProblemUnreadable means a page in the chain could not be parsed.
	ProblemUnreadable ProblemKind = "unreadable"
	// ProblemCycle means following prev links revisits a page.
	ProblemCycle ProblemKind = "cycle"
	// ProblemOrphan means a page file is not reachable from HEAD.
	ProblemOrphan ProblemKind = "orphan"
)

// Problem is a single chain inconsistency.
type Problem struct {
	Kind   ProblemKind `json:"kind"`
	ID     string      `json:"id"`
	Detail string      `json:"detail"`
}

// CheckReport summarises the state of the chain.
type CheckReport struct {
	Head      string    `json:"head"`
	Reachable int       `json:"reachable"`
	Pages     int       `json:"pages"`
	Problems  []Problem `json:"problems"`
}

// OK reports whether no problems were found.
func (r *CheckReport) OK() bool {
	return len(r.Problems) == 0
}

// Check walks the chain like Walk but keeps going past inconsistencies and
// collects them instead. Nothing is modified.
func (s *Service) Check(ctx context.Context) (*CheckReport, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	head, err := s.Persistence.Head()
	if err != nil {
		return nil, err
	}
	report := &CheckReport{Head: head, Problems: make([]Problem, 0)}
	add := func(kind ProblemKind, id, format string, args ...interface{}) {
		report.Problems = append(report.Problems, Problem{Kind: kind, ID: id, Detail: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]struct{})
	newer := page.NullID
	for id := head; id != page.NullID; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			add(ProblemCycle, id, "reached %q again from %q", id, newer)
			break
		}
		seen[id] = struct{}{}

		referrer := "HEAD"
		if newer != page.NullID {
			referrer = newer
		}
		p, err := s.Persistence.Read(id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				add(ProblemMissing, id, "referenced by %s but does not exist", referrer)
			} else {
				add(ProblemUnreadable, id, "%v", err)
			}
			break
		}
		report.Reachable++

		if p.Header.Next != newer {
			if newer == page.NullID {
				add(ProblemHeadNext, id, "head page has next %q", p.Header.Next)
			} else {
				add(ProblemBrokenNext, id, "next is %q, expected %q", p.Header.Next, newer)
			}
		}
		newer = id
		id = p.Header.Prev
	}

	ids := s.Persistence.IDs(ctx)
	report.Pages = len(ids)
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			add(ProblemOrphan, id, "not reachable from HEAD")
		}
	}
	return report, nil
}
