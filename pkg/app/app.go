// Package app maintains the page chain. Every mutation keeps prev, next and
// HEAD consistent so the CLI and the browser can share the same logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/page"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

// Service provides high-level operations over the chain of pages.
type Service struct {
	Persistence store.Persistence
	Editor      editor.Editor
	Author      string
	Now         func() time.Time
	Logger      *zap.Logger
}

var (
	// ErrExists is returned when creating or renaming onto an existing id.
	ErrExists = errors.New("app: page already exists")
	// ErrNotFound is returned when a page does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrCycle is returned when following prev links revisits a page.
	ErrCycle = errors.New("app: chain contains a cycle")
	// ErrStopWalk can be returned from a Walk callback to end the walk early
	// without an error.
	ErrStopWalk = errors.New("app: stop walk")
)

func (s *Service) ready() error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Persistence.Watch(ctx)
}

// Walk visits pages from HEAD towards the oldest page.
func (s *Service) Walk(ctx context.Context, fn func(*page.Page) error) error {
	if err := s.ready(); err != nil {
		return err
	}
	head, err := s.Persistence.Head()
	if err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for id := head; id != page.NullID; {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w at %q", ErrCycle, id)
		}
		seen[id] = struct{}{}

		p, err := s.Persistence.Read(id)
		if err != nil {
			return fmt.Errorf("app: walk chain: %w", err)
		}
		if err := fn(p); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
		id = p.Header.Prev
	}
	return nil
}

// ListOptions selects a window of the chain, newest first.
type ListOptions struct {
	Skip   int
	Count  int // <= 0 means no limit
	Since  time.Time
	// Within sets Since relative to now when Since is zero.
	Within time.Duration
}

// List returns up to Count pages after skipping Skip, newest first. With
// Since set, only pages created at or after it are considered.
func (s *Service) List(ctx context.Context, o ListOptions) ([]*page.Page, error) {
	if o.Since.IsZero() && o.Within > 0 {
		o.Since = s.now().Add(-o.Within)
	}
	pages := make([]*page.Page, 0)
	i := 0
	err := s.Walk(ctx, func(p *page.Page) error {
		if !o.Since.IsZero() && p.Header.Created.Before(o.Since) {
			return nil
		}
		if i >= o.Skip {
			pages = append(pages, p)
		}
		i++
		if o.Count > 0 && len(pages) >= o.Count {
			return ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// Get reads a single page.
func (s *Service) Get(_ context.Context, id string) (*page.Page, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Persistence.Read(id)
}

// CreateOptions tweaks the initial header of a new page.
type CreateOptions struct {
	Memo  bool
	Title string
}

// Create opens a new page in the editor and, once the edit succeeds, links it
// in front of the current head.
func (s *Service) Create(ctx context.Context, id string, o CreateOptions) (*page.Page, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := page.ValidateID(id); err != nil {
		return nil, err
	}
	if s.Persistence.Has(id) {
		return nil, fmt.Errorf("%w: `%s`, use `diary edit %s`", ErrExists, id, id)
	}

	head, err := s.Persistence.Head()
	if err != nil {
		return nil, err
	}
	var headPage *page.Page
	if head != page.NullID {
		if headPage, err = s.Persistence.Read(head); err != nil {
			return nil, fmt.Errorf("app: read head page: %w", err)
		}
	}

	p := page.New(id, s.Author, s.now())
	p.Header.Memo = o.Memo
	if o.Title != "" {
		p.Header.Title = o.Title
	}
	p.Header.Prev = head

	if err := s.editDraft(ctx, p); err != nil {
		return nil, err
	}

	if err := s.Persistence.Write(p); err != nil {
		return nil, err
	}
	if headPage != nil {
		headPage.Header.Next = id
		if err := s.Persistence.Write(headPage); err != nil {
			return nil, err
		}
	}
	if err := s.Persistence.SetHead(id); err != nil {
		return nil, err
	}

	s.log().Debug("created page",
		zap.String("id", id),
		zap.String("prev", head),
		zap.Bool("memo", p.Header.Memo))
	return p, nil
}

// Edit round-trips an existing page through the editor. Links are untouched.
func (s *Service) Edit(ctx context.Context, id string) (*page.Page, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !s.Persistence.Has(id) {
		return nil, fmt.Errorf("%w: `%s` does not exist, use `diary new %s`", ErrNotFound, id, id)
	}
	p, err := s.Persistence.Read(id)
	if err != nil {
		return nil, err
	}
	if err := s.editDraft(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Persistence.Write(p); err != nil {
		return nil, err
	}

	s.log().Debug("edited page", zap.String("id", id), zap.Int("edits", len(p.Header.Updated)))
	return p, nil
}

// Day resolves --on/--ago style input to a page id. With neither set it is
// today's id.
func (s *Service) Day(on, ago string) (string, error) {
	return timeutil.ResolveDay(on, ago, s.now())
}

// Today edits today's page, creating it first when it does not exist yet.
func (s *Service) Today(ctx context.Context) (*page.Page, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	id := timeutil.DayID(s.now())
	if s.Persistence.Has(id) {
		return s.Edit(ctx, id)
	}
	return s.Create(ctx, id, CreateOptions{})
}

// editDraft hands the editable part of p to the editor and applies the
// result. A draft that fails to parse is left on disk so the text survives.
func (s *Service) editDraft(ctx context.Context, p *page.Page) error {
	if s.Editor == nil {
		return errors.New("app: no editor configured")
	}

	data, err := page.DraftOf(p).Marshal()
	if err != nil {
		return err
	}
	path, err := s.Persistence.WriteDraft(data)
	if err != nil {
		return err
	}

	if err := s.Editor.Edit(ctx, path); err != nil {
		_ = s.Persistence.ClearDraft()
		return err
	}

	edited, err := s.Persistence.ReadDraft()
	if err != nil {
		return err
	}
	d, err := page.ParseDraft(edited)
	if err != nil {
		return fmt.Errorf("app: %w; your edit is kept in %s", err, path)
	}
	d.Apply(p)
	p.Touch(s.now())

	return s.Persistence.ClearDraft()
}
