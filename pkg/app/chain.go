package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/page"
)

// Resolve maps a user supplied id or pattern to an existing page id. An exact
// id wins; otherwise the pattern is matched as a regular expression against
// every page id and the last match in sorted order is used.
func (s *Service) Resolve(ctx context.Context, pattern string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if s.Persistence.Has(pattern) {
		return pattern, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("app: %q is neither a page nor a valid pattern: %w", pattern, err)
	}
	match := ""
	for _, id := range s.Persistence.IDs(ctx) {
		if re.MatchString(id) {
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: nothing matches %q", ErrNotFound, pattern)
	}
	return match, nil
}

// neighbours loads the pages linked from p. Either result is nil when the link
// is NULL or points at a page that no longer exists.
func (s *Service) neighbours(p *page.Page) (prev, next *page.Page, err error) {
	if prev, err = s.neighbour(p, p.Header.Prev); err != nil {
		return nil, nil, fmt.Errorf("app: read prev of %q: %w", p.ID, err)
	}
	if next, err = s.neighbour(p, p.Header.Next); err != nil {
		return nil, nil, fmt.Errorf("app: read next of %q: %w", p.ID, err)
	}
	return prev, next, nil
}

func (s *Service) neighbour(p *page.Page, id string) (*page.Page, error) {
	if id == page.NullID || id == p.ID {
		return nil, nil
	}
	n, err := s.Persistence.Read(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return n, err
}

// idOf is the id of p, or NULL for a nil page.
func idOf(p *page.Page) string {
	if p == nil {
		return page.NullID
	}
	return p.ID
}

// Rename moves a page to a new id and rewrites the links that point at it.
func (s *Service) Rename(ctx context.Context, oldID, newID string) (*page.Page, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := page.ValidateID(newID); err != nil {
		return nil, err
	}
	if oldID == newID {
		return nil, fmt.Errorf("app: %q is already named %q", oldID, newID)
	}
	if !s.Persistence.Has(oldID) {
		return nil, fmt.Errorf("%w: `%s` does not exist", ErrNotFound, oldID)
	}
	if s.Persistence.Has(newID) {
		return nil, fmt.Errorf("%w: `%s`", ErrExists, newID)
	}

	p, err := s.Persistence.Read(oldID)
	if err != nil {
		return nil, err
	}
	prev, next, err := s.neighbours(p)
	if err != nil {
		return nil, err
	}
	head, err := s.Persistence.Head()
	if err != nil {
		return nil, err
	}

	p.ID = newID
	if err := s.Persistence.Write(p); err != nil {
		return nil, err
	}
	// Only neighbours that link back are rewritten; orphans point into the
	// chain without being part of it.
	if prev != nil && prev.Header.Next == oldID {
		prev.Header.Next = newID
		if err := s.Persistence.Write(prev); err != nil {
			return nil, err
		}
	}
	if next != nil && next.Header.Prev == oldID {
		next.Header.Prev = newID
		if err := s.Persistence.Write(next); err != nil {
			return nil, err
		}
	}
	if head == oldID {
		if err := s.Persistence.SetHead(newID); err != nil {
			return nil, err
		}
	}
	if err := s.Persistence.Delete(oldID); err != nil {
		return nil, err
	}

	s.log().Debug("renamed page",
		zap.String("from", oldID),
		zap.String("to", newID),
		zap.Bool("head", head == oldID))
	return p, nil
}

// Remove splices a page out of the chain and deletes its file.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.Persistence.Read(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: `%s` does not exist", ErrNotFound, id)
		}
		return err
	}
	prev, next, err := s.neighbours(p)
	if err != nil {
		return err
	}
	head, err := s.Persistence.Head()
	if err != nil {
		return err
	}

	if prev != nil && prev.Header.Next == id {
		prev.Header.Next = idOf(next)
		if err := s.Persistence.Write(prev); err != nil {
			return err
		}
	}
	if next != nil && next.Header.Prev == id {
		next.Header.Prev = idOf(prev)
		if err := s.Persistence.Write(next); err != nil {
			return err
		}
	}
	if head == id {
		if err := s.Persistence.SetHead(idOf(prev)); err != nil {
			return err
		}
	}
	if err := s.Persistence.Delete(id); err != nil {
		return err
	}

	s.log().Debug("removed page",
		zap.String("id", id),
		zap.String("prev", p.Header.Prev),
		zap.String("next", p.Header.Next))
	return nil
}
