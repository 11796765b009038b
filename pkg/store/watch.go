package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventPageChanged indicates a page file was created or rewritten.
	EventPageChanged EventType = iota

	// EventPageRemoved indicates a page file was deleted or renamed away.
	EventPageRemoved

	// EventHeadChanged signals that HEAD moved, so the chain order itself
	// changed and callers should refresh their full view.
	EventHeadChanged
)

func (t EventType) String() string {
	switch t {
	case EventPageChanged:
		return "changed"
	case EventPageRemoved:
		return "removed"
	case EventHeadChanged:
		return "head"
	default:
		return "unknown"
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	ID   string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := ensureLayout(p.basePath); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	for _, dir := range []string{p.basePath, p.pagesPath()} {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		var (
			mu     sync.Mutex
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()
		defer closeWatcher()

		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next burst
				// carries the same information.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// An overflow or similar means changes were missed; a head
				// event makes clients reload everything.
				throttle.Enqueue(Event{Type: EventHeadChanged}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev, ok := p.classify(evt); ok {
					if ev.Type != EventHeadChanged {
						p.dropCache()
					}
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// classify maps a raw filesystem event onto a page or HEAD event. Drafts,
// temp files and editor backups are ignored.
func (p *persistence) classify(evt fsnotify.Event) (Event, bool) {
	name := filepath.Clean(evt.Name)
	if name == filepath.Join(p.basePath, HeadFile) {
		return Event{Type: EventHeadChanged}, true
	}
	if filepath.Dir(name) != filepath.Clean(p.pagesPath()) {
		return Event{}, false
	}
	base := filepath.Base(name)
	if !strings.HasSuffix(base, PageExtension) {
		return Event{}, false
	}
	id := strings.TrimSuffix(base, PageExtension)
	if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		return Event{Type: EventPageRemoved, ID: id}, true
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		return Event{Type: EventPageChanged, ID: id}, true
	}
	return Event{}, false
}

// eventThrottle coalesces rapid change notifications so consumers redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	order   []Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.pending[ev]; !seen {
		t.pending[ev] = struct{}{}
		t.order = append(t.order, ev)
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	order := t.order
	t.pending = make(map[Event]struct{})
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, ev := range order {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
