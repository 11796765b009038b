package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/diary/pkg/page"
)

const (
	// PagesDir holds one file per page.
	PagesDir = "pages"
	// PageExtension is appended to the id to name a page file.
	PageExtension = ".page"
	// HeadFile holds the id of the newest page.
	HeadFile = "HEAD"
	// DraftFile is the scratch file handed to the editor.
	DraftFile = "EDIT_PAGE"

	tempDir = ".tmp"
)

// ErrNotFound is returned when a page file does not exist.
var ErrNotFound = errors.New("store: page not found")

// Persistence defines the persistence contract for diary pages.
type Persistence interface {
	BasePath() string

	Head() (string, error)
	SetHead(id string) error

	Has(id string) bool
	Read(id string) (*page.Page, error)
	Write(p *page.Page) error
	Delete(id string) error
	IDs(ctx context.Context) []string

	WriteDraft(data []byte) (string, error)
	ReadDraft() ([]byte, error)
	ClearDraft() error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig("")
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	tmp := filepath.Join(basePath, tempDir)
	return &persistence{
		pages: newPageStore(basePath),
		// HEAD and the draft change behind our back, never cache them.
		meta: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  tmp,
		}),
		basePath: basePath,
	}, nil
}

type persistence struct {
	mu       sync.RWMutex
	pages    *diskv.Diskv
	meta     *diskv.Diskv
	basePath string
}

func newPageStore(basePath string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:          filepath.Join(basePath, PagesDir),
		AdvancedTransform: idToPathKey,
		InverseTransform:  pathKeyToID,
		CacheSizeMax:      1024 * 1024, // 1MB
		TempDir:           filepath.Join(basePath, tempDir),
	})
}

func (p *persistence) pageStore() *diskv.Diskv {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pages
}

// dropCache discards cached page contents after files changed on disk
// without going through this persistence.
func (p *persistence) dropCache() {
	p.mu.Lock()
	p.pages = newPageStore(p.basePath)
	p.mu.Unlock()
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) Head() (string, error) {
	val, err := p.meta.Read(HeadFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return page.NullID, nil
		}
		return "", fmt.Errorf("store: read %s: %w", HeadFile, err)
	}
	id := strings.TrimSpace(string(val))
	if id == "" {
		return page.NullID, nil
	}
	return id, nil
}

func (p *persistence) SetHead(id string) error {
	if err := p.meta.WriteString(HeadFile, id); err != nil {
		return fmt.Errorf("store: write %s: %w", HeadFile, err)
	}
	return nil
}

func (p *persistence) Has(id string) bool {
	if page.ValidateID(id) != nil {
		return false
	}
	return p.pageStore().Has(id)
}

func (p *persistence) Read(id string) (*page.Page, error) {
	if err := page.ValidateID(id); err != nil {
		return nil, err
	}
	val, err := p.pageStore().Read(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("store: read page %q: %w", id, err)
	}
	return page.Parse(id, val)
}

func (p *persistence) Write(pg *page.Page) error {
	if err := page.ValidateID(pg.ID); err != nil {
		return err
	}
	data, err := pg.Marshal()
	if err != nil {
		return err
	}
	if err := p.pageStore().Write(pg.ID, data); err != nil {
		return fmt.Errorf("store: write page %q: %w", pg.ID, err)
	}
	return nil
}

func (p *persistence) Delete(id string) error {
	if err := page.ValidateID(id); err != nil {
		return err
	}
	if err := p.pageStore().Erase(id); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return fmt.Errorf("store: delete page %q: %w", id, err)
	}
	return nil
}

// IDs lists every page file in sorted order, whether or not it is reachable
// from HEAD.
func (p *persistence) IDs(ctx context.Context) []string {
	ids := make([]string, 0)
	for key := range p.pageStore().Keys(ctx.Done()) {
		if key == "" {
			continue
		}
		ids = append(ids, key)
	}
	sort.Strings(ids)
	return ids
}

func (p *persistence) WriteDraft(data []byte) (string, error) {
	if err := p.meta.Write(DraftFile, data); err != nil {
		return "", fmt.Errorf("store: write draft: %w", err)
	}
	return p.draftPath(), nil
}

func (p *persistence) ReadDraft() ([]byte, error) {
	val, err := p.meta.Read(DraftFile)
	if err != nil {
		return nil, fmt.Errorf("store: read draft %s: %w", p.draftPath(), err)
	}
	return val, nil
}

func (p *persistence) ClearDraft() error {
	if err := p.meta.Erase(DraftFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: remove draft: %w", err)
	}
	return nil
}

func (p *persistence) draftPath() string {
	return filepath.Join(p.basePath, DraftFile)
}

func (p *persistence) pagesPath() string {
	return filepath.Join(p.basePath, PagesDir)
}

// idToPathKey stores page "x" as pages/x.page.
func idToPathKey(id string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: id + PageExtension,
	}
}

// pathKeyToID maps a file back to its id; anything that is not a top-level
// .page file maps to "" and is skipped.
func pathKeyToID(pk *diskv.PathKey) string {
	if len(pk.Path) > 0 {
		return ""
	}
	if !strings.HasSuffix(pk.FileName, PageExtension) {
		return ""
	}
	return strings.TrimSuffix(pk.FileName, PageExtension)
}

// ensureLayout creates the directory skeleton for a fresh diary.
func ensureLayout(basePath string) error {
	if err := os.MkdirAll(filepath.Join(basePath, PagesDir), 0o755); err != nil {
		return fmt.Errorf("store: ensure layout: %w", err)
	}
	return nil
}

// Init creates the diary directory, the pages directory and a HEAD file
// pointing at NULL when none exists yet.
func Init(p Persistence) error {
	if err := ensureLayout(p.BasePath()); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(p.BasePath(), HeadFile)); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: stat %s: %w", HeadFile, err)
	}
	return p.SetHead(page.NullID)
}
