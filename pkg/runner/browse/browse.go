// Package browse is a terminal browser for the page chain: a list of pages on
// the left, the rendered page on the right.
package browse

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/page"
	"tableflip.dev/diary/pkg/store"
)

// Browse runs the interactive browser until the user quits.
type Browse struct {
	Service *app.Service
}

func (n *Browse) Do(ctx context.Context) error {
	p := tea.NewProgram(New(ctx, n.Service), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

const (
	focusList = iota
	focusPage
)

var (
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	activeStyle = paneStyle.BorderForeground(lipgloss.Color("220"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type pageItem struct{ p *page.Page }

func (it pageItem) Title() string {
	if it.p.Header.Memo {
		return "* " + it.p.Header.Title
	}
	return it.p.Header.Title
}

func (it pageItem) Description() string {
	return it.p.ID + "  " + it.p.Header.Created.Local().Format("2006-01-02 15:04")
}

func (it pageItem) FilterValue() string { return it.p.ID + " " + it.p.Header.Title }

// Model is the bubbletea model behind Browse.
type Model struct {
	ctx context.Context
	svc *app.Service

	list list.Model
	view viewport.Model

	focus    int
	width    int
	height   int
	shown    string
	status   string
	err      error
	renderer *glamour.TermRenderer
	wrap     int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New returns a browser over svc's chain.
func New(ctx context.Context, svc *app.Service) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "diary"
	l.SetShowHelp(false)
	return &Model{
		ctx:  ctx,
		svc:  svc,
		list: l,
		view: viewport.New(0, 0),
	}
}

type pagesLoadedMsg struct {
	pages []*page.Page
	err   error
}

type editedMsg struct {
	id  string
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadPages(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) loadPages() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		pages, err := svc.List(ctx, app.ListOptions{})
		return pagesLoadedMsg{pages: pages, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.applySizes()
		m.shown = ""
		m.showSelected()
		return m, nil
	case pagesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.err = nil
		items := make([]list.Item, 0, len(msg.pages))
		for _, p := range msg.pages {
			items = append(items, pageItem{p: p})
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.status = fmt.Sprintf("%d pages", len(items))
		m.shown = ""
		m.showSelected()
	case editedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.err = nil
		m.status = "saved " + msg.id
		cmds = append(cmds, m.loadPages())
	case watchStartedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadPages())
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.stopWatch()
			return m, tea.Quit
		case "tab":
			if m.focus == focusList {
				m.focus = focusPage
			} else {
				m.focus = focusList
			}
			return m, nil
		case "e":
			if it, ok := m.list.SelectedItem().(pageItem); ok {
				return m, m.edit(it.p.ID, false)
			}
			return m, nil
		case "t":
			return m, m.edit("", true)
		case "r":
			return m, m.loadPages()
		}
	}

	var cmd tea.Cmd
	if m.focus == focusPage {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.view, cmd = m.view.Update(msg)
			return m, tea.Batch(append(cmds, cmd)...)
		}
	}
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.showSelected()
	return m, tea.Batch(cmds...)
}

func (m *Model) applySizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	frameX, frameY := paneStyle.GetFrameSize()
	left := m.width / 3
	if left < 24 {
		left = 24
	}
	right := m.width - left
	inner := m.height - 1 - frameY
	if inner < 1 {
		inner = 1
	}
	m.list.SetSize(max(left-frameX, 1), inner)
	m.view.Width = max(right-frameX, 1)
	m.view.Height = inner
}

func (m *Model) showSelected() {
	it, ok := m.list.SelectedItem().(pageItem)
	if !ok {
		m.shown = ""
		m.view.SetContent("")
		return
	}
	if it.p.ID == m.shown {
		return
	}
	m.shown = it.p.ID
	m.view.SetContent(m.render(it.p))
	m.view.GotoTop()
}

func (m *Model) render(p *page.Page) string {
	wrap := max(m.view.Width-2, 10)
	if m.renderer == nil || m.wrap != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return p.Body()
		}
		m.renderer, m.wrap = r, wrap
	}
	out, err := m.renderer.Render(p.Body())
	if err != nil {
		return p.Body()
	}
	return out
}

func (m *Model) View() string {
	left, right := paneStyle, paneStyle
	if m.focus == focusList {
		left = activeStyle
	} else {
		right = activeStyle
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.list.View()),
		right.Render(m.view.View()),
	)

	status := statusStyle.Render(m.status + "  e edit  t today  tab focus  / filter  q quit")
	if m.err != nil {
		status = errorStyle.Render("ERR: " + m.err.Error())
	}
	return strings.Join([]string{body, status}, "\n")
}

// edit suspends the program and runs the editor through the service.
func (m *Model) edit(id string, today bool) tea.Cmd {
	c := &editExec{ctx: m.ctx, svc: m.svc, id: id, today: today}
	return tea.Exec(c, func(err error) tea.Msg {
		return editedMsg{id: c.id, err: err}
	})
}

// editExec adapts a service edit to tea.ExecCommand so the editor gets the
// terminal while bubbletea is paused.
type editExec struct {
	ctx   context.Context
	svc   *app.Service
	id    string
	today bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (e *editExec) SetStdin(r io.Reader)  { e.stdin = r }
func (e *editExec) SetStdout(w io.Writer) { e.stdout = w }
func (e *editExec) SetStderr(w io.Writer) { e.stderr = w }

func (e *editExec) Run() error {
	svc := *e.svc
	if c, ok := svc.Editor.(*editor.Command); ok {
		cp := *c
		cp.Stdin, cp.Stdout, cp.Stderr = e.stdin, e.stdout, e.stderr
		svc.Editor = &cp
	}
	var (
		p   *page.Page
		err error
	)
	if e.today {
		p, err = svc.Today(e.ctx)
	} else {
		p, err = svc.Edit(e.ctx, e.id)
	}
	if err != nil {
		return err
	}
	e.id = p.ID
	return nil
}
