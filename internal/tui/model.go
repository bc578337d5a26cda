// Package tui is the terminal browser of the brandbook. It renders the same
// shell view as the web server and keeps the interactive state in Go: theme
// and clock preferences, expanded sidebar groups, copy confirmations and the
// glitch field behind immersive heroes.
package tui

import (
	"context"
	"io/fs"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"finoverse.com/brandbook/internal/clipboard"
	"finoverse.com/brandbook/internal/clock"
	"finoverse.com/brandbook/internal/glitch"
	"finoverse.com/brandbook/internal/index"
	"finoverse.com/brandbook/internal/nav"
	"finoverse.com/brandbook/internal/prefs"
	"finoverse.com/brandbook/internal/shell"
)

const (
	sidebarWidth  = 30
	heroRows      = 8
	defaultWidth  = 100
	defaultHeight = 32
	copyTimeout   = 5 * time.Second
)

// Options configures a Model.
type Options struct {
	// Prefs holds theme and clock mode; nil keeps them in memory.
	Prefs *prefs.State
	// Clipboard receives copies; nil uses clipboard.System.
	Clipboard clipboard.Writer
	// Assets is the public asset tree logo sources are read from.
	Assets fs.FS
	// Clock schedules copy confirmations; nil uses the real clock.
	Clock clipboard.Clock
	// Now is the wall clock of the header; nil uses time.Now.
	Now func() time.Time
	// Start is the initial route; unknown routes open the default page.
	Start string
}

type focus int

const (
	focusSidebar focus = iota
	focusContent
)

type navRow struct {
	item        nav.RenderedItem
	group       string
	child       bool
	hasChildren bool
	expanded    bool
}

type (
	tickMsg      time.Time
	frameMsg     glitch.Frame
	copyStateMsg struct{}
	copyDoneMsg  struct {
		key string
		ok  bool
	}
)

// Model is the bubbletea model of the browser. Close must be called when the
// program exits so the animator and copy timers stop.
type Model struct {
	shell     *shell.Shell
	prefs     *prefs.State
	assets    fs.FS
	now       func() time.Time
	overrides nav.Overrides

	view     shell.View
	st       styles
	rows     []navRow
	cursor   int
	focus    focus
	offset   int
	width    int
	height   int
	targets  []Target
	selected int
	copies   map[CopyKind]*clipboard.Feedback

	animator *glitch.Animator
	frame    glitch.Frame
	gridCols atomic.Int32
	events   chan tea.Msg
	done     chan struct{}
	closed   bool
}

// New opens the browser on opts.Start.
func New(sh *shell.Shell, opts Options) *Model {
	m := &Model{
		shell:     sh,
		prefs:     opts.Prefs,
		assets:    opts.Assets,
		now:       opts.Now,
		overrides: nav.Overrides{},
		width:     defaultWidth,
		height:    defaultHeight,
		events:    make(chan tea.Msg, 16),
		done:      make(chan struct{}),
	}
	if m.prefs == nil {
		m.prefs = prefs.Load(&prefs.Memory{})
	}
	if m.now == nil {
		m.now = time.Now
	}
	w := opts.Clipboard
	if w == nil {
		w = clipboard.System()
	}
	m.copies = map[CopyKind]*clipboard.Feedback{}
	for _, k := range []CopyKind{CopyButton, CopyColor, CopySource} {
		fb := clipboard.NewFeedback(w, k.Delay())
		fb.Clock = opts.Clock
		fb.Notify = m.notify
		m.copies[k] = fb
	}
	m.st = newStyles(m.prefs.Theme())
	m.resizeGrid()
	l, _ := sh.ResolvePath(opts.Start)
	m.show(l)
	return m
}

// Path is the route currently shown.
func (m *Model) Path() string { return m.view.Path }

// Page returns the view model of the current page.
func (m *Model) Page() shell.View { return m.view }

// Offset is the scroll position of the content pane.
func (m *Model) Offset() int { return m.offset }

// Targets lists the copyable values of the current page.
func (m *Model) Targets() []Target { return m.targets }

// Selected returns the highlighted copy target.
func (m *Model) Selected() (Target, bool) {
	if len(m.targets) == 0 {
		return Target{}, false
	}
	return m.targets[m.selected], true
}

// IsCopied reports whether the target with key shows its confirmation.
func (m *Model) IsCopied(key string) bool {
	for _, fb := range m.copies {
		if fb.IsCopied(key) {
			return true
		}
	}
	return false
}

// Animating reports whether the glitch field is running.
func (m *Model) Animating() bool { return m.animator != nil && m.animator.Running() }

// Close stops the animator and every pending confirmation timer.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.stopAnimator()
	for _, fb := range m.copies {
		fb.Stop()
	}
	close(m.done)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.wait())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// wait delivers the next message produced outside the update loop: glitch
// frames and copy confirmation changes.
func (m *Model) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.done:
			return nil
		default:
		}
		select {
		case msg := <-m.events:
			return msg
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) send(msg tea.Msg) {
	select {
	case <-m.done:
	case m.events <- msg:
	default:
	}
}

func (m *Model) notify() { m.send(copyStateMsg{}) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeGrid()
		m.clampOffset()
	case tickMsg:
		return m, tick()
	case frameMsg:
		if m.Animating() {
			m.frame = glitch.Frame(msg)
		}
		return m, m.wait()
	case copyStateMsg:
		return m, m.wait()
	case copyDoneMsg:
		// The confirmation itself lives in the feedback; this only redraws.
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.Close()
		return m, tea.Quit
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusContent
		} else {
			m.focus = focusSidebar
		}
	case "up", "k":
		if m.focus == focusSidebar {
			m.moveCursor(-1)
		} else {
			m.scroll(-1)
		}
	case "down", "j":
		if m.focus == focusSidebar {
			m.moveCursor(1)
		} else {
			m.scroll(1)
		}
	case "pgup":
		m.scroll(-m.bodyHeight())
	case "pgdown":
		m.scroll(m.bodyHeight())
	case "enter":
		if m.cursor < len(m.rows) {
			m.Navigate(m.rows[m.cursor].item.Href)
		}
	case "o", " ":
		if m.cursor < len(m.rows) {
			m.ToggleGroup(m.rows[m.cursor].group)
		}
	case "n", "right":
		if m.view.Next != nil {
			m.Navigate(m.view.Next.Path)
		}
	case "p", "left":
		if m.view.Previous != nil {
			m.Navigate(m.view.Previous.Path)
		}
	case "g", "home":
		m.Navigate(m.shell.HomePath())
	case "t":
		if _, err := m.prefs.ToggleTheme(); err == nil {
			m.st = newStyles(m.prefs.Theme())
			m.refresh()
		}
	case "c":
		if _, err := m.prefs.ToggleClockMode(); err == nil {
			m.refresh()
		}
	case "]":
		m.selectTarget(1)
	case "[":
		m.selectTarget(-1)
	case "y":
		if t, ok := m.Selected(); ok {
			return m, m.copy(t)
		}
	}
	return m, nil
}

// Navigate shows the page at path. Unknown paths open the default page.
// The content pane scrolls back to the top.
func (m *Model) Navigate(path string) {
	l, _ := m.shell.ResolvePath(path)
	m.show(l)
}

// ToggleGroup expands or collapses the sidebar group with the parent id.
func (m *Model) ToggleGroup(id string) bool {
	if !m.shell.ToggleGroup(m.overrides, m.view.Path, id) {
		return false
	}
	m.refresh()
	return true
}

func (m *Model) state() shell.State {
	return shell.State{
		Theme:     m.prefs.Theme(),
		ClockMode: m.prefs.ClockMode(),
		Overrides: m.overrides,
		Now:       m.now(),
	}
}

func (m *Model) show(l index.Lookup) {
	for _, fb := range m.copies {
		fb.Stop()
	}
	m.view = m.shell.View(l, m.state())
	m.offset = 0
	m.targets = Targets(m.view.Blocks)
	m.selected = 0
	m.rebuildRows()
	m.cursor = m.activeRow()
	m.syncAnimator()
}

// refresh rebuilds the view of the current page in place.
func (m *Model) refresh() {
	group := ""
	if m.cursor < len(m.rows) {
		group = m.rows[m.cursor].item.ID
	}
	m.view = m.shell.View(m.view.Lookup, m.state())
	m.rebuildRows()
	m.cursor = m.activeRow()
	for i, r := range m.rows {
		if r.item.ID == group {
			m.cursor = i
		}
	}
	m.clampOffset()
}

func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for _, g := range m.view.Groups {
		m.rows = append(m.rows, navRow{item: g.Parent, group: g.Parent.ID, hasChildren: g.HasChildren(), expanded: g.Expanded})
		if !g.Expanded {
			continue
		}
		for _, c := range g.Children {
			m.rows = append(m.rows, navRow{item: c, group: g.Parent.ID, child: true})
		}
	}
}

func (m *Model) activeRow() int {
	for i, r := range m.rows {
		if r.item.Active {
			return i
		}
	}
	return 0
}

func (m *Model) moveCursor(d int) {
	m.cursor += d
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *Model) selectTarget(d int) {
	if len(m.targets) == 0 {
		return
	}
	m.selected = (m.selected + d + len(m.targets)) % len(m.targets)
}

func (m *Model) copy(t Target) tea.Cmd {
	fb := m.copies[t.Kind]
	assets := m.assets
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()
		var ok bool
		if t.Src != "" {
			ok = fb.CopyFrom(ctx, t.Key, SourceLoader(assets, t.Src))
		} else {
			ok = fb.Copy(ctx, t.Key, t.Text)
		}
		return copyDoneMsg{key: t.Key, ok: ok}
	}
}

func (m *Model) syncAnimator() {
	opts, ok := immersiveGlitch(m.view.Blocks)
	if !ok {
		m.stopAnimator()
		return
	}
	if m.Animating() || m.closed {
		return
	}
	m.animator = &glitch.Animator{
		Terminal: glitch.NewTerminal(opts),
		Size:     func() (int, int) { return int(m.gridCols.Load()), heroRows },
	}
	m.animator.Start(context.Background(), func(f glitch.Frame) { m.send(frameMsg(f)) })
}

func (m *Model) stopAnimator() {
	if m.animator != nil {
		m.animator.Stop()
		m.animator = nil
	}
	m.frame = glitch.Frame{}
}

func immersiveGlitch(blocks []shell.Placement) (glitch.Options, bool) {
	for _, p := range blocks {
		if p.Flags.Immersive {
			return p.Flags.Glitch, true
		}
	}
	return glitch.Options{}, false
}

func (m *Model) contentWidth() int {
	w := m.width - sidebarWidth - 3
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) resizeGrid() { m.gridCols.Store(int32(m.contentWidth())) }

// bodyHeight is the number of content lines between header and footer.
func (m *Model) bodyHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) scroll(d int) {
	m.offset += d
	m.clampOffset()
}

func (m *Model) clampOffset() {
	limit := len(m.contentLines()) - m.bodyHeight()
	if m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) contentLines() []string {
	width := m.contentWidth()
	var parts []string
	for _, p := range m.view.Blocks {
		if s := blockText(p, m.st, width, m.frame); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Split(strings.Join(parts, "\n\n"), "\n")
}

func (m *Model) View() string {
	header := m.headerView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), " ", m.contentView())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footerView())
}

func (m *Model) headerView() string {
	var crumbs []string
	for _, c := range m.view.Crumbs {
		if c.Active {
			crumbs = append(crumbs, m.st.heading.Render(c.Label))
		} else {
			crumbs = append(crumbs, m.st.muted.Render(c.Label))
		}
	}
	left := m.st.brand.Render(m.view.Brand) + "  " + strings.Join(crumbs, m.st.muted.Render(" / "))
	right := m.clockView() + "  " + m.st.muted.Render(themeLabel(m.view.Theme))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) clockView() string {
	r := clock.Read(m.now(), m.prefs.ClockMode())
	colon := " "
	if r.ColonVisible {
		colon = ":"
	}
	return m.st.muted.Render(r.City+" ") + m.st.body.Render(r.Hours+colon+r.Minutes) + m.st.muted.Render(" "+r.Period)
}

func themeLabel(t prefs.Theme) string {
	if t.IsDark() {
		return "● dark"
	}
	return "○ light"
}

func (m *Model) sidebarView() string {
	lines := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		marker := "  "
		switch {
		case r.hasChildren && r.expanded:
			marker = "▾ "
		case r.hasChildren:
			marker = "▸ "
		}
		indent := ""
		if r.child {
			indent = "  "
		}
		label := indent + marker + r.item.Label
		style := m.st.body
		if r.item.Active {
			style = m.st.active
		}
		if i == m.cursor && m.focus == focusSidebar {
			style = style.Inherit(m.st.cursor)
		}
		lines = append(lines, style.Render(truncate(label, sidebarWidth-2)))
	}
	return m.st.sidebar.Width(sidebarWidth).Height(m.bodyHeight()).Render(strings.Join(lines, "\n"))
}

func (m *Model) contentView() string {
	lines := m.contentLines()
	end := m.offset + m.bodyHeight()
	if end > len(lines) {
		end = len(lines)
	}
	start := m.offset
	if start > end {
		start = end
	}
	return lipgloss.NewStyle().Width(m.contentWidth()).Height(m.bodyHeight()).Render(strings.Join(lines[start:end], "\n"))
}

func (m *Model) footerView() string {
	prev, next := "", ""
	if m.view.Previous != nil {
		prev = m.st.muted.Render("← p ") + m.st.body.Render(m.view.Previous.Title)
	}
	if m.view.Next != nil {
		next = m.st.body.Render(m.view.Next.Title) + m.st.muted.Render(" n →")
	}
	gap := m.width - lipgloss.Width(prev) - lipgloss.Width(next)
	if gap < 1 {
		gap = 1
	}
	pager := prev + strings.Repeat(" ", gap) + next

	status := m.st.muted.Render("tab focus · enter open · o group · t theme · c clock · q quit")
	if t, ok := m.Selected(); ok {
		label := m.st.selected.Render(" " + t.Label + " ")
		hint := m.st.muted.Render(" [ ] choose · y copy")
		if m.IsCopied(t.Key) {
			hint = m.st.success.Render(" ✓ Copied")
		}
		status = label + hint + "   " + status
	}
	return m.st.footer.Width(m.width).Render(pager + "\n" + status)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
