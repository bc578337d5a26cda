package tui

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finoverse.com/brandbook/internal/clipboard"
	"finoverse.com/brandbook/internal/clock"
	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/index"
	"finoverse.com/brandbook/internal/nav"
	"finoverse.com/brandbook/internal/prefs"
	"finoverse.com/brandbook/internal/shell"
)

type fakeTimer struct{}

func (fakeTimer) Stop() bool { return true }

type fakeClock struct {
	mu  sync.Mutex
	fns []func()
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) clipboard.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, f)
	return fakeTimer{}
}

func (c *fakeClock) fireLast() {
	c.mu.Lock()
	f := c.fns[len(c.fns)-1]
	c.mu.Unlock()
	f()
}

type recordingWriter struct {
	mu   sync.Mutex
	text []string
	err  error
}

func (w *recordingWriter) Write(_ context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.text = append(w.text, text)
	return nil
}

func (w *recordingWriter) last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.text) == 0 {
		return ""
	}
	return w.text[len(w.text)-1]
}

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 13, 5, 0, 0, clock.HongKong) }

func newModel(t *testing.T, opts Options) *Model {
	t.Helper()
	bb, err := content.Default()
	require.NoError(t, err)
	idx, err := index.Build(bb)
	require.NoError(t, err)
	if opts.Clipboard == nil {
		opts.Clipboard = &recordingWriter{}
	}
	if opts.Clock == nil {
		opts.Clock = &fakeClock{}
	}
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	m := New(shell.New(bb, idx), opts)
	t.Cleanup(m.Close)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func rowIndex(t *testing.T, m *Model, id string) int {
	t.Helper()
	for i, r := range m.rows {
		if r.item.ID == id {
			return i
		}
	}
	t.Fatalf("no sidebar row %q", id)
	return -1
}

func findGroup(t *testing.T, m *Model, id string) nav.Group {
	t.Helper()
	g, ok := nav.Find(m.Page().Groups, id)
	require.True(t, ok)
	return g
}

func TestUnknownStartOpensDefaultPage(t *testing.T) {
	m := newModel(t, Options{Start: "/foo/bar"})
	assert.Equal(t, "/finoverse-brand/introduction", m.Path())
	assert.True(t, m.Page().Immersive)
	assert.True(t, m.Animating())

	out := m.View()
	assert.Contains(t, out, "Finoverse Network")
	assert.Contains(t, out, "Hong Kong")
	assert.Contains(t, out, "01:05")
	assert.Contains(t, out, "PM")
}

func TestPaginationResetsScroll(t *testing.T) {
	m := newModel(t, Options{})
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 10})

	press(m, "p")
	assert.Equal(t, "/finoverse-brand/introduction", m.Path(), "no previous page on the first page")

	press(m, "tab", "j", "j")
	assert.Equal(t, 2, m.Offset())

	press(m, "n")
	assert.Equal(t, "/finoverse-brand/brand-tone", m.Path())
	assert.Equal(t, 0, m.Offset())
	assert.False(t, m.Animating(), "the glitch field only runs on immersive pages")

	press(m, "p")
	assert.Equal(t, "/finoverse-brand/introduction", m.Path())
	assert.True(t, m.Animating())
}

func TestThemeAndClockPersist(t *testing.T) {
	store := &prefs.Memory{}
	m := newModel(t, Options{Prefs: prefs.Load(store)})
	assert.Equal(t, prefs.ThemeDark, m.Page().Theme)
	assert.Contains(t, m.View(), "● dark")

	press(m, "t")
	v, ok := store.Get(prefs.ThemeKey)
	require.True(t, ok)
	assert.Equal(t, "light", v)
	assert.Equal(t, prefs.ThemeLight, m.Page().Theme)
	assert.Equal(t, "h-8 w-auto brightness-0", m.Page().LogoClass)
	assert.Contains(t, m.View(), "○ light")

	press(m, "c")
	v, ok = store.Get(clock.StorageKey)
	require.True(t, ok)
	assert.Equal(t, "24", v)
	out := m.View()
	assert.Contains(t, out, "13:05")
	assert.Contains(t, out, "24H")
}

func TestSidebarGroupToggle(t *testing.T) {
	m := newModel(t, Options{})
	assert.False(t, findGroup(t, m, "events-overview").Expanded)

	m.cursor = rowIndex(t, m, "events-overview")
	press(m, "o")
	g := findGroup(t, m, "events-overview")
	assert.True(t, g.Expanded)
	assert.Len(t, g.Children, 4)
	assert.Equal(t, "events-overview", m.rows[m.cursor].item.ID, "cursor stays on the group")

	press(m, "o")
	assert.False(t, findGroup(t, m, "events-overview").Expanded)
	assert.False(t, m.ToggleGroup("introduction"), "groups without children do not toggle")
}

func TestEnterOpensSidebarItem(t *testing.T) {
	m := newModel(t, Options{})
	m.cursor = rowIndex(t, m, "colors")
	press(m, "enter")
	assert.Equal(t, "/finoverse-brand/colors", m.Path())
	assert.True(t, m.rows[m.cursor].item.Active)
}

func TestCopyShowsConfirmationUntilTimerFires(t *testing.T) {
	w := &recordingWriter{}
	clk := &fakeClock{}
	m := newModel(t, Options{Clipboard: w, Clock: clk, Start: "/finoverse-brand/colors"})

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Burgundy Red CMYK", sel.Label)

	press(m, "]")
	sel, _ = m.Selected()
	assert.Equal(t, "Burgundy Red RGB", sel.Label)

	cmd := press(m, "y")
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, "122/31/61", w.last())
	assert.True(t, m.IsCopied(sel.Key))
	assert.Contains(t, m.View(), "✓ Copied")

	clk.fireLast()
	assert.False(t, m.IsCopied(sel.Key))
}

func TestCopyFailureIsSilent(t *testing.T) {
	w := &recordingWriter{err: clipboard.ErrUnsupported}
	m := newModel(t, Options{Clipboard: w, Start: "/finoverse-brand/colors"})
	sel, _ := m.Selected()

	msg := press(m, "y")()
	m.Update(msg)
	assert.Equal(t, copyDoneMsg{key: sel.Key, ok: false}, msg)
	assert.False(t, m.IsCopied(sel.Key))
	assert.NotContains(t, m.View(), "✓ Copied")
}

func TestNavigationClearsConfirmation(t *testing.T) {
	m := newModel(t, Options{Start: "/finoverse-brand/colors"})
	sel, _ := m.Selected()
	m.Update(press(m, "y")())
	require.True(t, m.IsCopied(sel.Key))

	press(m, "n")
	assert.False(t, m.IsCopied(sel.Key))
}

func TestCopyLogoSource(t *testing.T) {
	w := &recordingWriter{}
	assets := fstest.MapFS{"logos/finoverse-logo-original.svg": {Data: []byte("<svg>original</svg>")}}
	m := newModel(t, Options{Clipboard: w, Assets: assets, Start: "/finoverse-brand/logo"})

	for i, tg := range m.Targets() {
		if tg.Label == "Original SVG" {
			m.selected = i
		}
	}
	sel, _ := m.Selected()
	require.Equal(t, "Original SVG", sel.Label)
	assert.Equal(t, CopySource, sel.Kind)

	m.Update(press(m, "y")())
	assert.Equal(t, "<svg>original</svg>", w.last())
	assert.True(t, m.IsCopied(sel.Key))
}

func TestGlitchFramesReachTheHero(t *testing.T) {
	m := newModel(t, Options{})

	got := make(chan tea.Msg, 1)
	go func() { got <- m.wait()() }()
	var msg tea.Msg
	select {
	case msg = <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame from the animator")
	}
	require.IsType(t, frameMsg{}, msg)
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "keeps listening for frames")
	assert.Equal(t, heroRows, m.frame.Rows)
	assert.Equal(t, m.contentWidth(), m.frame.Cols)
}

func TestQuitStopsEverything(t *testing.T) {
	m := newModel(t, Options{})
	require.True(t, m.Animating())
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.Animating())
	assert.Nil(t, m.wait()(), "listeners are released")
}
