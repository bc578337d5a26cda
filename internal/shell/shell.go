// Package shell assembles everything around the blocks of a page: route
// resolution with the default-page fallback, the sidebar, breadcrumbs, the
// hero policy, pagination and the theme and clock state. Both the web server
// and the terminal browser render from the same View.
package shell

import (
	"html/template"
	"strings"
	"time"

	"finoverse.com/brandbook/internal/clock"
	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/glitch"
	"finoverse.com/brandbook/internal/index"
	"finoverse.com/brandbook/internal/nav"
	"finoverse.com/brandbook/internal/prefs"
	"finoverse.com/brandbook/internal/render"
)

// TitleSeparator joins page and brand in the document title.
const TitleSeparator = " · "

// Shell is immutable after New and safe for concurrent use.
type Shell struct {
	index     *index.Index
	layout    content.Layout
	brand     string
	logoMark  string
	glitch    glitch.Options
	items     []nav.Item
	centered  bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithGlitch overrides the tuning of the immersive hero glitch field.
func WithGlitch(o glitch.Options) Option {
	return func(s *Shell) { s.glitch = o }
}

// New builds a shell over a validated brandbook and its index.
func New(bb *content.Brandbook, idx *index.Index, opts ...Option) *Shell {
	s := &Shell{
		index:    idx,
		layout:   bb.Layout,
		brand:    bb.BrandName,
		logoMark: bb.LogoMark,
		glitch:   glitch.Defaults(),
		items:    nav.FromIndex(idx.NavPages()),
		centered: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index returns the content index.
func (s *Shell) Index() *index.Index { return s.index }

// Brand returns the brand name.
func (s *Shell) Brand() string { return s.brand }

// HomePath is the path of the default page.
func (s *Shell) HomePath() string { return s.index.DefaultPath() }

// Resolve looks up a page by its slugs.
func (s *Shell) Resolve(section, page string) (index.Lookup, bool) {
	return s.index.Find(section, page)
}

// ResolveOrDefault returns the requested page, or the default page and
// redirect=true when the route is unknown.
func (s *Shell) ResolveOrDefault(section, page string) (l index.Lookup, redirect bool) {
	if l, ok := s.index.Find(section, page); ok {
		return l, false
	}
	return s.index.Default(), true
}

// ResolvePath resolves an arbitrary URL path. Anything that is not exactly
// "/{section}/{page}" of a known page falls back to the default page.
func (s *Shell) ResolvePath(p string) (l index.Lookup, redirect bool) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if len(parts) == 2 {
		return s.ResolveOrDefault(parts[0], parts[1])
	}
	return s.index.Default(), true
}

// State is the per-viewer state that shapes a view.
type State struct {
	Theme     prefs.Theme
	ClockMode clock.Mode
	Overrides nav.Overrides
	Now       time.Time
}

// Placement is a block with the flags decided for its position.
type Placement struct {
	Block content.Block
	Flags render.Flags
}

// View is the complete model of one rendered page.
type View struct {
	Brand     string
	LogoMark  string
	LogoClass string
	Home      string
	Title     string
	Path      string
	Lookup    index.Lookup
	Immersive bool
	Groups    []nav.Group
	Crumbs    []nav.Crumb
	Blocks    []Placement
	Previous  *index.Link
	Next      *index.Link
	Theme     prefs.Theme
	Clock     clock.Reading
}

// View builds the model of the page l for a viewer in state st.
func (s *Shell) View(l index.Lookup, st State) View {
	if st.Theme == "" {
		st.Theme = prefs.DefaultTheme
	}
	if st.ClockMode == "" {
		st.ClockMode = clock.Mode12
	}
	if st.Now.IsZero() {
		st.Now = time.Now()
	}
	groups := s.Sidebar(l.Path, st.Overrides)
	current := nav.RenderedItem{ID: l.Page.ID, Href: l.Path, Label: l.Page.Title, Active: true}
	return View{
		Brand:     s.brand,
		LogoMark:  s.logoMark,
		LogoClass: LogoClass(st.Theme),
		Home:      s.HomePath(),
		Title:     DocumentTitle(l.Page.Title, s.brand),
		Path:      l.Path,
		Lookup:    l,
		Immersive: s.layout.IsImmersive(l.Page.ID),
		Groups:    groups,
		Crumbs:    nav.Breadcrumbs(s.brand, s.HomePath(), groups, l.SectionTitle, l.SectionSlug, current),
		Blocks:    s.Placements(l.Page),
		Previous:  l.Previous,
		Next:      l.Next,
		Theme:     st.Theme,
		Clock:     clock.Read(st.Now, st.ClockMode),
	}
}

// Sidebar returns the grouped navigation with currentPath marked active.
func (s *Shell) Sidebar(currentPath string, overrides nav.Overrides) []nav.Group {
	return nav.Build(s.items, currentPath, overrides)
}

// ToggleGroup flips the expansion of the group whose parent is id, as seen
// from currentPath, and records it in overrides. It reports whether the group
// exists and has children.
func (s *Shell) ToggleGroup(overrides nav.Overrides, currentPath, id string) bool {
	g, ok := nav.Find(s.Sidebar(currentPath, overrides), id)
	if !ok || !g.HasChildren() {
		return false
	}
	overrides.Toggle(g)
	return true
}

// Placements applies the hero policy to the blocks of p. On immersive pages
// a leading hero goes full-bleed. Everywhere else heroes are compact and a
// leading hero carries the first asset of the first non-empty download list.
func (s *Shell) Placements(p content.Page) []Placement {
	immersive := s.layout.IsImmersive(p.ID)
	var heroDownload *content.DownloadAsset
	if !immersive {
		heroDownload = firstDownload(p.Blocks)
	}
	out := make([]Placement, 0, len(p.Blocks))
	for i, b := range p.Blocks {
		f := render.Flags{Centered: s.centered}
		if _, isHero := b.(*content.Hero); isHero {
			switch {
			case immersive && i == 0:
				f.Immersive = true
				f.HeroVideo = s.layout.HeroVideo(p.ID)
				f.HeroMode = s.layout.HeroMode
				f.Glitch = s.glitch
			case !immersive:
				f.CompactHero = true
				if i == 0 {
					f.HeroDownload = heroDownload
				}
			}
		}
		out = append(out, Placement{Block: b, Flags: f})
	}
	return out
}

func firstDownload(blocks content.Blocks) *content.DownloadAsset {
	for _, b := range blocks {
		if dl, ok := b.(*content.DownloadList); ok && len(dl.Items) > 0 {
			item := dl.Items[0]
			return &item
		}
	}
	return nil
}

// Render renders every placement in order. Blocks that render nothing are
// kept as empty entries so indexes line up with the page blocks.
func (v View) Render(r *render.Renderer) ([]template.HTML, error) {
	out := make([]template.HTML, len(v.Blocks))
	for i, p := range v.Blocks {
		h, err := r.RenderHTML(p.Block, p.Flags)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// DocumentTitle is "{page} · {brand}", or the brand alone.
func DocumentTitle(page, brand string) string {
	if strings.TrimSpace(page) == "" {
		return brand
	}
	return page + TitleSeparator + brand
}

// LogoClass tints the logo mark for the theme.
func LogoClass(t prefs.Theme) string {
	if t.IsDark() {
		return "h-8 w-auto brightness-0 invert"
	}
	return "h-8 w-auto brightness-0"
}
