package content

import "strings"

// Page is one routable page of the brandbook.
type Page struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Slug     string `yaml:"slug" json:"slug"`
	NavLevel int    `yaml:"navLevel,omitempty" json:"navLevel"`
	Blocks   Blocks `yaml:"blocks" json:"blocks"`
}

// IsChild reports whether the page nests under the preceding top-level page.
func (p Page) IsChild() bool { return p.NavLevel == 1 }

// Section groups pages under a shared URL prefix.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Slug  string `yaml:"slug" json:"slug"`
	Pages []Page `yaml:"pages" json:"pages"`
}

// Route identifies a page by its section and page slugs.
type Route struct {
	Section string `yaml:"section" json:"section"`
	Page    string `yaml:"page" json:"page"`
}

// Path returns the canonical URL path for the route.
func (r Route) Path() string { return PagePath(r.Section, r.Page) }

// PagePath joins section and page slugs into "/{section}/{page}".
func PagePath(section, page string) string {
	return "/" + section + "/" + page
}

// HeroMode selects the background of an immersive hero.
type HeroMode string

const (
	HeroModeVideo          HeroMode = "video"
	HeroModeFaultyTerminal HeroMode = "faultyTerminal"
)

// Layout is the presentation policy expressed as data rather than page-ID checks.
type Layout struct {
	DefaultPage      Route             `yaml:"defaultPage" json:"defaultPage"`
	ImmersiveHero    []string          `yaml:"immersiveHero" json:"immersiveHero"`
	HeroVideos       map[string]string `yaml:"heroVideos" json:"heroVideos,omitempty"`
	DefaultHeroVideo string            `yaml:"defaultHeroVideo" json:"defaultHeroVideo"`
	HeroMode         HeroMode          `yaml:"heroMode" json:"heroMode"`
}

// IsImmersive reports whether pageID gets the full-bleed hero treatment.
func (l Layout) IsImmersive(pageID string) bool {
	for _, id := range l.ImmersiveHero {
		if id == pageID {
			return true
		}
	}
	return false
}

// HeroVideo returns the background video for an immersive page.
func (l Layout) HeroVideo(pageID string) string {
	if src := strings.TrimSpace(l.HeroVideos[pageID]); src != "" {
		return src
	}
	return l.DefaultHeroVideo
}

// Brandbook is the full, immutable content tree.
type Brandbook struct {
	BrandName string    `yaml:"brandName" json:"brandName"`
	LogoMark  string    `yaml:"logoMark" json:"logoMark"`
	Sections  []Section `yaml:"sections" json:"sections"`
	Layout    Layout    `yaml:"layout" json:"-"`
}

// PageCount returns the total number of pages across sections.
func (b *Brandbook) PageCount() int {
	n := 0
	for _, s := range b.Sections {
		n += len(s.Pages)
	}
	return n
}
