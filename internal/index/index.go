// Package index flattens the brandbook into a single ordered sequence of pages
// and answers route lookups with previous/next neighbours.
package index

import (
	"fmt"

	"finoverse.com/brandbook/internal/content"
)

// Entry is one page in flattened document order.
type Entry struct {
	SectionTitle string
	SectionSlug  string
	Page         content.Page
	Path         string
}

// Link points at a neighbouring page.
type Link struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Lookup is the result of resolving a route.
type Lookup struct {
	SectionTitle string
	SectionSlug  string
	Page         content.Page
	Path         string
	Index        int
	Total        int
	Previous     *Link
	Next         *Link
}

// NavPage is a page as listed in navigation.
type NavPage struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	NavLevel int    `json:"navLevel"`
	Path     string `json:"path"`
}

// NavSection is a section as listed in navigation.
type NavSection struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	Pages []NavPage `json:"pages"`
}

// Index is immutable once built and safe for concurrent use.
type Index struct {
	entries []Entry
	byPath  map[string]int
	byID    map[string]int
	nav     []NavSection
	def     string
}

// Build validates the tree and flattens it. Malformed trees fail fast.
func Build(bb *content.Brandbook) (*Index, error) {
	if err := content.Validate(bb); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	idx := &Index{
		byPath: make(map[string]int, bb.PageCount()),
		byID:   make(map[string]int, bb.PageCount()),
	}
	for _, sec := range bb.Sections {
		ns := NavSection{ID: sec.ID, Title: sec.Title, Slug: sec.Slug}
		for _, p := range sec.Pages {
			path := content.PagePath(sec.Slug, p.Slug)
			idx.byPath[path] = len(idx.entries)
			idx.byID[p.ID] = len(idx.entries)
			idx.entries = append(idx.entries, Entry{
				SectionTitle: sec.Title,
				SectionSlug:  sec.Slug,
				Page:         p,
				Path:         path,
			})
			ns.Pages = append(ns.Pages, NavPage{
				ID:       p.ID,
				Title:    p.Title,
				Slug:     p.Slug,
				NavLevel: p.NavLevel,
				Path:     path,
			})
		}
		idx.nav = append(idx.nav, ns)
	}
	idx.def = idx.entries[0].Path
	if dp := bb.Layout.DefaultPage; dp.Section != "" {
		idx.def = dp.Path()
	}
	return idx, nil
}

// Find resolves a (section, page) slug pair. A miss is reported with ok=false.
func (x *Index) Find(sectionSlug, pageSlug string) (Lookup, bool) {
	i, ok := x.byPath[content.PagePath(sectionSlug, pageSlug)]
	if !ok {
		return Lookup{}, false
	}
	return x.lookupAt(i), true
}

// FindPath resolves a "/{section}/{page}" path.
func (x *Index) FindPath(path string) (Lookup, bool) {
	i, ok := x.byPath[path]
	if !ok {
		return Lookup{}, false
	}
	return x.lookupAt(i), true
}

// ByID resolves a page by its id.
func (x *Index) ByID(id string) (Lookup, bool) {
	i, ok := x.byID[id]
	if !ok {
		return Lookup{}, false
	}
	return x.lookupAt(i), true
}

// Default returns the redirect target for unknown routes.
func (x *Index) Default() Lookup {
	if l, ok := x.FindPath(x.def); ok {
		return l
	}
	return x.lookupAt(0)
}

// DefaultPath is the path of Default.
func (x *Index) DefaultPath() string { return x.Default().Path }

// First returns the first page in document order.
func (x *Index) First() Lookup { return x.lookupAt(0) }

// Len is the number of pages.
func (x *Index) Len() int { return len(x.entries) }

// Entries returns the flattened sequence. The slice must not be modified.
func (x *Index) Entries() []Entry { return x.entries }

// Navigation returns sections with every page and its path, in source order.
func (x *Index) Navigation() []NavSection { return x.nav }

// NavPages returns every navigation page across sections in order.
func (x *Index) NavPages() []NavPage {
	out := make([]NavPage, 0, len(x.entries))
	for _, s := range x.nav {
		out = append(out, s.Pages...)
	}
	return out
}

func (x *Index) lookupAt(i int) Lookup {
	e := x.entries[i]
	l := Lookup{
		SectionTitle: e.SectionTitle,
		SectionSlug:  e.SectionSlug,
		Page:         e.Page,
		Path:         e.Path,
		Index:        i,
		Total:        len(x.entries),
	}
	if i > 0 {
		p := x.entries[i-1]
		l.Previous = &Link{Title: p.Page.Title, Path: p.Path}
	}
	if i < len(x.entries)-1 {
		n := x.entries[i+1]
		l.Next = &Link{Title: n.Page.Title, Path: n.Path}
	}
	return l
}
