package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"finoverse.com/brandbook/internal/index"
)

// Item is a navigable page.
type Item struct {
	ID    string
	Title string
	Path  string
	Level int // 0 = top level, 1 = nested under the preceding top-level item
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	ID     string
	Href   string
	Label  string
	Active bool
}

// Group is a top-level item with the nested items that follow it.
type Group struct {
	Parent   RenderedItem
	Children []RenderedItem
	Expanded bool
}

// HasChildren reports whether the group has a submenu.
func (g Group) HasChildren() bool { return len(g.Children) > 0 }

// ContainsActive reports whether the parent or any child is the current route.
func (g Group) ContainsActive() bool {
	if g.Parent.Active {
		return true
	}
	for _, c := range g.Children {
		if c.Active {
			return true
		}
	}
	return false
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Overrides records explicit expand/collapse choices keyed by parent item id.
// A missing key means the group follows the active route.
type Overrides map[string]bool

// Toggle flips the effective expansion of g and records it.
func (o Overrides) Toggle(g Group) {
	o[g.Parent.ID] = !g.Expanded
}

// FromIndex converts index navigation pages to items.
func FromIndex(pages []index.NavPage) []Item {
	items := make([]Item, 0, len(pages))
	for _, p := range pages {
		items = append(items, Item{ID: p.ID, Title: p.Title, Path: p.Path, Level: p.NavLevel})
	}
	return items
}

// Build renders the sidebar: items are grouped, marked active against
// currentPath, and expanded when the group contains the current route unless
// overrides says otherwise. Level-1 items with no preceding level-0 item are
// dropped.
func Build(items []Item, currentPath string, overrides Overrides) []Group {
	var groups []Group
	for _, it := range items {
		ri := RenderedItem{
			ID:     it.ID,
			Href:   it.Path,
			Label:  it.Title,
			Active: isActive(it.Path, currentPath),
		}
		if it.Level == 1 {
			if len(groups) == 0 {
				continue
			}
			last := &groups[len(groups)-1]
			last.Children = append(last.Children, ri)
			continue
		}
		groups = append(groups, Group{Parent: ri})
	}
	for i := range groups {
		g := &groups[i]
		if v, ok := overrides[g.Parent.ID]; ok {
			g.Expanded = v
		} else {
			g.Expanded = g.ContainsActive()
		}
	}
	return groups
}

// Find returns the group whose parent has the given id.
func Find(groups []Group, id string) (Group, bool) {
	for _, g := range groups {
		if g.Parent.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "" || currentPath == "" {
		return false
	}
	return path.Clean(itemPath) == path.Clean(currentPath)
}

// Breadcrumbs builds brand > section > parent > page for the current route.
// The parent crumb appears only for nested pages.
func Breadcrumbs(brand, home string, groups []Group, sectionTitle, sectionSlug string, current RenderedItem) []Crumb {
	crumbs := []Crumb{{Href: home, Label: brand}}
	if sectionTitle == "" {
		sectionTitle = titleFromSegment(sectionSlug)
	}
	if sectionTitle != "" && sectionTitle != brand {
		crumbs = append(crumbs, Crumb{Href: home, Label: sectionTitle})
	}
	for _, g := range groups {
		for _, c := range g.Children {
			if c.Href == current.Href {
				crumbs = append(crumbs, Crumb{Href: g.Parent.Href, Label: g.Parent.Label})
			}
		}
	}
	label := current.Label
	if label == "" {
		label = titleFromSegment(path.Base(current.Href))
	}
	crumbs = append(crumbs, Crumb{Href: current.Href, Label: label, Active: true})
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" || seg == "." || seg == "/" {
		return ""
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}
