package content

import (
	"fmt"
	"strings"
)

// ValidationError is returned when the content tree is malformed.
type ValidationError struct {
	problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("content validation failed: %s", strings.Join(e.problems, "; "))
}

// Problems returns a copy of the problem list.
func (e *ValidationError) Problems() []string {
	out := make([]string, len(e.problems))
	copy(out, e.problems)
	return out
}

// Validate checks the structural invariants of the tree: non-empty slugs and
// ids, unique route keys and page ids, navLevel in {0,1}, and no level-1 page
// without a preceding level-0 page in its section.
func Validate(bb *Brandbook) error {
	if bb == nil {
		return &ValidationError{problems: []string{"brandbook is nil"}}
	}
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if bb.PageCount() == 0 {
		add("brandbook has no pages")
	}
	routes := map[string]string{}
	ids := map[string]string{}
	for si, sec := range bb.Sections {
		if sec.Slug == "" {
			add("section %d (%q) has an empty or invalid slug", si, sec.Title)
		}
		if sec.Title == "" {
			add("section %q has no title", sec.Slug)
		}
		for pi, page := range sec.Pages {
			where := fmt.Sprintf("%s/%s", sec.Slug, page.Slug)
			if page.Slug == "" {
				add("page %d of section %q has an empty or invalid slug", pi, sec.Slug)
				continue
			}
			if page.ID == "" {
				add("page %s has no id", where)
			} else if prev, dup := ids[page.ID]; dup {
				add("page id %q used by both %s and %s", page.ID, prev, where)
			} else {
				ids[page.ID] = where
			}
			if page.Title == "" {
				add("page %s has no title", where)
			}
			key := PagePath(sec.Slug, page.Slug)
			if _, dup := routes[key]; dup {
				add("duplicate route %s", key)
			}
			routes[key] = page.ID
			switch page.NavLevel {
			case 0:
			case 1:
				if pi == 0 {
					add("page %s is nested (navLevel 1) but has no preceding top-level page", where)
				}
			default:
				add("page %s has navLevel %d; expected 0 or 1", where, page.NavLevel)
			}
		}
	}
	if dp := bb.Layout.DefaultPage; dp.Section != "" {
		if _, ok := routes[dp.Path()]; !ok {
			add("layout default page %s does not exist", dp.Path())
		}
	}
	for _, id := range bb.Layout.ImmersiveHero {
		if _, ok := ids[id]; !ok {
			add("layout immersive hero references unknown page id %q", id)
		}
	}
	if len(problems) > 0 {
		return &ValidationError{problems: problems}
	}
	return nil
}

// Warnings lists non-fatal issues such as unknown block types, which render
// nothing, and icon cards naming an icon outside IconKeys.
func Warnings(bb *Brandbook) []string {
	var out []string
	for _, sec := range bb.Sections {
		for _, page := range sec.Pages {
			for _, tag := range page.Blocks.UnknownTypes() {
				out = append(out, fmt.Sprintf("page %s/%s: %v %q", sec.Slug, page.Slug, ErrUnknownBlock, tag))
			}
			for _, blk := range page.Blocks {
				if ic, ok := blk.(*IconCards); ok {
					for _, c := range ic.Cards {
						if !c.Icon.Valid() {
							out = append(out, fmt.Sprintf("page %s/%s: icon card %q uses unknown icon %q", sec.Slug, page.Slug, c.Title, c.Icon))
						}
					}
				}
			}
		}
	}
	return out
}
