package content

import "fmt"

// SubBrand describes one sub-brand of the network. Each sub-brand expands into
// an overview page followed by four child pages that share one layout.
type SubBrand struct {
	Key                   string       `yaml:"key"`
	Title                 string       `yaml:"title"`
	Description           string       `yaml:"description"`
	Vision                string       `yaml:"vision"`
	RoleInNetwork         string       `yaml:"roleInNetwork"`
	PoweredBy             string       `yaml:"poweredBy"`
	KeyExamples           []Card       `yaml:"keyExamples"`
	ExecutionFocus        []Card       `yaml:"executionFocus"`
	Colors                []BrandColor `yaml:"colors"`
	IllustrationDirection string       `yaml:"illustrationDirection"`
	GraphicDirection      string       `yaml:"graphicDirection"`
}

// OverviewID is the page id of the sub-brand's top-level page.
func (s SubBrand) OverviewID() string { return s.Key + "-overview" }

// Pages returns the overview page and its children in navigation order.
func (s SubBrand) Pages() []Page {
	return []Page{
		{
			ID:       s.OverviewID(),
			Title:    s.Title,
			Slug:     s.Key,
			NavLevel: 0,
			Blocks: Blocks{
				&Hero{Title: s.Title, Description: s.Description},
				&TextColumns{
					Title: "Brand Positioning",
					Columns: []Column{
						{Title: "Vision", Body: s.Vision},
						{Title: "Role in the Network", Body: s.RoleInNetwork},
						{Title: "Powered by", Body: s.PoweredBy},
					},
				},
				&RuleCards{Title: "Execution Focus", Cards: s.ExecutionFocus},
				&Steps{Title: "Key Examples from Creative Brief", Steps: s.KeyExamples},
			},
		},
		{
			ID:       s.Key + "-colors",
			Title:    "Colors",
			Slug:     s.Key + "-colors",
			NavLevel: 1,
			Blocks: Blocks{
				&Hero{
					Title:       s.Title + " Colors",
					Description: "Use this palette as the approved color system for this sub-brand. Hover and copy any value in Pantone, CMYK, RGB, HEX, or full profile format.",
				},
				&BrandColorPalette{
					Title:       "Core Palette",
					Description: "Primary color first, followed by support and neutral tones for consistent production.",
					Colors:      s.Colors,
				},
				&DownloadList{
					Title: "Color Resources",
					Items: []DownloadAsset{{
						Name:        "Color Palette Export",
						Description: "ASE palette for design tools and production handoff.",
						Format:      "ASE",
						File:        "/downloads/color-palette.ase",
					}},
				},
			},
		},
		{
			ID:       s.Key + "-illustration",
			Title:    "Illustration",
			Slug:     s.Key + "-illustration",
			NavLevel: 1,
			Blocks: Blocks{
				&Hero{Title: s.Title + " Illustration", Description: s.IllustrationDirection},
				&Gallery{
					Title: "Reference Direction",
					Items: []GalleryItem{
						{Src: "https://images.unsplash.com/photo-1558655146-d09347e92766?auto=format&fit=crop&w=1400&q=80", Alt: "Abstract visual composition"},
						{Src: "https://images.unsplash.com/photo-1545239351-1141bd82e8a6?auto=format&fit=crop&w=1400&q=80", Alt: "Illustrative geometric style"},
					},
				},
				&DoDont{
					Title: "Illustration Rules",
					Items: []Guideline{
						{Kind: VerdictDo, Title: "Use one dominant focal shape", Text: "Composition should remain readable at thumbnail size."},
						{Kind: VerdictDont, Title: "Avoid dense micro-details", Text: "Overly intricate artwork weakens clarity in digital placements."},
					},
				},
			},
		},
		{
			ID:       s.Key + "-graphic-elements",
			Title:    "Graphic elements",
			Slug:     s.Key + "-graphic-elements",
			NavLevel: 1,
			Blocks: Blocks{
				&Hero{Title: s.Title + " Graphic Elements", Description: s.GraphicDirection},
				&ImageShowcase{
					Src:     "/downloads/shape-kit.svg",
					Alt:     fmt.Sprintf("%s graphic elements kit", s.Title),
					Caption: "Use approved primitives only. Keep scale and spacing intentional.",
					Compact: true,
				},
				&Steps{
					Title: "Implementation Steps",
					Steps: []Card{
						{Title: "01. Start from kit", Body: "Choose only approved primitives and lock their proportions."},
						{Title: "02. Build hierarchy", Body: "Place one hero element first, then add support elements."},
						{Title: "03. Preserve whitespace", Body: "Leave generous breathing room around key elements and text."},
					},
				},
			},
		},
		{
			ID:       s.Key + "-resources",
			Title:    "Resources",
			Slug:     s.Key + "-resources",
			NavLevel: 1,
			Blocks: Blocks{
				&Hero{
					Title:       s.Title + " Resources",
					Description: "Download approved source files and implementation references for this sub-brand.",
				},
				&DownloadList{
					Title: "Resource Pack",
					Items: []DownloadAsset{
						{Name: "Logo and Lockup Pack", Description: "Primary vector lockups for this sub-brand.", Format: "SVG", File: "/downloads/logo-pack.svg"},
						{Name: "Graphic Elements Kit", Description: "Reusable graphic primitives and layout helpers.", Format: "SVG", File: "/downloads/shape-kit.svg"},
						{Name: "Usage Rulesheet", Description: "Text-based checklist for fast QA before publishing.", Format: "TXT", File: "/downloads/co-brand-template.txt"},
					},
				},
			},
		},
	}
}
