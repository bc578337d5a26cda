package render

import (
	"html/template"

	"finoverse.com/brandbook/internal/content"
)

// iconPaths holds the 24x24 stroke paths for each icon key.
var iconPaths = map[content.IconKey]string{
	"users":     `<circle cx="9" cy="8" r="3.5"/><path d="M2.5 20c0-3.6 2.9-6 6.5-6s6.5 2.4 6.5 6"/><path d="M16 4.5a3.5 3.5 0 0 1 0 7"/><path d="M18 14.2c2.1.6 3.5 2.7 3.5 5.8"/>`,
	"sparkles":  `<path d="M12 3l1.9 5.1L19 10l-5.1 1.9L12 17l-1.9-5.1L5 10l5.1-1.9z"/><path d="M19 16l.8 2.2L22 19l-2.2.8L19 22l-.8-2.2L16 19l2.2-.8z"/>`,
	"network":   `<circle cx="12" cy="5" r="2.5"/><circle cx="5" cy="19" r="2.5"/><circle cx="19" cy="19" r="2.5"/><path d="M12 7.5v4.5M12 12l-5.5 5M12 12l5.5 5"/>`,
	"handshake": `<path d="M2 12l4-4 4 2 4-3 4 1 4 4"/><path d="M6 13l4 4c.8.8 2 .8 2.8 0l5.2-5"/>`,
	"rocket":    `<path d="M5 15c-1.5 1.5-2 5-2 5s3.5-.5 5-2"/><path d="M9 15l-3-3c2-6 7-9 14-9 0 7-3 12-9 14z"/><circle cx="15" cy="9" r="1.5"/>`,
	"shield":    `<path d="M12 3l8 3v6c0 4.5-3.4 8.2-8 9-4.6-.8-8-4.5-8-9V6z"/>`,
	"globe":     `<circle cx="12" cy="12" r="9"/><path d="M3 12h18M12 3c2.5 2.7 3.8 5.7 3.8 9s-1.3 6.3-3.8 9c-2.5-2.7-3.8-5.7-3.8-9S9.5 5.7 12 3z"/>`,
	"layers":    `<path d="M12 3l9 5-9 5-9-5z"/><path d="M3 13l9 5 9-5"/>`,
	"briefcase": `<rect x="3" y="7" width="18" height="13" rx="2"/><path d="M9 7V5a2 2 0 0 1 2-2h2a2 2 0 0 1 2 2v2M3 13h18"/>`,
	"chart":     `<path d="M4 20V4M4 20h16"/><path d="M8 16v-5M12 16V8M16 16v-3"/>`,
	"book":      `<path d="M4 5a2 2 0 0 1 2-2h14v16H6a2 2 0 0 0-2 2z"/><path d="M4 21V5"/>`,
	"palette":   `<path d="M12 3a9 9 0 1 0 0 18c1.1 0 1.6-.9 1.2-1.8-.5-1.1.3-2.2 1.5-2.2H17a4 4 0 0 0 4-4c0-5.5-4-10-9-10z"/><circle cx="7.5" cy="11" r="1"/><circle cx="11" cy="7" r="1"/><circle cx="15.5" cy="8.5" r="1"/>`,
	"type":      `<path d="M5 6V4h14v2M12 4v16M9 20h6"/>`,
	"play":      `<circle cx="12" cy="12" r="9"/><path d="M10 8.5l5.5 3.5-5.5 3.5z"/>`,
	"camera":    `<path d="M4 8h3l2-3h6l2 3h3v11H4z"/><circle cx="12" cy="13" r="3.5"/>`,
}

// chromePaths are the glyphs of the page chrome. They are not available to
// content blocks.
var chromePaths = map[content.IconKey]string{
	"sun":         `<circle cx="12" cy="12" r="4"/><path d="M12 2v2M12 20v2M4.9 4.9l1.4 1.4M17.7 17.7l1.4 1.4M2 12h2M20 12h2M4.9 19.1l1.4-1.4M17.7 6.3l1.4-1.4"/>`,
	"moon":        `<path d="M20 14.5A8 8 0 0 1 9.5 4a8 8 0 1 0 10.5 10.5z"/>`,
	"chevron":     `<path d="M9 6l6 6-6 6"/>`,
	"arrow-left":  `<path d="M19 12H5M11 6l-6 6 6 6"/>`,
	"arrow-right": `<path d="M5 12h14M13 6l6 6-6 6"/>`,
	"download":    `<path d="M12 4v11M7 10l5 5 5-5M5 20h14"/>`,
}

// Icon returns the inline SVG for key, or nothing for keys outside the set.
func Icon(key content.IconKey) template.HTML {
	paths, ok := iconPaths[key]
	if !ok {
		paths, ok = chromePaths[key]
	}
	if !ok {
		return ""
	}
	return template.HTML(`<svg class="h-5 w-5" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.6" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">` + paths + `</svg>`)
}
