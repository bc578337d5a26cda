// Package templates embeds the HTML templates of the site: the page layout,
// its partials and one template per content block kind.
package templates

import "embed"

//go:embed *.tmpl partials/*.tmpl blocks/*.tmpl
var files embed.FS

// FS returns the embedded template tree.
func FS() embed.FS { return files }
