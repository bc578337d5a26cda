package content

import (
	"net/url"
	"strings"
)

const figmaFallbackName = "Figma file"

// FigmaFileName derives a readable file name from a Figma share URL. For
// "/design/<key>/<File-Name>" it returns "File Name"; otherwise the last path
// segment is used. Unparseable input yields "Figma file".
func FigmaFileName(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return figmaFallbackName
	}
	var parts []string
	for _, p := range strings.Split(u.EscapedPath(), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return figmaFallbackName
	}
	name := parts[len(parts)-1]
	for i, p := range parts {
		if p == "design" {
			if i+2 >= len(parts) {
				return figmaFallbackName
			}
			name = parts[i+2]
			break
		}
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return figmaFallbackName
	}
	decoded = strings.TrimSpace(strings.ReplaceAll(decoded, "-", " "))
	if decoded == "" {
		return figmaFallbackName
	}
	return decoded
}
