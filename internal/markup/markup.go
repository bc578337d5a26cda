// Package markup turns the short rich-text fields of the content tree into
// safe HTML. Text is parsed as markdown and then sanitised; plain strings
// without markdown pass through unchanged apart from escaping.
package markup

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	richPolicy  = newRichTextPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichTextPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "code")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Block renders s as sanitised block-level HTML (paragraphs, lists).
func Block(s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(html.EscapeString(s))
	}
	return template.HTML(strings.TrimSpace(richPolicy.Sanitize(buf.String())))
}

// Inline renders s like Block but unwraps a single enclosing paragraph so the
// result can sit inside an existing <p> or heading.
func Inline(s string) template.HTML {
	out := string(Block(s))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

// Plain strips markdown and markup, returning text for terminals and
// clipboard payloads.
func Plain(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return s
	}
	text := html.UnescapeString(plainPolicy.Sanitize(buf.String()))
	return strings.Join(strings.Fields(text), " ")
}
