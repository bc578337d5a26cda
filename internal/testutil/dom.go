package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Attr returns the attribute of the first match of selector, failing the test
// when nothing matches.
func Attr(t testing.TB, doc *goquery.Document, selector, name string) string {
	t.Helper()

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		t.Fatalf("no element matches %q", selector)
	}
	v, _ := sel.Attr(name)
	return v
}
