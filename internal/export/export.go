// Package export writes the brandbook as a static site: one index.html per
// route, a redirecting root document, and the public assets and downloads.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"

	"finoverse.com/brandbook/internal/index"
	"finoverse.com/brandbook/internal/shell"
	"finoverse.com/brandbook/internal/site"
)

// Tree is a static file tree copied under its URL prefix, for example the
// public assets under "/assets".
type Tree struct {
	Prefix string
	FS     fs.FS
}

// Options configures an export.
type Options struct {
	OutDir string
	// Include and Exclude filter the copied static files by their path below
	// the tree prefix. Empty Include copies everything.
	Include []string
	Exclude []string
	// State is the viewer state baked into every page.
	State shell.State
	// Progress receives per-file updates; nil exports silently.
	Progress Reporter
}

// Reporter receives export progress.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// Result summarises an export.
type Result struct {
	Pages []string
	Files []string
	// Missing lists root-relative references found in the pages that no
	// copied file satisfies, sorted.
	Missing []string
}

// Run renders every page of sh through tpl and copies trees into
// opts.OutDir. It stops at the first write error or when ctx is done.
func Run(ctx context.Context, sh *shell.Shell, tpl *site.Templates, trees []Tree, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, errors.New("export: output directory is required")
	}
	files, err := collectFiles(trees, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	entries := sh.Index().Entries()
	total := len(entries) + len(files) + 1
	progress := opts.Progress
	if progress == nil {
		progress = nopReporter{}
	}
	progress.Start(total)
	defer progress.Finish()

	res := &Result{}
	refs := map[string]struct{}{}
	step := 0

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		l, _ := sh.Resolve(e.SectionSlug, e.Page.Slug)
		var buf bytes.Buffer
		if err := tpl.RenderPage(&buf, site.Page{View: sh.View(l, opts.State), Static: true}); err != nil {
			return res, fmt.Errorf("export: render %s: %w", l.Path, err)
		}
		for _, ref := range LocalRefs(buf.Bytes()) {
			refs[ref] = struct{}{}
		}
		out := filepath.Join(opts.OutDir, filepath.FromSlash(OutputPath(l.Path)))
		if err := writeFileAtomic(out, buf.Bytes()); err != nil {
			return res, err
		}
		res.Pages = append(res.Pages, l.Path)
		step++
		progress.Update(step, l.Path)
	}

	root, err := redirectDocument(sh.Index().Default())
	if err != nil {
		return res, err
	}
	if err := writeFileAtomic(filepath.Join(opts.OutDir, "index.html"), root); err != nil {
		return res, err
	}
	step++
	progress.Update(step, "/")

	copied := map[string]struct{}{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := copyFile(f.tree.FS, f.rel, filepath.Join(opts.OutDir, filepath.FromSlash(strings.TrimPrefix(f.url, "/")))); err != nil {
			return res, err
		}
		copied[f.url] = struct{}{}
		res.Files = append(res.Files, f.url)
		step++
		progress.Update(step, f.url)
	}

	pages := map[string]struct{}{}
	for _, p := range res.Pages {
		pages[p] = struct{}{}
	}
	for ref := range refs {
		_, isFile := copied[ref]
		_, isPage := pages[strings.TrimSuffix(ref, "/")]
		if !isFile && !isPage && ref != "/" {
			res.Missing = append(res.Missing, ref)
		}
	}
	sort.Strings(res.Missing)
	return res, nil
}

// OutputPath maps a route to the file that serves it:
// "/finoverse-brand/logo" -> "finoverse-brand/logo/index.html".
func OutputPath(route string) string {
	clean := strings.Trim(path.Clean("/"+route), "/")
	if clean == "" {
		return "index.html"
	}
	return clean + "/index.html"
}

type staticFile struct {
	tree Tree
	rel  string
	url  string
}

func collectFiles(trees []Tree, include, exclude []string) ([]staticFile, error) {
	var out []staticFile
	for _, t := range trees {
		prefix := "/" + strings.Trim(t.Prefix, "/")
		err := fs.WalkDir(t.FS, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !Matches(p, include, exclude) {
				return nil
			}
			out = append(out, staticFile{tree: t, rel: p, url: path.Join(prefix, p)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("export: walk %s: %w", prefix, err)
		}
	}
	return out, nil
}

// Matches reports whether rel passes the include and exclude globs. Patterns
// support "**" and are also tried against the base name.
func Matches(rel string, include, exclude []string) bool {
	if len(include) > 0 && !matchesAny(rel, include) {
		return false
	}
	return !matchesAny(rel, exclude)
}

func matchesAny(rel string, patterns []string) bool {
	normalized := filepath.ToSlash(rel)
	base := path.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// refAttrs are the attributes that can point at a same-origin file.
var refAttrs = map[string]bool{"href": true, "src": true, "poster": true, "data-copy-src": true}

// LocalRefs returns the distinct root-relative URLs referenced by the
// document, without query or fragment, in document order.
func LocalRefs(doc []byte) []string {
	z := html.NewTokenizer(bytes.NewReader(doc))
	seen := map[string]bool{}
	var out []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			for {
				key, val, more := z.TagAttr()
				if refAttrs[string(key)] {
					if ref, ok := localRef(string(val)); ok && !seen[ref] {
						seen[ref] = true
						out = append(out, ref)
					}
				}
				if !more {
					break
				}
			}
		}
	}
}

func localRef(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return "", false
	}
	if i := strings.IndexAny(v, "?#"); i >= 0 {
		v = v[:i]
	}
	return v, v != ""
}

var redirectTemplate = template.Must(template.New("redirect").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{html .Title}}</title>
  <meta http-equiv="refresh" content="0; url={{html .Path}}">
  <link rel="canonical" href="{{html .Path}}">
</head>
<body><a href="{{html .Path}}">{{html .Title}}</a></body>
</html>
`))

func redirectDocument(l index.Lookup) ([]byte, error) {
	var buf bytes.Buffer
	err := redirectTemplate.Execute(&buf, struct{ Title, Path string }{l.Page.Title, l.Path})
	if err != nil {
		return nil, fmt.Errorf("export: root document: %w", err)
	}
	return buf.Bytes(), nil
}

func copyFile(fsys fs.FS, name, dst string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("export: open %s: %w", name, err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return fmt.Errorf("export: read %s: %w", name, err)
	}
	return writeFileAtomic(dst, buf.Bytes())
}

// writeFileAtomic writes through a temp file in the same directory so a
// reader never sees a half-written file.
func writeFileAtomic(dst string, data []byte) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("export: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("export: write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", dst, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("export: chmod %s: %w", dst, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("export: rename %s: %w", dst, err)
	}
	return nil
}

type nopReporter struct{}

func (nopReporter) Start(int)          {}
func (nopReporter) Update(int, string) {}
func (nopReporter) Finish()            {}
