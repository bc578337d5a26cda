package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/brandbook.yaml
var defaultDocument []byte

// ErrNotFound is returned when a content file does not exist.
var ErrNotFound = errors.New("content: not found")

type document struct {
	BrandName string              `yaml:"brandName"`
	LogoMark  string              `yaml:"logoMark"`
	Layout    Layout              `yaml:"layout"`
	ColorSets []BrandColor        `yaml:"colorSets"` // anchor definitions only
	SubBrands map[string]SubBrand `yaml:"subBrands"`
	Sections  []sectionDocument   `yaml:"sections"`
}

type sectionDocument struct {
	ID    string         `yaml:"id"`
	Title string         `yaml:"title"`
	Slug  string         `yaml:"slug"`
	Pages []pageDocument `yaml:"pages"`
}

// pageDocument is either a literal page or a reference to a sub-brand that
// expands into several pages at this position.
type pageDocument struct {
	Page     `yaml:",inline"`
	SubBrand string `yaml:"subBrand"`
}

// Default returns the brandbook compiled into the binary.
func Default() (*Brandbook, error) {
	return Parse(bytes.NewReader(defaultDocument))
}

// DefaultSource exposes the raw embedded document.
func DefaultSource() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

// LoadFile reads a brandbook from a YAML file on disk. An empty path loads the
// embedded default.
func LoadFile(path string) (*Brandbook, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("content: open %s: %w", path, err)
	}
	defer f.Close()
	bb, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return bb, nil
}

// Parse decodes a YAML brandbook document, expands sub-brand references and
// fills derived fields. It does not validate; see Validate.
func Parse(r io.Reader) (*Brandbook, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}

	bb := &Brandbook{
		BrandName: strings.TrimSpace(doc.BrandName),
		LogoMark:  strings.TrimSpace(doc.LogoMark),
		Layout:    doc.Layout,
	}
	for _, sd := range doc.Sections {
		sec := Section{
			ID:    strings.TrimSpace(sd.ID),
			Title: strings.TrimSpace(sd.Title),
			Slug:  sanitizeSlug(sd.Slug),
		}
		for _, pd := range sd.Pages {
			if key := strings.TrimSpace(pd.SubBrand); key != "" {
				sb, ok := doc.SubBrands[key]
				if !ok {
					return nil, fmt.Errorf("content: section %q references unknown sub-brand %q", sec.Slug, key)
				}
				if sb.Key == "" {
					sb.Key = key
				}
				sec.Pages = append(sec.Pages, sb.Pages()...)
				continue
			}
			p := pd.Page
			p.ID = strings.TrimSpace(p.ID)
			p.Title = strings.TrimSpace(p.Title)
			p.Slug = sanitizeSlug(p.Slug)
			sec.Pages = append(sec.Pages, p)
		}
		bb.Sections = append(bb.Sections, sec)
	}
	normalize(bb)
	return bb, nil
}

func normalize(bb *Brandbook) {
	if bb.Layout.DefaultPage.Section == "" && len(bb.Sections) > 0 && len(bb.Sections[0].Pages) > 0 {
		bb.Layout.DefaultPage = Route{Section: bb.Sections[0].Slug, Page: bb.Sections[0].Pages[0].Slug}
	}
	if bb.Layout.HeroMode == "" {
		bb.Layout.HeroMode = HeroModeVideo
	}
	for si := range bb.Sections {
		for pi := range bb.Sections[si].Pages {
			for _, blk := range bb.Sections[si].Pages[pi].Blocks {
				if ql, ok := blk.(*QuickLinks); ok {
					for i := range ql.Items {
						if strings.TrimSpace(ql.Items[i].Name) == "" {
							ql.Items[i].Name = FigmaFileName(ql.Items[i].URL)
						}
					}
				}
			}
		}
	}
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, "/\\?#") {
		return ""
	}
	return slug
}
