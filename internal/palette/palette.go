// Package palette parses hex colours and picks a legible ink for text drawn
// on top of them.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"finoverse.com/brandbook/internal/content"
)

// DarkInkThreshold is the luminance above which dark ink is used.
const DarkInkThreshold = 0.7

// ErrInvalidHex is returned for strings that are not #RGB or #RRGGBB.
var ErrInvalidHex = errors.New("palette: invalid hex colour")

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex formats the colour as #RRGGBB.
func (c RGB) Hex() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

// ParseHex accepts "#RGB", "#RRGGBB" and the same without the leading '#'.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Luminance is 0.299R + 0.587G + 0.114B normalised to [0,1].
func Luminance(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// Ink is the foreground colour chosen for a background.
type Ink int

const (
	InkLight Ink = iota
	InkDark
)

// Class is the utility class applied to text in the web UI.
func (i Ink) Class() string {
	if i == InkDark {
		return "text-slate-900"
	}
	return "text-white"
}

// Hex is the ink colour itself, used by terminal renderers.
func (i Ink) Hex() string {
	if i == InkDark {
		return "#0F172A"
	}
	return "#FFFFFF"
}

func (i Ink) String() string {
	if i == InkDark {
		return "dark"
	}
	return "light"
}

// InkFor picks dark ink when the background luminance exceeds
// DarkInkThreshold and light ink otherwise. Unparseable input gets light ink.
func InkFor(hex string) Ink {
	c, err := ParseHex(hex)
	if err != nil {
		return InkLight
	}
	if Luminance(c) > DarkInkThreshold {
		return InkDark
	}
	return InkLight
}

// Value is one copyable field of a colour profile.
type Value struct {
	Label string
	Text  string
}

// Values lists the present profile fields in display order.
func Values(c content.BrandColor) []Value {
	var out []Value
	if c.Pantone != "" {
		out = append(out, Value{Label: "Pantone", Text: c.Pantone})
	}
	if c.CMYK != "" {
		out = append(out, Value{Label: "CMYK", Text: c.CMYK})
	}
	if c.RGB != "" {
		out = append(out, Value{Label: "RGB", Text: c.RGB})
	}
	if c.Hex != "" {
		out = append(out, Value{Label: "HEX", Text: c.Hex})
	}
	return out
}

// ProfileText composes every present field into one copyable block.
func ProfileText(c content.BrandColor) string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, v := range Values(c) {
		b.WriteString("\n")
		b.WriteString(v.Label)
		b.WriteString(": ")
		b.WriteString(v.Text)
	}
	if c.Role != "" {
		b.WriteString("\nRole: ")
		b.WriteString(c.Role)
	}
	return b.String()
}
