// Package glitch generates the decorative "faulty terminal" glyph field drawn
// behind immersive heroes. Frames are pure functions of the grid, the phase
// and the pointer; the Terminal advances the phase between frames.
package glitch

import (
	"math"
	"time"

	"finoverse.com/brandbook/internal/palette"
)

// Glyphs are the characters drawn in the field.
const Glyphs = "0123456789ABCDEF"

// DefaultTint is used when Options.Tint does not parse.
var DefaultTint = palette.RGB{R: 167, G: 239, B: 158}

// Options mirror the tunables of the effect. Zero values are meaningful, so
// start from Defaults.
type Options struct {
	Scale               float64    `json:"scale"`
	GridMul             [2]float64 `json:"gridMul"`
	DigitSize           float64    `json:"digitSize"`
	TimeScale           float64    `json:"timeScale"`
	Pause               bool       `json:"pause"`
	ScanlineIntensity   float64    `json:"scanlineIntensity"`
	GlitchAmount        float64    `json:"glitchAmount"`
	FlickerAmount       float64    `json:"flickerAmount"`
	NoiseAmp            float64    `json:"noiseAmp"`
	ChromaticAberration float64    `json:"chromaticAberration"`
	Dither              float64    `json:"dither"`
	Curvature           float64    `json:"curvature"`
	Tint                string     `json:"tint"`
	MouseReact          bool       `json:"mouseReact"`
	MouseStrength       float64    `json:"mouseStrength"`
	PageLoadAnimation   bool       `json:"pageLoadAnimation"`
	Brightness          float64    `json:"brightness"`
}

// Defaults returns the tuning used on the hero.
func Defaults() Options {
	return Options{
		Scale:             1.5,
		GridMul:           [2]float64{2, 1},
		DigitSize:         1.9,
		TimeScale:         0.5,
		ScanlineIntensity: 0.5,
		GlitchAmount:      1,
		FlickerAmount:     1,
		NoiseAmp:          1,
		Curvature:         0.1,
		Tint:              "#A7EF9E",
		MouseReact:        true,
		MouseStrength:     0.5,
		PageLoadAnimation: true,
		Brightness:        0.5,
	}
}

// TintRGB parses Tint, falling back to DefaultTint.
func (o Options) TintRGB() palette.RGB {
	c, err := palette.ParseHex(o.Tint)
	if err != nil {
		return DefaultTint
	}
	return c
}

// Pointer is the normalised pointer position over the field.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Cell is one drawn glyph.
type Cell struct {
	Col, Row int
	Glyph    byte
	Alpha    float64
	// Shift is the horizontal glitch offset as a fraction of the cell width.
	Shift float64
}

// Frame is one rendered state of the field.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
	// Brightness is the base brightness after load ramp and flicker.
	Brightness float64
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// HashNoise is a deterministic pseudo-random value in [0,1).
func HashNoise(x, y, t float64) float64 {
	v := math.Sin(x*12.9898+y*78.233+t*6.124) * 43758.5453
	return v - math.Floor(v)
}

// Grid returns the column and row counts for a surface of the given size in
// CSS pixels.
func (o Options) Grid(width, height float64) (cols, rows int) {
	s := math.Max(0.35, o.Scale)
	cols = int(math.Max(20, math.Floor(width/(16*s)*math.Max(0.4, o.GridMul[0]))))
	rows = int(math.Max(12, math.Floor(height/(28*s)*math.Max(0.4, o.GridMul[1]))))
	return cols, rows
}

// LoadProgress ramps from 0 to 1 over the first 900ms.
func (o Options) LoadProgress(elapsed time.Duration) float64 {
	if !o.PageLoadAnimation {
		return 1
	}
	return clamp(float64(elapsed.Milliseconds())/900, 0, 1)
}

// Flicker is the brightness multiplier at time now (milliseconds).
func (o Options) Flicker(nowMs float64) float64 {
	return 1 - clamp(o.FlickerAmount, 0, 2)*(0.08+0.06*math.Sin(nowMs*0.015))
}

// Render computes the cells for one frame.
func (o Options) Render(cols, rows int, phase float64, elapsed time.Duration, p Pointer) Frame {
	nowMs := float64(elapsed) / float64(time.Millisecond)
	base := clamp(o.Brightness, 0, 1) * o.LoadProgress(elapsed) * o.Flicker(nowMs)
	f := Frame{Cols: cols, Rows: rows, Brightness: base}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			noise := HashNoise(float64(x), float64(y), phase)
			if noise < 0.24 {
				continue
			}
			glyph := Glyphs[int(math.Floor(noise*float64(len(Glyphs))))%len(Glyphs)]
			jitter := o.GlitchAmount * (HashNoise(float64(y), float64(x), phase*2.7) - 0.5)
			shift := 0.0
			if noise > 0.92 {
				shift = jitter * 0.7
			}
			alpha := clamp(base*(0.45+noise*0.75), 0.04, 1)
			if o.MouseReact && p.Active {
				xn := (float64(x) + 0.5) / float64(cols)
				yn := (float64(y) + 0.5) / float64(rows)
				d := math.Hypot(xn-p.X, yn-p.Y)
				alpha += clamp(1-d*2.1, 0, 1) * clamp(o.MouseStrength, 0, 2) * 0.35
			}
			f.Cells = append(f.Cells, Cell{Col: x, Row: y, Glyph: glyph, Alpha: alpha, Shift: shift})
		}
	}
	return f
}

// Terminal advances the phase of the field between frames.
type Terminal struct {
	Options Options

	phase   float64
	last    time.Duration
	started bool
}

// NewTerminal returns a Terminal with opts.
func NewTerminal(opts Options) *Terminal {
	return &Terminal{Options: opts}
}

// Phase returns the current animation phase.
func (t *Terminal) Phase() float64 { return t.phase }

// Advance moves the phase forward for a frame drawn at elapsed since start.
// Gaps longer than 42ms are capped so the field never jumps after a stall.
func (t *Terminal) Advance(elapsed time.Duration) {
	if !t.started {
		t.started = true
		t.last = elapsed
		return
	}
	delta := math.Min(42, float64(elapsed-t.last)/float64(time.Millisecond))
	t.last = elapsed
	if t.Options.Pause || delta <= 0 {
		return
	}
	t.phase += delta / 1000 * math.Max(0.08, t.Options.TimeScale)
}

// Frame advances and renders a cols x rows frame.
func (t *Terminal) Frame(cols, rows int, elapsed time.Duration, p Pointer) Frame {
	t.Advance(elapsed)
	return t.Options.Render(cols, rows, t.phase, elapsed, p)
}
