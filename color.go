package llmstyle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// ColorModel discriminates the Color union.
type ColorModel uint8

const (
	// ColorTerminalDefault leaves the terminal's own color untouched.
	ColorTerminalDefault ColorModel = iota
	// ColorNamed is a named xterm color ("blue", "bright_black", "tan").
	ColorNamed
	// ColorIndexed is an xterm-256 palette index.
	ColorIndexed
	// ColorRGB is a truecolor value.
	ColorRGB
)

// Color is a renderer-neutral color value. Conversion to a concrete
// terminal representation happens only at the output boundary.
type Color struct {
	Model ColorModel
	Name  string
	Index uint8
	R     uint8
	G     uint8
	B     uint8
}

// TerminalDefault is the color that defers to the terminal.
var TerminalDefault = Color{Model: ColorTerminalDefault}

// RGB returns a truecolor Color.
func RGB(r, g, b uint8) Color {
	return Color{Model: ColorRGB, R: r, G: g, B: b}
}

// Indexed returns an xterm-256 palette Color.
func Indexed(i uint8) Color {
	return Color{Model: ColorIndexed, Index: i}
}

// namedIndex maps the color names accepted in style strings to their
// xterm-256 palette index.
var namedIndex = map[string]uint8{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"bright_black": 8, "bright_red": 9, "bright_green": 10, "bright_yellow": 11,
	"bright_blue": 12, "bright_magenta": 13, "bright_cyan": 14, "bright_white": 15,
	"grey30":              239,
	"tan":                 180,
	"light_sea_green":     37,
	"medium_spring_green": 49,
	"spring_green1":       48,
	"orange1":             214,
	"gold1":               220,
	"deep_sky_blue1":      39,
	"hot_pink":            205,
}

// ParseColor parses one color word from a style string: "default", a
// known color name, "#rrggbb", or a bare 0..255 palette index.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "default" || s == "none":
		return TerminalDefault, nil
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return TerminalDefault, fmt.Errorf("bad hex color %q", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return TerminalDefault, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if idx, ok := namedIndex[s]; ok {
		return Color{Model: ColorNamed, Name: s, Index: idx}, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return Indexed(uint8(n)), nil
	}
	return TerminalDefault, fmt.Errorf("unknown color %q", s)
}

// ToRGB resolves the color to truecolor channels. TerminalDefault has
// no channel values; ok is false for it.
func (c Color) ToRGB() (r, g, b uint8, ok bool) {
	switch c.Model {
	case ColorRGB:
		return c.R, c.G, c.B, true
	case ColorNamed, ColorIndexed:
		rgb := termenv.ConvertToRGB(termenv.ANSI256Color(c.Index))
		return uint8(rgb.R * 255), uint8(rgb.G * 255), uint8(rgb.B * 255), true
	default:
		return 0, 0, 0, false
	}
}

// hsl returns the color in HSL space, ok=false for TerminalDefault.
func (c Color) hsl() (h, s, l float64, ok bool) {
	r, g, b, ok := c.ToRGB()
	if !ok {
		return 0, 0, 0, false
	}
	cf := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l = cf.Hsl()
	return h, s, l, true
}

// fromHSL builds a truecolor Color from HSL channels.
func fromHSL(h, s, l float64) Color {
	cf := colorful.Hsl(h, s, l).Clamped()
	r, g, b := cf.RGB255()
	return RGB(r, g, b)
}

// Hex returns "#rrggbb" for colors with channel values, "" otherwise.
func (c Color) Hex() string {
	r, g, b, ok := c.ToRGB()
	if !ok {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
