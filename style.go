package llmstyle

import (
	"fmt"
	"strings"
)

// Attributes is a bit set of text attributes.
type Attributes uint8

const (
	AttrBold Attributes = 1 << iota
	AttrItalic
	AttrUnderline
	AttrDim
	AttrStrikethrough
	AttrReverse
)

// Has reports whether every attribute in a is set.
func (s Attributes) Has(a Attributes) bool { return s&a == a }

// ColorTransform adjusts a base color in HSL space. The zero-value
// fields mean "leave that channel alone".
type ColorTransform struct {
	// AdjustBrightness multiplies lightness; <= 0 means unchanged.
	AdjustBrightness float64
	// AdjustSaturation multiplies saturation; <= 0 means unchanged.
	AdjustSaturation float64
	// ShiftHue rotates hue by degrees, wrapping mod 360.
	ShiftHue float64
}

// StyleDefinition is a parsed style table entry. A plain style string
// parses into attributes and colors; a transformed style additionally
// carries a ColorTransform applied against a contextual base color at
// resolution time. Parsing happens once at load, never per line.
type StyleDefinition struct {
	Attrs         Attributes
	Foreground    Color
	HasForeground bool
	Background    Color
	HasBackground bool
	Transform     *ColorTransform
}

// ConcreteStyle is a fully resolved style ready for the renderer.
// HasForeground false means "inherit the surrounding color".
type ConcreteStyle struct {
	Foreground    Color
	HasForeground bool
	Background    Color
	HasBackground bool
	Attrs         Attributes
}

var attrWords = map[string]Attributes{
	"bold":          AttrBold,
	"italic":        AttrItalic,
	"underline":     AttrUnderline,
	"dim":           AttrDim,
	"strikethrough": AttrStrikethrough,
	"strike":        AttrStrikethrough,
	"reverse":       AttrReverse,
}

// ParseStyle parses a style string of attribute and color words, e.g.
// "bold bright_blue underline" or "bright_black on grey30". The word
// after "on" is the background. An empty or "default" string parses to
// the inherit-everything style.
func ParseStyle(s string) (StyleDefinition, error) {
	var def StyleDefinition
	background := false
	for _, word := range strings.Fields(strings.ToLower(s)) {
		if word == "on" {
			background = true
			continue
		}
		if attr, ok := attrWords[word]; ok && !background {
			def.Attrs |= attr
			continue
		}
		col, err := ParseColor(word)
		if err != nil {
			return StyleDefinition{}, fmt.Errorf("style %q: %w", s, err)
		}
		if col.Model == ColorTerminalDefault {
			continue
		}
		if background {
			def.Background = col
			def.HasBackground = true
		} else {
			def.Foreground = col
			def.HasForeground = true
		}
	}
	return def, nil
}

// WithTransform returns a copy of the definition carrying t.
func (d StyleDefinition) WithTransform(t ColorTransform) StyleDefinition {
	d.Transform = &t
	return d
}
