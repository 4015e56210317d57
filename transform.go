package llmstyle

import "math"

// Apply adjusts base in HSL space and returns the transformed color.
// ok is false when base has no RGB representation; callers then apply
// attributes only. Identity parameters reproduce base up to rounding.
func (t ColorTransform) Apply(base Color) (Color, bool) {
	h, s, l, ok := base.hsl()
	if !ok {
		return Color{}, false
	}
	if t.AdjustBrightness > 0 {
		l = clamp01(l * t.AdjustBrightness)
	}
	if t.AdjustSaturation > 0 {
		s = clamp01(s * t.AdjustSaturation)
	}
	h = math.Mod(h+t.ShiftHue, 360)
	if h < 0 {
		h += 360
	}
	return fromHSL(h, s, l), true
}

// IsIdentity reports whether applying the transform leaves any color
// unchanged.
func (t ColorTransform) IsIdentity() bool {
	brightness := t.AdjustBrightness <= 0 || t.AdjustBrightness == 1
	saturation := t.AdjustSaturation <= 0 || t.AdjustSaturation == 1
	return brightness && saturation && math.Mod(t.ShiftHue, 360) == 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
