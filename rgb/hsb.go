package rgb

import "math"

// HSB returns hue, saturation and brightness each scaled to 0..0xFFFF, the
// representation LIFX devices expect.
func (c Color) HSB() (hue, saturation, brightness uint16) {
	h, s, v := c.Colorful().Hsv()

	// Hsv reports hue in degrees
	hue = uint16(math.Round(h / 360.0 * 0xFFFF))
	saturation = uint16(math.Round(s * 0xFFFF))
	brightness = uint16(math.Round(v * 0xFFFF))

	return hue, saturation, brightness
}

// IsGreyish reports whether a saturation value is low enough to read as grey.
func IsGreyish(saturation uint16) bool {
	satThreshold := float64(0xFFFF) * 0.2
	return float64(saturation) <= satThreshold
}
