// Package rgb converts between hex strings, numeric triples and the 8-bit
// three-channel colors written to a light fixture.
package rgb

import (
	"errors"
	"fmt"
	imagecolor "image/color"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned for input that is neither a 3 or 6 digit
// hex string nor a three element numeric triple.
var ErrInvalidColorFormat = errors.New("invalid color format")

var (
	shorthandHex = regexp.MustCompile(`(?i)^#?([a-f\d])([a-f\d])([a-f\d])$`)
	fullHex      = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
)

// Color is an immutable red, green, blue triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// Parse accepts a hex string ("#abc", "aabbcc", ...), a Color, a three element
// int or float64 slice/array, a colorful.Color or an image/color.Color.
// Numeric channels are truncated to integers and clamped to [0,255].
func Parse(v any) (Color, error) {
	switch c := v.(type) {
	case string:
		return ParseHex(c)
	case Color:
		return c, nil
	case *Color:
		if c == nil {
			return Color{}, fmt.Errorf("%w: nil color", ErrInvalidColorFormat)
		}
		return *c, nil
	case [3]int:
		return FromInts(c[0], c[1], c[2]), nil
	case []int:
		if len(c) != 3 {
			return Color{}, fmt.Errorf("%w: triple has %d elements", ErrInvalidColorFormat, len(c))
		}
		return FromInts(c[0], c[1], c[2]), nil
	case [3]float64:
		return fromFloats(c[0], c[1], c[2]), nil
	case []float64:
		if len(c) != 3 {
			return Color{}, fmt.Errorf("%w: triple has %d elements", ErrInvalidColorFormat, len(c))
		}
		return fromFloats(c[0], c[1], c[2]), nil
	case colorful.Color:
		r, g, b := c.Clamped().RGB255()
		return Color{R: r, G: g, B: b}, nil
	case imagecolor.Color:
		r, g, b, _ := c.RGBA()
		return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}, nil
	}
	return Color{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidColorFormat, v, v)
}

// MustParse is Parse for literals known to be valid.
func MustParse(v any) Color {
	c, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses a 3 or 6 digit hex string with an optional leading '#'.
// Shorthand digits are doubled, so "#abc" is "#aabbcc".
func ParseHex(s string) (Color, error) {
	expanded := shorthandHex.ReplaceAllString(s, "$1$1$2$2$3$3")
	m := fullHex.FindStringSubmatch(expanded)
	if m == nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	c, err := colorful.Hex("#" + strings.ToLower(m[1]+m[2]+m[3]))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// FromInts clamps each channel to [0,255].
func FromInts(r, g, b int) Color {
	return Color{R: clampChannel(float64(r)), G: clampChannel(float64(g)), B: clampChannel(float64(b))}
}

func fromFloats(r, g, b float64) Color {
	return Color{
		R: clampChannel(math.Trunc(r)),
		G: clampChannel(math.Trunc(g)),
		B: clampChannel(math.Trunc(b)),
	}
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Hex renders the color as lowercase "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// Colorful returns the color in go-colorful's [0,1] float representation.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Channels returns the channel values in R, G, B order.
func (c Color) Channels() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// Intensity returns channel i (0=R, 1=G, 2=B) normalized to [0,1].
func (c Color) Intensity(i int) float64 {
	return float64(c.Channels()[i]) / 255.0
}

func (c Color) Equal(o Color) bool {
	return c == o
}

// Lerp interpolates each channel linearly by t. t outside [0,1] extrapolates
// (overshooting easing curves); the result is rounded to the nearest integer
// and clamped to [0,255].
func (c Color) Lerp(to Color, t float64) Color {
	lerp := func(a, b uint8) uint8 {
		return clampChannel(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{R: lerp(c.R, to.R), G: lerp(c.G, to.G), B: lerp(c.B, to.B)}
}

// Equivalent parses a and b and reports whether they name the same color.
func Equivalent(a, b any) (bool, error) {
	ca, err := Parse(a)
	if err != nil {
		return false, err
	}
	cb, err := Parse(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}
