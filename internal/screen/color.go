// Package screen reduces a captured frame to a single color.
package screen

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/scheerer/pwm-colors/rgb"
)

// Sampler reduces img to one color, reading every pixelGridSize-th pixel in
// both directions.
type Sampler func(img *image.RGBA, pixelGridSize int) rgb.Color

var samplers = map[string]Sampler{
	"AVERAGE":         AverageColor,
	"SQUARED_AVERAGE": SquaredAverageColor,
	"MEDIAN":          MedianColor,
	"MODE":            ModeColor,
}

// SamplerByName accepts AVERAGE, SQUARED_AVERAGE, MEDIAN or MODE.
func SamplerByName(name string) (Sampler, error) {
	if s, ok := samplers[strings.ToUpper(name)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown color algorithm: %v", name)
}

// visit calls f for each sampled pixel and returns how many there were.
func visit(img *image.RGBA, pixelGridSize int, f func(c rgb.Color)) int {
	if pixelGridSize < 1 {
		pixelGridSize = 1
	}
	bounds := img.Bounds()
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += pixelGridSize {
		for x := bounds.Min.X; x < bounds.Max.X; x += pixelGridSize {
			p := img.RGBAAt(x, y)
			f(rgb.Color{R: p.R, G: p.G, B: p.B})
			n++
		}
	}
	return n
}

func AverageColor(img *image.RGBA, pixelGridSize int) rgb.Color {
	var sumR, sumG, sumB uint64
	n := visit(img, pixelGridSize, func(c rgb.Color) {
		sumR += uint64(c.R)
		sumG += uint64(c.G)
		sumB += uint64(c.B)
	})
	if n == 0 {
		return rgb.Black
	}

	total := uint64(n)
	return rgb.Color{
		R: uint8(sumR / total),
		G: uint8(sumG / total),
		B: uint8(sumB / total),
	}
}

// SquaredAverageColor is the root mean square per channel, which weights
// bright pixels more than AverageColor does.
func SquaredAverageColor(img *image.RGBA, pixelGridSize int) rgb.Color {
	var sumR, sumG, sumB uint64
	n := visit(img, pixelGridSize, func(c rgb.Color) {
		sumR += uint64(c.R) * uint64(c.R)
		sumG += uint64(c.G) * uint64(c.G)
		sumB += uint64(c.B) * uint64(c.B)
	})
	if n == 0 {
		return rgb.Black
	}

	total := float64(n)
	return rgb.Color{
		R: uint8(math.Sqrt(float64(sumR) / total)),
		G: uint8(math.Sqrt(float64(sumG) / total)),
		B: uint8(math.Sqrt(float64(sumB) / total)),
	}
}

// MedianColor takes the median of each channel independently.
func MedianColor(img *image.RGBA, pixelGridSize int) rgb.Color {
	var reds, greens, blues []uint8
	visit(img, pixelGridSize, func(c rgb.Color) {
		reds = append(reds, c.R)
		greens = append(greens, c.G)
		blues = append(blues, c.B)
	})
	if len(reds) == 0 {
		return rgb.Black
	}

	median := func(values []uint8) uint8 {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
		n := len(values)
		if n%2 == 0 {
			return uint8((int(values[n/2-1]) + int(values[n/2])) / 2)
		}
		return values[n/2]
	}

	return rgb.Color{
		R: median(reds),
		G: median(greens),
		B: median(blues),
	}
}

// ModeColor returns the most frequent sampled color. Ties go to the color
// seen first.
func ModeColor(img *image.RGBA, pixelGridSize int) rgb.Color {
	colorCount := make(map[rgb.Color]int)
	var modeColor rgb.Color
	maxCount := 0
	visit(img, pixelGridSize, func(c rgb.Color) {
		colorCount[c]++
		if colorCount[c] > maxCount {
			maxCount = colorCount[c]
			modeColor = c
		}
	})

	return modeColor
}
