package rgb

import (
	"errors"
	"fmt"
	imagecolor "image/color"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#abc", Color{170, 187, 204}},
		{"abc", Color{170, 187, 204}},
		{"#ABC", Color{170, 187, 204}},
		{"#ff0000", Color{255, 0, 0}},
		{"00FF7f", Color{0, 255, 127}},
		{"#000000", Black},
		{"#FFFFFF", White},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#ab", "#abcd", "#12345", "#1234567", "##abc", "#ggg", "red", " #abc"} {
		_, err := ParseHex(in)
		assert.Truef(t, errors.Is(err, ErrInvalidColorFormat), "input %q: %v", in, err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#000000", "#0a0B0c", "#FF7F00", "#123456", "#abcdef", "#fedcba", "#010203"} {
		c, err := ParseHex(s)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(s), c.Hex())
	}

	for i := 0; i < 256; i++ {
		s := fmt.Sprintf("#%02x%02x%02x", i, 255-i, (i*7)%256)
		assert.Equal(t, s, MustParse(s).Hex())
	}
}

func TestParseTriples(t *testing.T) {
	c, err := Parse([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Color{1, 2, 3}, c)

	c, err = Parse([3]int{-5, 300, 128})
	require.NoError(t, err)
	assert.Equal(t, Color{0, 255, 128}, c)

	c, err = Parse([]float64{12.7, 0.2, 254.9})
	require.NoError(t, err)
	assert.Equal(t, Color{12, 0, 254}, c)

	c, err = Parse(colorful.Color{R: 1, G: 0, B: 0.5})
	require.NoError(t, err)
	assert.Equal(t, Color{255, 0, 128}, c)

	c, err = Parse(imagecolor.RGBA{R: 10, G: 20, B: 30, A: 255})
	require.NoError(t, err)
	assert.Equal(t, Color{10, 20, 30}, c)

	c, err = Parse(Color{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, Color{4, 5, 6}, c)
}

func TestParseInvalid(t *testing.T) {
	for _, v := range []any{[]int{1, 2}, []int{1, 2, 3, 4}, []float64{}, 42, nil, (*Color)(nil), "#zzzzzz"} {
		_, err := Parse(v)
		assert.Truef(t, errors.Is(err, ErrInvalidColorFormat), "input %#v", v)
	}
}

func TestLerp(t *testing.T) {
	from := White
	to := Black

	assert.Equal(t, from, from.Lerp(to, 0))
	assert.Equal(t, to, from.Lerp(to, 1))
	assert.Equal(t, Color{128, 128, 128}, from.Lerp(to, 0.5))
	assert.Equal(t, Color{128, 128, 128}, Black.Lerp(White, 0.5))

	// overshoot is clamped
	assert.Equal(t, White, Black.Lerp(White, 1.3))
	assert.Equal(t, Black, Black.Lerp(White, -0.2))
}

func TestIntensity(t *testing.T) {
	c := Color{255, 0, 51}
	assert.Equal(t, 1.0, c.Intensity(0))
	assert.Equal(t, 0.0, c.Intensity(1))
	assert.InDelta(t, 0.2, c.Intensity(2), 1e-9)
}

func TestHSB(t *testing.T) {
	h, s, b := Color{255, 0, 0}.HSB()
	assert.Equal(t, uint16(0), h)
	assert.Equal(t, uint16(0xFFFF), s)
	assert.Equal(t, uint16(0xFFFF), b)

	h, s, b = Color{0, 0, 255}.HSB()
	assert.InDelta(t, 0xFFFF*2/3, int(h), 2)
	assert.Equal(t, uint16(0xFFFF), s)
	assert.Equal(t, uint16(0xFFFF), b)

	_, s, b = Black.HSB()
	assert.Equal(t, uint16(0), s)
	assert.Equal(t, uint16(0), b)
	assert.True(t, IsGreyish(s))
}

func TestEquivalent(t *testing.T) {
	same, err := Equivalent("#f00", []int{255, 0, 0})
	require.NoError(t, err)
	assert.True(t, same)

	same, err = Equivalent("#f00", "#f01")
	require.NoError(t, err)
	assert.False(t, same)

	_, err = Equivalent("#f00", "nope")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}
