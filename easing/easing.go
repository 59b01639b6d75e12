// Package easing holds the time-warping curves used to shape a transition.
// Every curve maps normalized progress t in [0,1] to eased progress; custom
// curves may leave [0,1] to overshoot.
package easing

import (
	"math"
	"sort"
)

// Curve is anything that can warp normalized time.
type Curve interface {
	Ease(t float64) float64
}

// Func is a caller supplied curve.
type Func func(t float64) float64

func (f Func) Ease(t float64) float64 {
	return f(t)
}

// Name refers to a curve in the built-in table.
type Name string

const (
	Linear         Name = "linear"
	EaseInQuad     Name = "easeInQuad"
	EaseOutQuad    Name = "easeOutQuad"
	EaseInOutQuad  Name = "easeInOutQuad"
	EaseInCubic    Name = "easeInCubic"
	EaseOutCubic   Name = "easeOutCubic"
	EaseInOutCubic Name = "easeInOutCubic"
	EaseInQuart    Name = "easeInQuart"
	EaseOutQuart   Name = "easeOutQuart"
	EaseInOutQuart Name = "easeInOutQuart"
	EaseInQuint    Name = "easeInQuint"
	EaseOutQuint   Name = "easeOutQuint"
	EaseInOutQuint Name = "easeInOutQuint"
)

// Default is used for unknown names and nil curves.
const Default = EaseInOutQuad

func (n Name) Ease(t float64) float64 {
	return Resolve(n)(t)
}

var table = map[Name]Func{
	Linear:         func(t float64) float64 { return t },
	EaseInQuad:     easeIn(2),
	EaseOutQuad:    easeOut(2),
	EaseInOutQuad:  easeInOut(2),
	EaseInCubic:    easeIn(3),
	EaseOutCubic:   easeOut(3),
	EaseInOutCubic: easeInOut(3),
	EaseInQuart:    easeIn(4),
	EaseOutQuart:   easeOut(4),
	EaseInOutQuart: easeInOut(4),
	EaseInQuint:    easeIn(5),
	EaseOutQuint:   easeOut(5),
	EaseInOutQuint: easeInOut(5),
}

func easeIn(power float64) Func {
	return func(t float64) float64 {
		return math.Pow(t, power)
	}
}

func easeOut(power float64) Func {
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, power)
	}
}

// easeInOut accelerates over the first half and mirrors it over the second.
func easeInOut(power float64) Func {
	scale := math.Pow(2, power-1)
	return func(t float64) float64 {
		if t < 0.5 {
			return scale * math.Pow(t, power)
		}
		return 1 - scale*math.Pow(1-t, power)
	}
}

// Lookup finds a built-in curve by name.
func Lookup(name string) (Func, bool) {
	f, ok := table[Name(name)]
	return f, ok
}

// Resolve turns a curve reference into a callable. Names are looked up in the
// table, falling back to Default when unknown; a nil curve also gets Default.
// Any other Curve is used as is.
func Resolve(c Curve) Func {
	switch v := c.(type) {
	case nil:
		return table[Default]
	case Name:
		if f, ok := table[v]; ok {
			return f
		}
		return table[Default]
	case Func:
		if v == nil {
			return table[Default]
		}
		return v
	default:
		return c.Ease
	}
}

// Names lists the built-in curves in alphabetical order.
func Names() []Name {
	names := make([]Name, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
