package fader

import (
	"time"

	"github.com/scheerer/pwm-colors/easing"
	"github.com/scheerer/pwm-colors/rgb"
)

const (
	DefaultTickInterval           = 25 * time.Millisecond
	DefaultIdleTransitionDuration = 4 * time.Second
)

// DefaultChannelPins are the pi-blaster GPIOs for red, green and blue.
var DefaultChannelPins = [3]int{4, 17, 18}

// Handler is called with the scheduler that invoked it. It may call any
// Scheduler method.
type Handler func(s *Scheduler)

// Config is read once by New. Zero values select the defaults.
type Config struct {
	InitialColor rgb.Color
	// ChannelPins are the output identifiers for red, green and blue.
	// All zero means DefaultChannelPins.
	ChannelPins  [3]int
	TickInterval time.Duration
	// DefaultEasing is used by Transition and the idle transition when no
	// curve is given. Nil means easing.Default.
	DefaultEasing easing.Curve

	// IdleCallback runs every time the queue drains, after IdleDelay.
	IdleCallback Handler
	IdleDelay    time.Duration
	// IdleColor, when set, is transitioned to after the idle callback if
	// nothing else has been queued.
	IdleColor              *rgb.Color
	IdleTransitionDuration time.Duration

	// LoopTransition requeues completed entries at the end of the queue.
	LoopTransition bool
}

func (c Config) withDefaults() Config {
	if c.ChannelPins == [3]int{} {
		c.ChannelPins = DefaultChannelPins
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.DefaultEasing == nil {
		c.DefaultEasing = easing.Default
	}
	if c.IdleDelay < 0 {
		c.IdleDelay = 0
	}
	if c.IdleTransitionDuration <= 0 {
		c.IdleTransitionDuration = DefaultIdleTransitionDuration
	}
	if c.IdleColor != nil {
		idle := *c.IdleColor
		c.IdleColor = &idle
	}
	return c
}
