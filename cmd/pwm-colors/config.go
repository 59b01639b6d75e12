package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/scheerer/pwm-colors/easing"
	"github.com/scheerer/pwm-colors/fader"
	"github.com/scheerer/pwm-colors/output"
	"github.com/scheerer/pwm-colors/output/lifx"
	"github.com/scheerer/pwm-colors/output/piblaster"
	"github.com/scheerer/pwm-colors/rgb"
)

type Config struct {
	InitialColor           string        `env:"INITIAL_COLOR" envDefault:"#000000"`
	ChannelPins            []int         `env:"CHANNEL_PINS" envDefault:"4,17,18"`
	TickInterval           time.Duration `env:"TICK_INTERVAL" envDefault:"25ms"`
	DefaultEasing          string        `env:"DEFAULT_EASING" envDefault:"easeInOutQuad"`
	IdleDelay              time.Duration `env:"IDLE_DELAY" envDefault:"0s"`
	IdleColor              string        `env:"IDLE_COLOR"`
	IdleTransitionDuration time.Duration `env:"IDLE_TRANSITION_DURATION" envDefault:"4s"`
	LoopTransition         bool          `env:"LOOP_TRANSITION" envDefault:"false"`

	Output          []string `env:"OUTPUT" envDefault:"PIBLASTER"`
	PiBlasterDevice string   `env:"PIBLASTER_DEVICE" envDefault:"/dev/pi-blaster"`
	LightGroupName  string   `env:"LIGHT_GROUP_NAME" envDefault:"ARCADE"`
	MaxBrightness   float64  `env:"MAX_BRIGHTNESS" envDefault:"1"`
	MinBrightness   float64  `env:"MIN_BRIGHTNESS" envDefault:"0"`

	Mode             string        `env:"MODE" envDefault:"SEQUENCE"`
	Sequence         []string      `env:"SEQUENCE" envDefault:"#ff0000,#00ff00,#0000ff"`
	SequenceDuration time.Duration `env:"SEQUENCE_DURATION" envDefault:"2s"`
	SequenceEasing   string        `env:"SEQUENCE_EASING" envDefault:"easeInOutQuad"`

	CaptureInterval time.Duration `env:"CAPTURE_INTERVAL" envDefault:"80ms"`
	ColorAlgo       string        `env:"COLOR_ALGO" envDefault:"AVERAGE"`
	PixelGridSize   int           `env:"PIXEL_GRID_SIZE" envDefault:"5"`
	ScreenNumber    int           `env:"SCREEN_NUMBER" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c Config) pins() ([3]int, error) {
	if len(c.ChannelPins) != 3 {
		return [3]int{}, fmt.Errorf("CHANNEL_PINS needs 3 pins, got %d", len(c.ChannelPins))
	}
	return [3]int{c.ChannelPins[0], c.ChannelPins[1], c.ChannelPins[2]}, nil
}

func curve(name string) easing.Curve {
	if _, ok := easing.Lookup(name); !ok {
		logger.Warnf("unknown easing %q, using %s", name, easing.Default)
	}
	return easing.Name(name)
}

func schedulerConfig(c Config) (fader.Config, error) {
	initial, err := rgb.Parse(c.InitialColor)
	if err != nil {
		return fader.Config{}, fmt.Errorf("INITIAL_COLOR: %w", err)
	}
	pins, err := c.pins()
	if err != nil {
		return fader.Config{}, err
	}

	cfg := fader.Config{
		InitialColor:           initial,
		ChannelPins:            pins,
		TickInterval:           c.TickInterval,
		DefaultEasing:          curve(c.DefaultEasing),
		IdleDelay:              c.IdleDelay,
		IdleTransitionDuration: c.IdleTransitionDuration,
		LoopTransition:         c.LoopTransition,
		IdleCallback: func(s *fader.Scheduler) {
			logger.With("color", s.ColorHex()).Debug("Idle")
		},
	}
	if c.IdleColor != "" {
		idle, err := rgb.Parse(c.IdleColor)
		if err != nil {
			return fader.Config{}, fmt.Errorf("IDLE_COLOR: %w", err)
		}
		cfg.IdleColor = &idle
	}
	return cfg, nil
}

// newSink builds one sink per OUTPUT entry.
func newSink(ctx context.Context, c Config, fs afero.Fs) (output.Fanout, error) {
	pins, err := c.pins()
	if err != nil {
		return nil, err
	}

	var sinks output.Fanout
	for _, name := range c.Output {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "PIBLASTER":
			b, err := piblaster.Open(fs, c.PiBlasterDevice)
			if err != nil {
				_ = sinks.Close()
				return nil, err
			}
			sinks = append(sinks, b)
		case "LIFX":
			l, err := lifx.NewLifx(ctx, lifx.Config{
				GroupName:     c.LightGroupName,
				MinBrightness: c.MinBrightness,
				MaxBrightness: c.MaxBrightness,
				Pins:          pins,
				FadeDuration:  c.TickInterval,
			})
			if err != nil {
				_ = sinks.Close()
				return nil, fmt.Errorf("create LIFX light service: %w", err)
			}
			sinks = append(sinks, l)
		case "LOG":
			sinks = append(sinks, output.LogSink{})
		default:
			_ = sinks.Close()
			return nil, fmt.Errorf("unknown output: %v", name)
		}
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("no OUTPUT configured")
	}
	return sinks, nil
}
