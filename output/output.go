// Package output is the boundary between the fader and whatever drives the
// light: a PWM daemon, a network bulb or a log.
package output

import (
	"io"
	"math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/internal/logging"
)

var logger = logging.New("output")

// Sink receives channel intensities in [0,1]. A failing write cannot be
// reported back to the fader, so implementations log their own errors.
type Sink interface {
	SetChannel(pin int, intensity float64)
}

// Flusher is implemented by sinks that batch channel writes. Flush is called
// once after every applied color that changed at least one channel.
type Flusher interface {
	Flush()
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(pin int, intensity float64)

func (f SinkFunc) SetChannel(pin int, intensity float64) {
	f(pin, intensity)
}

// Fanout writes every channel to all of its sinks.
type Fanout []Sink

var (
	_ Sink      = Fanout(nil)
	_ Flusher   = Fanout(nil)
	_ io.Closer = Fanout(nil)
)

func (f Fanout) SetChannel(pin int, intensity float64) {
	for _, s := range f {
		s.SetChannel(pin, intensity)
	}
}

func (f Fanout) Flush() {
	for _, s := range f {
		if fl, ok := s.(Flusher); ok {
			fl.Flush()
		}
	}
}

// Close closes every sink that is an io.Closer and returns the combined error.
func (f Fanout) Close() error {
	var err error
	for _, s := range f {
		if c, ok := s.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

// LogSink writes channel changes to a logger at debug level.
type LogSink struct {
	Logger *zap.SugaredLogger
}

func (l LogSink) SetChannel(pin int, intensity float64) {
	lg := l.Logger
	if lg == nil {
		lg = logger
	}
	lg.With(zap.Int("pin", pin), zap.Float64("intensity", intensity)).Debug("Set channel")
}

// Clamp limits an intensity to [0,1].
func Clamp(intensity float64) float64 {
	if intensity < 0 || math.IsNaN(intensity) {
		return 0
	}
	if intensity > 1 {
		return 1
	}
	return intensity
}
