// Package fader drives an RGB fixture through a queue of timed color
// transitions on a fixed tick, returning to an idle color when the queue
// drains.
//
// All Scheduler methods are safe for concurrent use and may be called from
// completion and idle handlers. Handlers run without the scheduler lock held,
// after the state change that triggered them has been made.
package fader

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/easing"
	"github.com/scheerer/pwm-colors/internal/logging"
	"github.com/scheerer/pwm-colors/output"
	"github.com/scheerer/pwm-colors/rgb"
)

var logger = logging.New("fader")

var ErrClosed = errors.New("fader: scheduler closed")

type Scheduler struct {
	sink  output.Sink
	clock Clock

	interval      time.Duration
	pins          [3]int
	defaultEasing easing.Curve
	idleCallback  Handler
	idleDelay     time.Duration
	idleDuration  time.Duration

	mu      sync.Mutex
	color   rgb.Color
	applied bool
	queue   []*entry
	loop    bool

	// ticker is non-nil while the tick loop runs. tickGen invalidates
	// ticks delivered by a handle that has since been stopped.
	ticker  Handle
	tickGen uint64

	idleColor *rgb.Color
	idleTimer Handle
	idleGen   uint64
	inIdle    bool

	closed bool
}

type Option func(*Scheduler)

// WithClock replaces SystemClock, mostly for tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// New applies cfg.InitialColor to every channel of sink and returns an idle
// scheduler.
func New(sink output.Sink, cfg Config, opts ...Option) *Scheduler {
	cfg = cfg.withDefaults()

	s := &Scheduler{
		sink:          sink,
		clock:         SystemClock,
		interval:      cfg.TickInterval,
		pins:          cfg.ChannelPins,
		defaultEasing: cfg.DefaultEasing,
		idleCallback:  cfg.IdleCallback,
		idleDelay:     cfg.IdleDelay,
		idleDuration:  cfg.IdleTransitionDuration,
		idleColor:     cfg.IdleColor,
		loop:          cfg.LoopTransition,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.apply(cfg.InitialColor)
	s.mu.Unlock()

	logger.With(
		zap.Stringer("initialColor", cfg.InitialColor),
		zap.Ints("pins", cfg.ChannelPins[:]),
		zap.Stringer("tickInterval", cfg.TickInterval)).
		Debug("Scheduler created")

	return s
}

// Transition queues a fade from the last queued color to color. A nil curve
// uses the configured default easing.
func (s *Scheduler) Transition(color any, duration time.Duration, curve easing.Curve) error {
	return s.Enqueue(color, duration, curve, nil)
}

// Change queues an instant switch to color.
func (s *Scheduler) Change(color any) error {
	return s.Enqueue(color, 0, easing.Linear, nil)
}

// TurnOff fades to black over duration.
func (s *Scheduler) TurnOff(duration time.Duration) error {
	return s.Enqueue(rgb.Black, duration, easing.Linear, nil)
}

// Delay holds the last queued color for duration before the next entry.
func (s *Scheduler) Delay(duration time.Duration) error {
	return s.enqueueAtTail(duration, nil)
}

// Trigger calls handler once every entry queued before it has completed.
func (s *Scheduler) Trigger(handler Handler) error {
	return s.enqueueAtTail(0, handler)
}

// Enqueue queues a transition to color and calls onComplete, if not nil,
// when it finishes. color is anything rgb.Parse accepts; a malformed color
// returns an error wrapping rgb.ErrInvalidColorFormat and changes nothing.
func (s *Scheduler) Enqueue(color any, duration time.Duration, curve easing.Curve, onComplete Handler) error {
	to, err := rgb.Parse(color)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.enqueue(to, duration, curve, onComplete)
	return nil
}

func (s *Scheduler) enqueueAtTail(duration time.Duration, onComplete Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.interruptIdle()
	s.enqueue(s.lastQueued(), duration, easing.Linear, onComplete)
	return nil
}

// Stop drops every queued entry without calling their handlers. The current
// color is left as is; the tick loop notices the empty queue on its next tick.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) > 0 {
		logger.With(zap.Int("dropped", len(s.queue))).Debug("Queue cleared")
		s.queue = nil
	}
}

func (s *Scheduler) SetLoopTransition(loop bool) {
	s.mu.Lock()
	s.loop = loop
	s.mu.Unlock()
}

// SetIdleColor sets the color returned to when idle. nil disables it.
func (s *Scheduler) SetIdleColor(color any) error {
	if p, ok := color.(*rgb.Color); color == nil || (ok && p == nil) {
		s.mu.Lock()
		s.idleColor = nil
		s.mu.Unlock()
		return nil
	}

	c, err := rgb.Parse(color)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.idleColor = &c
	s.mu.Unlock()
	return nil
}

// Color is the color last written to the sink.
func (s *Scheduler) Color() rgb.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

func (s *Scheduler) ColorHex() string {
	return s.Color().Hex()
}

// LastQueuedColor is the target of the last queued entry, or the current
// color when the queue is empty. With LoopTransition it moves as entries are
// requeued.
func (s *Scheduler) LastQueuedColor() rgb.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQueued()
}

func (s *Scheduler) LastQueuedColorHex() string {
	return s.LastQueuedColor().Hex()
}

// IsTransitioning reports whether the tick loop is running for anything other
// than the automatic idle transition.
func (s *Scheduler) IsTransitioning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil && !s.inIdle
}

// Pending is the number of queued entries, including the active one.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Close stops the tick loop and any idle timer. Queued entries are dropped and
// later calls to queueing methods return ErrClosed.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.queue = nil
	s.halt()
	s.cancelIdle()
	return nil
}

// apply writes every channel of c that differs from the current color, or all
// of them the first time.
func (s *Scheduler) apply(c rgb.Color) {
	prev := s.color.Channels()
	next := c.Channels()

	changed := false
	for i := range next {
		if !s.applied || prev[i] != next[i] {
			s.sink.SetChannel(s.pins[i], c.Intensity(i))
			changed = true
		}
	}
	s.color = c
	s.applied = true

	if f, ok := s.sink.(output.Flusher); ok && changed {
		f.Flush()
	}
}

// unlocked runs f with s.mu released. The lock is taken back even if f panics.
func (s *Scheduler) unlocked(f func()) {
	s.mu.Unlock()
	defer s.mu.Lock()
	f()
}
