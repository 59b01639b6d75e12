package fader

import (
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/easing"
	"github.com/scheerer/pwm-colors/rgb"
)

// entry is one queued transition. Only the queue head ever has elapsed > 0.
type entry struct {
	from       rgb.Color
	to         rgb.Color
	elapsed    time.Duration
	total      time.Duration
	ease       easing.Func
	onComplete Handler
}

func (e *entry) done() bool {
	return e.elapsed >= e.total
}

// color is the interpolated color at the entry's current progress.
func (e *entry) color() rgb.Color {
	progress := float64(e.elapsed) / float64(e.total)
	return e.from.Lerp(e.to, e.ease(progress))
}

func (s *Scheduler) lastQueued() rgb.Color {
	if n := len(s.queue); n > 0 {
		return s.queue[n-1].to
	}
	return s.color
}

// interruptIdle abandons a running idle transition.
func (s *Scheduler) interruptIdle() {
	if !s.inIdle {
		return
	}
	s.inIdle = false
	s.queue = nil
	logger.Debug("Idle transition interrupted")
}

func (s *Scheduler) enqueue(to rgb.Color, duration time.Duration, curve easing.Curve, onComplete Handler) {
	s.interruptIdle()

	if duration < 0 {
		duration = 0
	}
	if curve == nil {
		curve = s.defaultEasing
	}

	// Too short to ever be seen mid-way: skip the queue and the timer.
	if !s.loop && len(s.queue) == 0 && duration < s.interval/2 {
		s.apply(to)
		if onComplete != nil {
			s.unlocked(func() { onComplete(s) })
		}
		return
	}

	s.queue = append(s.queue, &entry{
		from:       s.lastQueued(),
		to:         to,
		total:      duration,
		ease:       easing.Resolve(curve),
		onComplete: onComplete,
	})
	s.cancelIdle()
	s.start()
}

func (s *Scheduler) start() {
	if s.ticker != nil || s.closed {
		return
	}
	s.tickGen++
	gen := s.tickGen
	s.ticker = s.clock.Every(s.interval, func() { s.tick(gen) })
	logger.Debug("Tick loop started")
}

func (s *Scheduler) halt() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	s.tickGen++
	logger.Debug("Tick loop stopped")
}

// tick advances the queue by one interval. Time left over after an entry
// completes carries into the next one, so entries shorter than a tick
// (including zero-length triggers) all finish within the tick they fall in.
func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil || gen != s.tickGen {
		return
	}

	budget := s.interval
	stalled := 0
	for len(s.queue) > 0 {
		head := s.queue[0]
		if budget <= 0 && !head.done() {
			break
		}

		head.elapsed += budget
		budget = max(head.elapsed-head.total, 0)
		if !head.done() {
			break
		}

		s.queue[0] = nil
		s.queue = s.queue[1:]

		looping := s.loop && !s.inIdle
		if looping {
			head.elapsed = 0
			head.from = s.lastQueued()
			s.queue = append(s.queue, head)
		}
		if len(s.queue) == 0 {
			s.apply(head.to)
		}

		if head.onComplete != nil {
			s.unlocked(func() { head.onComplete(s) })
			if gen != s.tickGen {
				// closed from the handler
				return
			}
		}

		if head.total > 0 {
			stalled = 0
			continue
		}
		// a looping queue of zero-length entries never consumes the budget
		stalled++
		if looping && len(s.queue) > 0 && stalled >= len(s.queue) {
			s.apply(head.to)
			break
		}
	}

	if len(s.queue) == 0 {
		s.halt()
		s.inIdle = false
		s.becomeIdle()
		return
	}

	if head := s.queue[0]; !head.done() {
		s.apply(head.color())
	}
}

func (s *Scheduler) logQueue(msg string) {
	logger.With(zap.Int("pending", len(s.queue)), zap.Stringer("color", s.color)).Debug(msg)
}
