package fader

import "go.uber.org/zap"

// becomeIdle runs once the tick loop has stopped on an empty queue.
func (s *Scheduler) becomeIdle() {
	s.cancelIdle()
	if s.idleDelay <= 0 {
		s.onIdle()
		return
	}

	gen := s.idleGen
	s.idleTimer = s.clock.After(s.idleDelay, func() { s.fireIdle(gen) })
	logger.With(zap.Stringer("delay", s.idleDelay)).Debug("Idle timer armed")
}

func (s *Scheduler) fireIdle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idleTimer == nil || gen != s.idleGen {
		return
	}
	s.idleTimer = nil
	s.onIdle()
}

// cancelIdle disarms a pending idle timer. Any callback already in flight is
// ignored through idleGen.
func (s *Scheduler) cancelIdle() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	s.idleGen++
}

func (s *Scheduler) onIdle() {
	s.logQueue("Idle")

	if s.idleCallback != nil {
		s.unlocked(func() { s.idleCallback(s) })
	}

	// the callback may have queued something or closed the scheduler
	if s.ticker != nil || s.closed || s.idleColor == nil {
		return
	}
	idle := *s.idleColor
	if s.color.Equal(idle) {
		return
	}

	s.enqueue(idle, s.idleDuration, s.defaultEasing, nil)
	// an instant idle change never starts the loop
	s.inIdle = s.ticker != nil
	if s.inIdle {
		logger.With(zap.Stringer("idleColor", idle)).Debug("Returning to idle color")
	}
}
