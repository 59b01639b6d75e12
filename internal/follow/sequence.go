package follow

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/easing"
)

// Looper is the part of fader.Scheduler a sequence needs.
type Looper interface {
	Transition(color any, duration time.Duration, curve easing.Curve) error
	SetLoopTransition(loop bool)
}

// PlaySequence queues a transition to each color in turn and, when loop is
// set, keeps cycling through them until the scheduler is stopped.
func PlaySequence(l Looper, colors []string, duration time.Duration, curve easing.Curve, loop bool) error {
	if len(colors) == 0 {
		return fmt.Errorf("empty color sequence")
	}

	l.SetLoopTransition(loop)
	for i, c := range colors {
		if err := l.Transition(c, duration, curve); err != nil {
			return fmt.Errorf("sequence color %d: %w", i, err)
		}
	}
	logger.With(zap.Strings("colors", colors), zap.Stringer("duration", duration), zap.Bool("loop", loop)).Info("Sequence queued")
	return nil
}
