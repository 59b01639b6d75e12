// Package follow feeds the fader from outside sources: the average color of
// a screen, or a fixed looping sequence.
package follow

import (
	"context"
	"image"
	"time"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/easing"
	"github.com/scheerer/pwm-colors/internal/logging"
	"github.com/scheerer/pwm-colors/internal/screen"
	"github.com/scheerer/pwm-colors/rgb"
)

var logger = logging.New("follow")

// Queuer is the part of fader.Scheduler a feeder drives.
type Queuer interface {
	Transition(color any, duration time.Duration, curve easing.Curve) error
	Stop()
}

// CaptureFunc grabs one frame of a display.
type CaptureFunc func(display int) (*image.RGBA, error)

type ScreenConfig struct {
	CaptureInterval time.Duration
	ColorAlgo       string
	PixelGridSize   int
	ScreenNumber    int
	// Capture defaults to screenshot.CaptureDisplay.
	Capture CaptureFunc
}

// RunScreen samples the screen every CaptureInterval and fades towards the
// sampled color over the same interval, replacing whatever was still queued.
// It returns when ctx is done.
func RunScreen(ctx context.Context, config ScreenConfig, q Queuer) error {
	sample, err := screen.SamplerByName(config.ColorAlgo)
	if err != nil {
		return err
	}
	capture := config.Capture
	if capture == nil {
		capture = screenshot.CaptureDisplay
	}

	ticker := time.NewTicker(config.CaptureInterval)
	defer ticker.Stop()

	var last rgb.Color
	var haveLast bool
	var lastWarning time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		startTime := time.Now()
		img, err := capture(config.ScreenNumber)
		captureScreenDuration := time.Since(startTime)
		if err != nil {
			logger.With(zap.Error(err)).Error("Failed to capture screen")
			continue
		}

		colorCalculationStart := time.Now()
		c := sample(img, config.PixelGridSize)
		colorCalculationDuration := time.Since(colorCalculationStart)

		if ctx.Err() != nil {
			// cancelled while capturing - don't queue a stale color
			return nil
		}

		if !haveLast || c != last {
			q.Stop()
			if err := q.Transition(c, config.CaptureInterval, easing.Linear); err != nil {
				logger.With(zap.Stringer("color", c), zap.Error(err)).Error("Failed to queue screen color")
			}
			last, haveLast = c, true
		}

		totalDuration := time.Since(startTime)
		if totalDuration > config.CaptureInterval && time.Since(lastWarning) > 10*time.Second {
			logger.With(
				zap.Stringer("captureScreenDuration", captureScreenDuration),
				zap.Stringer("colorCalculationDuration", colorCalculationDuration),
				zap.Stringer("totalDuration", totalDuration)).
				Warn("Cannot keep up with CAPTURE_INTERVAL. Consider increasing PIXEL_GRID_SIZE or increasing CAPTURE_INTERVAL.")
			lastWarning = time.Now()
		}
	}
}
