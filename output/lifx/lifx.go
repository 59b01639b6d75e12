package lifx

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pdf/golifx"
	"github.com/pdf/golifx/common"
	"github.com/pdf/golifx/protocol"
	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/internal/logging"
	"github.com/scheerer/pwm-colors/output"
	"github.com/scheerer/pwm-colors/rgb"
)

var logger = logging.New("lifx")

// colorSetter is the part of common.Group the sink needs.
type colorSetter interface {
	SetColor(color common.Color, duration time.Duration) error
}

// Lights collects the three channel writes of each applied color and sends
// them to a LIFX group as a single HSBK color on Flush.
type Lights struct {
	config Config
	client *golifx.Client

	mu      sync.Mutex
	group   colorSetter
	pending [3]float64
	dirty   bool
}

var (
	_ output.Sink    = (*Lights)(nil)
	_ output.Flusher = (*Lights)(nil)
)

type Config struct {
	GroupName     string
	MaxBrightness float64
	MinBrightness float64
	// Pins maps fader channel pins to red, green and blue.
	Pins [3]int
	// FadeDuration is handed to the bulbs so they smooth between ticks.
	FadeDuration time.Duration
}

func NewLifx(ctx context.Context, config Config) (*Lights, error) {
	client, err := golifx.NewClient(&protocol.V2{})
	if err != nil {
		return nil, err
	}

	l := &Lights{
		config: config,
		client: client,
	}
	go l.Start(ctx)
	return l, nil
}

func (l *Lights) Start(ctx context.Context) {
	discoveryInterval := 15 * time.Second
	ticker := time.NewTicker(discoveryInterval)
	defer ticker.Stop()

	if err := l.client.SetDiscoveryInterval(discoveryInterval); err != nil {
		logger.With(zap.Error(err)).Warn("Failed to set LIFX discovery interval")
	}

	timeout := 5 * time.Second
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	l.discover(ctxWithTimeout)
	cancel()

	for {
		select {
		case <-ticker.C:
			ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
			l.discover(ctxWithTimeout)
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

func (l *Lights) discover(ctx context.Context) {
	logger.With(zap.String("group", l.config.GroupName)).Debug("LIFX discovery starting...")

	type result struct {
		group common.Group
		err   error
	}
	completed := make(chan result, 1)

	go func() {
		g, err := l.client.GetGroupByLabel(l.config.GroupName)
		completed <- result{g, err}
	}()

	select {
	case <-ctx.Done():
		logger.With(zap.Error(ctx.Err())).Warn("LIFX discovery timed out")
	case res := <-completed:
		if res.err != nil || res.group == nil {
			logger.With(zap.String("group", l.config.GroupName), zap.Error(res.err)).Warn("Couldn't discover LIFX group")
			return
		}
		logger.With(zap.String("group", res.group.GetLabel()), zap.Int("lights", len(res.group.Lights()))).Debug("LIFX group found")
		l.mu.Lock()
		l.group = res.group
		l.mu.Unlock()
	}
}

func (l *Lights) SetChannel(pin int, intensity float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.config.Pins {
		if p == pin {
			l.pending[i] = output.Clamp(intensity)
			l.dirty = true
		}
	}
}

// Flush sends the accumulated color if any channel changed since the last one.
func (l *Lights) Flush() {
	l.mu.Lock()
	if !l.dirty || l.group == nil {
		l.mu.Unlock()
		return
	}
	group := l.group
	color := rgb.Color{
		R: uint8(math.Round(l.pending[0] * 255)),
		G: uint8(math.Round(l.pending[1] * 255)),
		B: uint8(math.Round(l.pending[2] * 255)),
	}
	l.dirty = false
	l.mu.Unlock()

	lifxColor := adjustColor(newLifxColor(color), l.config)

	logger.With(zap.Stringer("color", color), zap.Any("lifxColor", lifxColor)).Debug("Setting LIFX group color")

	if err := group.SetColor(lifxColor, l.config.FadeDuration); err != nil {
		logger.With(zap.Error(err)).Warn("Failed to set color for LIFX group")
	}
}

func (l *Lights) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

func newLifxColor(color rgb.Color) common.Color {
	hue, saturation, brightness := color.HSB()

	return common.Color{
		Hue:        hue,
		Saturation: saturation,
		Brightness: brightness,
		Kelvin:     3500,
	}
}

func adjustColor(color common.Color, config Config) common.Color {
	blackThreshold := 0.015 * 0xFFFF
	if color.Brightness <= uint16(blackThreshold) && color.Saturation <= uint16(blackThreshold) {
		// blackish color - turn off the light
		return common.Color{
			Hue:        0,
			Saturation: 0,
			Brightness: 0,
			Kelvin:     3500,
		}
	}

	maxBrightness := config.MaxBrightness
	if maxBrightness <= 0 {
		maxBrightness = 1
	}
	color.Brightness = uint16(math.Min(maxBrightness*0xFFFF, math.Max(config.MinBrightness*0xFFFF, float64(color.Brightness))))

	return color
}
