package main

import (
	"context"
	"testing"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheerer/pwm-colors/easing"
	"github.com/scheerer/pwm-colors/output"
	"github.com/scheerer/pwm-colors/output/piblaster"
	"github.com/scheerer/pwm-colors/rgb"
)

func TestEnvDefaults(t *testing.T) {
	var c Config
	require.NoError(t, env.Parse(&c))

	assert.Equal(t, []int{4, 17, 18}, c.ChannelPins)
	assert.Equal(t, 25*time.Millisecond, c.TickInterval)
	assert.Equal(t, 4*time.Second, c.IdleTransitionDuration)
	assert.Equal(t, []string{"PIBLASTER"}, c.Output)
	assert.Equal(t, []string{"#ff0000", "#00ff00", "#0000ff"}, c.Sequence)
	assert.False(t, c.LoopTransition)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHANNEL_PINS", "22,23,24")
	t.Setenv("IDLE_COLOR", "#102030")
	t.Setenv("LOOP_TRANSITION", "true")
	t.Setenv("TICK_INTERVAL", "10ms")

	var c Config
	require.NoError(t, env.Parse(&c))
	assert.Equal(t, []int{22, 23, 24}, c.ChannelPins)
	assert.True(t, c.LoopTransition)

	cfg, err := schedulerConfig(c)
	require.NoError(t, err)
	assert.Equal(t, [3]int{22, 23, 24}, cfg.ChannelPins)
	assert.Equal(t, 10*time.Millisecond, cfg.TickInterval)
	require.NotNil(t, cfg.IdleColor)
	assert.Equal(t, rgb.Color{R: 0x10, G: 0x20, B: 0x30}, *cfg.IdleColor)
	assert.Equal(t, easing.EaseInOutQuad, cfg.DefaultEasing)
}

func TestSchedulerConfigErrors(t *testing.T) {
	base := Config{InitialColor: "#000", ChannelPins: []int{1, 2, 3}}

	c := base
	c.InitialColor = "black"
	_, err := schedulerConfig(c)
	assert.ErrorIs(t, err, rgb.ErrInvalidColorFormat)

	c = base
	c.IdleColor = "#12"
	_, err = schedulerConfig(c)
	assert.ErrorIs(t, err, rgb.ErrInvalidColorFormat)

	c = base
	c.ChannelPins = []int{1, 2}
	_, err = schedulerConfig(c)
	assert.Error(t, err)
}

func TestNewSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, piblaster.DefaultDevice, nil, 0o644))

	c := Config{
		ChannelPins:     []int{4, 17, 18},
		Output:          []string{"piblaster", " LOG "},
		PiBlasterDevice: piblaster.DefaultDevice,
	}
	sinks, err := newSink(context.Background(), c, fs)
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.IsType(t, &piblaster.Blaster{}, sinks[0])
	assert.IsType(t, output.LogSink{}, sinks[1])

	sinks.SetChannel(4, 1)
	require.NoError(t, sinks.Close())
	data, err := afero.ReadFile(fs, piblaster.DefaultDevice)
	require.NoError(t, err)
	assert.Equal(t, "4=1\n", string(data))

	c.Output = []string{"DMX"}
	_, err = newSink(context.Background(), c, fs)
	assert.Error(t, err)

	c.Output = nil
	_, err = newSink(context.Background(), c, fs)
	assert.Error(t, err)

	c.Output = []string{"PIBLASTER"}
	_, err = newSink(context.Background(), c, afero.NewMemMapFs())
	assert.Error(t, err)
}
