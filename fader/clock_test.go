package fader

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// manualClock fires tickers and timers only when Advance is called, in time
// order, on the calling goroutine.
type manualClock struct {
	now    time.Duration
	events []*manualEvent
}

type manualEvent struct {
	at      time.Duration
	every   time.Duration
	f       func()
	stopped bool
}

func (e *manualEvent) Stop() bool {
	if e.stopped {
		return false
	}
	e.stopped = true
	return true
}

func (c *manualClock) Every(d time.Duration, f func()) Handle {
	e := &manualEvent{at: c.now + d, every: d, f: f}
	c.events = append(c.events, e)
	return e
}

func (c *manualClock) After(d time.Duration, f func()) Handle {
	e := &manualEvent{at: c.now + d, f: f}
	c.events = append(c.events, e)
	return e
}

func (c *manualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var next *manualEvent
		for _, e := range c.events {
			if !e.stopped && e.at <= target && (next == nil || e.at < next.at) {
				next = e
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.stopped = true
		}
		next.f()
	}
	c.now = target
}

// tickers counts running Every handles.
func (c *manualClock) tickers() int {
	n := 0
	for _, e := range c.events {
		if !e.stopped && e.every > 0 {
			n++
		}
	}
	return n
}

func TestManualClockOrdering(t *testing.T) {
	c := &manualClock{}
	var got []string
	c.Every(10*time.Millisecond, func() { got = append(got, "tick") })
	timer := c.After(25*time.Millisecond, func() { got = append(got, "timer") })
	c.After(15*time.Millisecond, func() { got = append(got, "early") })

	c.Advance(30 * time.Millisecond)
	assert.Equal(t, []string{"tick", "early", "tick", "timer", "tick"}, got)
	assert.False(t, timer.Stop())
	assert.Equal(t, 1, c.tickers())
}

func TestSystemClockTicker(t *testing.T) {
	var n atomic.Int32
	h := SystemClock.Every(time.Millisecond, func() { n.Add(1) })
	assert.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	assert.True(t, h.Stop())
	assert.False(t, h.Stop())
}

func TestSystemClockAfter(t *testing.T) {
	var fired atomic.Bool
	SystemClock.After(time.Millisecond, func() { fired.Store(true) })
	assert.Eventually(t, fired.Load, time.Second, time.Millisecond)

	var cancelled atomic.Bool
	h := SystemClock.After(time.Hour, func() { cancelled.Store(true) })
	assert.True(t, h.Stop())
	assert.False(t, cancelled.Load())
}
