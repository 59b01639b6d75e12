package fader

import (
	"sync"
	"time"
)

// Handle is a running timer. Stop reports whether the call stopped it.
type Handle interface {
	Stop() bool
}

// Clock schedules the tick loop and the idle delay. Callbacks run on a
// goroutine owned by the clock.
type Clock interface {
	// Every calls f every d until the returned handle is stopped.
	Every(d time.Duration, f func()) Handle
	// After calls f once after d unless the handle is stopped first.
	After(d time.Duration, f func()) Handle
}

// SystemClock is backed by time.Ticker and time.AfterFunc.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) After(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}

func (systemClock) Every(d time.Duration, f func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go h.run(f)
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) run(f func()) {
	defer h.ticker.Stop()
	for {
		select {
		case <-h.ticker.C:
			f()
		case <-h.done:
			return
		}
	}
}

// Stop never waits for the ticker goroutine, so it is safe to call from f.
func (h *tickerHandle) Stop() bool {
	stopped := false
	h.once.Do(func() {
		close(h.done)
		stopped = true
	})
	return stopped
}
