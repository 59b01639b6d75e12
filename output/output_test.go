package output

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

type write struct {
	pin       int
	intensity float64
}

type recordingSink struct {
	writes  []write
	flushes int
	err     error
	closed  bool
}

func (r *recordingSink) SetChannel(pin int, intensity float64) {
	r.writes = append(r.writes, write{pin, intensity})
}

func (r *recordingSink) Flush() {
	r.flushes++
}

func (r *recordingSink) Close() error {
	r.closed = true
	return r.err
}

func TestFanout(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	var plain []write
	f := Fanout{a, b, SinkFunc(func(pin int, intensity float64) {
		plain = append(plain, write{pin, intensity})
	})}

	f.SetChannel(17, 0.5)
	f.Flush()

	want := []write{{17, 0.5}}
	assert.Equal(t, want, a.writes)
	assert.Equal(t, want, b.writes)
	assert.Equal(t, want, plain)
	assert.Equal(t, 1, a.flushes)
	assert.Equal(t, 1, b.flushes)
}

func TestFanoutCloseCombinesErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := &recordingSink{err: errA}
	b := &recordingSink{err: errB}
	c := &recordingSink{}

	err := Fanout{a, b, c}.Close()
	assert.True(t, a.closed && b.closed && c.closed)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Len(t, multierr.Errors(err), 2)

	assert.NoError(t, Fanout{c}.Close())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.1))
	assert.Equal(t, 1.0, Clamp(1.2))
	assert.Equal(t, 0.25, Clamp(0.25))
	assert.Equal(t, 0.0, Clamp(math.NaN()))
}

func TestLogSinkDefaultsLogger(t *testing.T) {
	assert.NotPanics(t, func() { LogSink{}.SetChannel(4, 1) })
}
