// Package piblaster writes channel intensities to a pi-blaster daemon FIFO,
// one "PIN=VALUE" line per write.
package piblaster

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/internal/logging"
	"github.com/scheerer/pwm-colors/output"
)

var logger = logging.New("piblaster")

const DefaultDevice = "/dev/pi-blaster"

type Blaster struct {
	path string

	mu   sync.Mutex
	file afero.File
}

var _ output.Sink = (*Blaster)(nil)

// Open opens the pi-blaster FIFO at path for writing. The FIFO must already
// exist; pi-blaster creates it on startup.
func Open(fs afero.Fs, path string) (*Blaster, error) {
	if path == "" {
		path = DefaultDevice
	}
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return nil, fmt.Errorf("open pi-blaster device %s: %w", path, err)
	}
	return &Blaster{path: path, file: f}, nil
}

func (b *Blaster) SetChannel(pin int, intensity float64) {
	line := strconv.Itoa(pin) + "=" + strconv.FormatFloat(output.Clamp(intensity), 'f', -1, 64) + "\n"
	if err := b.write(line); err != nil {
		logger.With(zap.String("device", b.path), zap.Int("pin", pin), zap.Error(err)).Error("Failed to set PWM")
	}
}

// Release hands the pin back to the system so it stops outputting PWM.
func (b *Blaster) Release(pin int) error {
	return b.write("release " + strconv.Itoa(pin) + "\n")
}

func (b *Blaster) write(line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file == nil {
		return os.ErrClosed
	}
	_, err := b.file.WriteString(line)
	return err
}

func (b *Blaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	return err
}
