package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg = zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stdout"},
	}
	leveler = &levelSetter{
		levelers: make(map[string]zap.AtomicLevel),
	}
)

// Leveler adjusts the level of loggers created by New, by name or all at once.
type Leveler interface {
	SetLevel(name string, level zapcore.Level)
	GetLevel(name string) zapcore.Level
	SetAll(level zapcore.Level)
}

type levelSetter struct {
	levelers map[string]zap.AtomicLevel
	fallback zapcore.Level
	mu       sync.RWMutex
}

var _ Leveler = (*levelSetter)(nil)

func GetLeveler() Leveler {
	return leveler
}

func (lw *levelSetter) SetLevel(name string, level zapcore.Level) {
	_ = lw.setLevel(name, level)
}

func (lw *levelSetter) GetLevel(name string) zapcore.Level {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	if l, ok := lw.levelers[name]; ok {
		return l.Level()
	}

	return lw.fallback
}

// SetAll changes every registered logger and the level given to loggers
// created afterwards.
func (lw *levelSetter) SetAll(level zapcore.Level) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	lw.fallback = level
	for _, l := range lw.levelers {
		l.SetLevel(level)
	}
}

func (lw *levelSetter) register(name string) zap.AtomicLevel {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if l, ok := lw.levelers[name]; ok {
		return l
	}
	l := zap.NewAtomicLevelAt(lw.fallback)
	lw.levelers[name] = l
	return l
}

func (lw *levelSetter) setLevel(name string, level zapcore.Level) zap.AtomicLevel {
	l := lw.register(name)
	l.SetLevel(level)
	return l
}

// ParseLevel accepts the usual zap level names, case-insensitive.
func ParseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zap.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func New(name string) *zap.SugaredLogger {
	c := cfg
	c.Level = leveler.register(name)
	return zap.Must(c.Build(zap.AddStacktrace(zapcore.PanicLevel))).Named(name).Sugar()
}
