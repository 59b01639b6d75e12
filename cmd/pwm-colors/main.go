package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/scheerer/pwm-colors/fader"
	"github.com/scheerer/pwm-colors/internal/follow"
	"github.com/scheerer/pwm-colors/internal/logging"
)

var logger = logging.New("main")

func main() {
	defer logger.Sync()

	var config Config
	if err := env.Parse(&config); err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to parse environment variables")
	}

	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Invalid LOG_LEVEL")
	}
	logging.GetLeveler().SetAll(level)

	logger.With(zap.Any("config", config)).Info("Starting pwm colors")
	logger.Info("MODE is one of [SEQUENCE, SCREEN, IDLE]. OUTPUT is a comma separated list of [PIBLASTER, LIFX, LOG].")
	logger.Info("Press Ctrl+C to stop")

	faderConfig, err := schedulerConfig(config)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Invalid scheduler configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())

	sink, err := newSink(ctx, config, afero.NewOsFs())
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to create output")
	}

	scheduler := fader.New(sink, faderConfig)

	go run(ctx, config, scheduler)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown
	logger.Info("Shutting down")
	cancel()

	if err := scheduler.Close(); err != nil {
		logger.With(zap.Error(err)).Warn("Failed to stop scheduler")
	}
	if err := sink.Close(); err != nil {
		logger.With(zap.Error(err)).Warn("Failed to close outputs")
	}
}

func run(ctx context.Context, config Config, scheduler *fader.Scheduler) {
	switch strings.ToUpper(config.Mode) {
	case "SEQUENCE":
		err := follow.PlaySequence(scheduler, config.Sequence, config.SequenceDuration, curve(config.SequenceEasing), config.LoopTransition)
		if err != nil {
			logger.With(zap.Error(err)).Error("Failed to queue sequence")
		}
	case "SCREEN":
		err := follow.RunScreen(ctx, follow.ScreenConfig{
			CaptureInterval: config.CaptureInterval,
			ColorAlgo:       config.ColorAlgo,
			PixelGridSize:   config.PixelGridSize,
			ScreenNumber:    config.ScreenNumber,
		}, scheduler)
		if err != nil {
			logger.With(zap.Error(err)).Error("Screen follow stopped")
		}
	case "IDLE":
	default:
		logger.Errorf("unknown mode: %v", config.Mode)
	}
}
