package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"motion-marker/internal/capture"
	"motion-marker/internal/logger"
	"motion-marker/internal/motion"
	"motion-marker/internal/pipeline"
	"motion-marker/internal/shutdown"
	"motion-marker/internal/viewer"
)

const (
	AppName    = "Motion Marker"
	AppVersion = "1.0.0"
)

type config struct {
	source   string
	output   string
	preview  bool
	logLevel string

	noise float64
	adapt int
	low   float64
	high  float64
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.source, "source", "0", "camera device index or video file path")
	flag.StringVar(&cfg.output, "output", "", "write the highlighted stream to this file (MJPG)")
	flag.BoolVar(&cfg.preview, "preview", false, "show the highlighted stream in a window")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.Float64Var(&cfg.noise, "noise-threshold", motion.DefaultNoiseThreshold,
		"color distance below which a pixel counts as unchanged background")
	flag.IntVar(&cfg.adapt, "adapt-after", motion.DefaultAdaptAfter,
		"frames of continuous change before the background absorbs a pixel")
	flag.Float64Var(&cfg.low, "low-threshold", motion.DefaultLowThreshold,
		"intensity below which a pixel is dropped from the mask")
	flag.Float64Var(&cfg.high, "high-threshold", motion.DefaultHighThreshold,
		"intensity at which a pixel is kept outright")
	flag.Parse()
	return cfg
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func main() {
	cfg := parseFlags()
	log := logger.NewConsoleLogger(parseLevel(cfg.logLevel))

	log.Info("Main", "starting", map[string]interface{}{
		"app":     AppName,
		"version": AppVersion,
		"source":  cfg.source,
	})

	if err := run(cfg, log); err != nil {
		log.Error("Main", err, nil)
		os.Exit(1)
	}
}

func run(cfg config, log logger.Logger) error {
	source, err := capture.Open(cfg.source, log)
	if err != nil {
		return err
	}

	manager := shutdown.NewManager(log)
	manager.Register("source", source.Close)
	manager.Listen()

	filter := motion.New(motion.Options{
		NoiseThreshold: cfg.noise,
		AdaptAfter:     cfg.adapt,
		LowThreshold:   cfg.low,
		HighThreshold:  cfg.high,
		Highlight:      motion.DefaultHighlight,
	}, log)

	var sinks []pipeline.Sink

	if cfg.output != "" {
		width, height := source.Size()
		recorder, err := capture.NewRecorder(cfg.output, source.FPS(), width, height, log)
		if err != nil {
			manager.Shutdown()
			return err
		}
		manager.Register("recorder", recorder.Close)
		sinks = append(sinks, recorder)
	}

	var view *viewer.Viewer
	if cfg.preview {
		width, height := source.Size()
		view = viewer.New(AppName, width, height, log)
		sinks = append(sinks, view)
	}

	runner := pipeline.NewRunner(source, filter, log, sinks...)

	if view != nil {
		// The fyne event loop owns the main goroutine; the pipeline
		// runs beside it and closes the window when the stream ends.
		errCh := make(chan error, 1)
		go func() {
			errCh <- runner.Run(manager.Context())
			view.Stop()
		}()
		view.Run(manager.Shutdown)
		manager.Shutdown()
		return <-errCh
	}

	defer manager.Shutdown()
	return runner.Run(manager.Context())
}
