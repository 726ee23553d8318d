// SnapCook — point a camera at your kitchen, get recipe ideas.
//
// Usage:
//
//	snapcook [-verbose] [-quiet] [-no-camera]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/snapcook/snapcook/internal/app"
	"github.com/snapcook/snapcook/internal/camera"
	"github.com/snapcook/snapcook/internal/config"
	"github.com/snapcook/snapcook/internal/display"
	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
	"github.com/snapcook/snapcook/internal/provider"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".snapcook-logs/snapcook.log", "file to write logs to (use \"stderr\" to log to console)")
	noCamera := flag.Bool("no-camera", false, "run without a capture device (file and manual entry only)")
	device := flag.String("device", "", "video device path (overrides config)")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs like
	// the GStreamer bindings) to the same output so it doesn't corrupt
	// the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gateway := provider.FromConfig(cfg, log)
	log.Info("vision provider: %s", gateway.Name())

	// Without a camera the app still runs; scanning reports the device
	// as unavailable and file/manual entry remains usable.
	var cam domain.Camera
	if !*noCamera {
		path := cfg.Camera.Device
		if *device != "" {
			path = *device
		}
		cam = camera.NewWebcam(path, log)
		log.Info("camera device: %s", path)
	} else {
		log.Info("camera disabled")
	}

	ctrl := app.New(gateway, cam, log,
		app.WithCaptureQuality(cfg.Camera.Quality),
	)

	if err := display.Run(ctx, ctrl); err != nil {
		log.Error("display: %v", err)
		os.Exit(1)
	}
}
