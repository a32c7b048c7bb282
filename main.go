package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/pflag"

	"MyLocalSketch/internal/config"
	"MyLocalSketch/internal/logging"
	"MyLocalSketch/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		width      int
		height     int
		logLevel   string
		trace      bool
	)

	pflag.StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")
	pflag.IntVar(&width, "width", 0, "Canvas width in pixels (overrides config)")
	pflag.IntVar(&height, "height", 0, "Canvas height in pixels (overrides config)")
	pflag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pflag.BoolVar(&trace, "trace", false, "Log every raster call at debug level")
	pflag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if pflag.CommandLine.Changed("width") {
		cfg.Canvas.Width = width
	}
	if pflag.CommandLine.Changed("height") {
		cfg.Canvas.Height = height
	}
	if pflag.CommandLine.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if pflag.CommandLine.Changed("trace") {
		cfg.Log.Trace = trace
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		return 1
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	a := app.New()
	board, err := ui.NewBoardWidget(cfg)
	if err != nil {
		logging.Logger().Error("failed to create board", "err", err)
		return 1
	}
	logging.Logger().Info("starting sketch pad",
		"width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "mode", cfg.Defaults.Mode)

	ui.RunApp(a, board)
	return 0
}
