package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/hue-tracker/app"
	"github.com/soocke/hue-tracker/config"
	"github.com/soocke/hue-tracker/debug"
)

func main() {
	cfgPath := flag.String("config", "", "path to the JSON config file (default: user config dir)")
	debugFlag := flag.Bool("debug", false, "log goroutine and memory diagnostics")
	logLevel := flag.String("log-level", "", "override log level: debug, info, warn, error")
	flag.Parse()

	path := *cfgPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, loadErr := config.DefaultConfig(), error(nil)
	if path != "" {
		cfg, loadErr = config.Load(path)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		_ = cfg.Validate()
	}

	level := new(slog.LevelVar)
	level.Set(cfg.Level())
	logger := NewLogger(level, os.Stderr)
	if loadErr != nil {
		logger.Warn("config load failed, using defaults", "path", path, "error", loadErr)
	}
	if cfg.Debug {
		debug.StartGoroutineLogger(10*time.Second, logger.With("component", "goroutines"))
		debug.StartMemLogger(10*time.Second, logger.With("component", "memstats"))
	}

	c := app.BuildContainer(cfg, path, logger, level)
	application := app.NewApp("Hue Tracker", 900, 820, c)
	application.Start(flag.Arg(0))
}
