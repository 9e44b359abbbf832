package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for playback, overlay and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`

	// Display
	DisplayWidth int `json:"display_width"`

	// Overlay stroke
	MarkerColor string  `json:"marker_color"`
	MarkerWidth float64 `json:"marker_width"`

	// Playback
	FallbackFPS float64 `json:"fallback_fps"`

	// UI
	ToastSeconds int    `json:"toast_seconds"`
	LastDir      string `json:"last_dir"`
}

const appDir = "hue-tracker"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		LogLevel:     "info",
		DisplayWidth: 640,
		MarkerColor:  "#39FF14",
		MarkerWidth:  4,
		FallbackFPS:  30,
		ToastSeconds: 3,
		LastDir:      "",
	}
}

// DefaultPath returns the per-user config file location, creating the parent
// directory when needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appDir, "config.json"))
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	if c.DisplayWidth < 160 || c.DisplayWidth > 3840 {
		c.DisplayWidth = 640
	}
	if !hexColor.MatchString(c.MarkerColor) {
		c.MarkerColor = "#39FF14"
	}
	if c.MarkerWidth <= 0 || c.MarkerWidth > 32 {
		c.MarkerWidth = 4
	}
	if c.FallbackFPS <= 0 || c.FallbackFPS > 240 {
		c.FallbackFPS = 30
	}
	if c.ToastSeconds <= 0 {
		c.ToastSeconds = 3
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
