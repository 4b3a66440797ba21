// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/mouse"
	"github.com/Norgate-AV/autoprim/internal/timeouts"
)

// FileName is the config file name inside the data directory.
const FileName = "config.yaml"

// Coordinate modes accepted in the file and on the command line.
const (
	CoordRelative = "relative"
	CoordScreen   = "screen"
)

// Process enumeration strategies.
const (
	StrategyAuto     = "auto"
	StrategyToolhelp = "toolhelp"
	StrategyPSAPI    = "psapi"
	StrategyProcfs   = "procfs"
)

// Settings is the full configuration.
type Settings struct {
	Mouse    MouseSettings    `yaml:"mouse"`
	Pixel    PixelSettings    `yaml:"pixel"`
	Process  ProcessSettings  `yaml:"process"`
	Download DownloadSettings `yaml:"download"`
	Window   WindowSettings   `yaml:"window"`
	Log      LogSettings      `yaml:"log"`
}

type MouseSettings struct {
	Speed     int           `yaml:"speed"`
	Delay     time.Duration `yaml:"delay"`
	CoordMode string        `yaml:"coord_mode"`
}

type PixelSettings struct {
	CoordMode string `yaml:"coord_mode"`
}

type ProcessSettings struct {
	Strategy string `yaml:"strategy"`
}

type DownloadSettings struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type WindowSettings struct {
	// TitleMatchMode: 1 starts with, 2 contains, 3 exact
	TitleMatchMode int `yaml:"title_match_mode"`
}

type LogSettings struct {
	MaxSize    int  `yaml:"max_size"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"`
	Compress   bool `yaml:"compress"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Mouse: MouseSettings{
			Speed:     mouse.DefaultSpeed,
			Delay:     timeouts.MouseDelay,
			CoordMode: CoordRelative,
		},
		Pixel: PixelSettings{
			CoordMode: CoordRelative,
		},
		Process: ProcessSettings{
			Strategy: StrategyAuto,
		},
		Download: DownloadSettings{
			Timeout: timeouts.DownloadTimeout,
		},
		Window: WindowSettings{
			TitleMatchMode: 1,
		},
		Log: LogSettings{
			MaxSize:    logger.DefaultLogMaxSize,
			MaxBackups: logger.DefaultLogMaxBackups,
			MaxAge:     logger.DefaultLogMaxAge,
			Compress:   true,
		},
	}
}

// DefaultPath returns the config file location in the data directory.
func DefaultPath() string {
	return filepath.Join(logger.DataDir(), FileName)
}

// Load reads settings from path. An empty path means DefaultPath, and a
// missing default file yields Default(). A missing explicit file is an error.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Settings, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (s *Settings) normalize() {
	s.Mouse.CoordMode = strings.ToLower(strings.TrimSpace(s.Mouse.CoordMode))
	s.Pixel.CoordMode = strings.ToLower(strings.TrimSpace(s.Pixel.CoordMode))
	s.Process.Strategy = strings.ToLower(strings.TrimSpace(s.Process.Strategy))
}

// Validate checks value ranges. Mouse speed is not checked here because the
// mover clamps it.
func (s *Settings) Validate() error {
	if err := ValidateCoordMode(s.Mouse.CoordMode); err != nil {
		return fmt.Errorf("mouse: %w", err)
	}

	if err := ValidateCoordMode(s.Pixel.CoordMode); err != nil {
		return fmt.Errorf("pixel: %w", err)
	}

	if s.Mouse.Delay < 0 {
		return fmt.Errorf("mouse: delay must not be negative")
	}

	switch s.Process.Strategy {
	case StrategyAuto, StrategyToolhelp, StrategyPSAPI, StrategyProcfs:
	default:
		return fmt.Errorf("process: unknown strategy %q", s.Process.Strategy)
	}

	if s.Download.Timeout < 0 {
		return fmt.Errorf("download: timeout must not be negative")
	}

	if s.Window.TitleMatchMode < 1 || s.Window.TitleMatchMode > 3 {
		return fmt.Errorf("window: title_match_mode must be 1, 2 or 3")
	}

	return nil
}

// ValidateCoordMode accepts "relative" or "screen".
func ValidateCoordMode(mode string) error {
	switch mode {
	case CoordRelative, CoordScreen:
		return nil
	default:
		return fmt.Errorf("unknown coord_mode %q (want %q or %q)", mode, CoordRelative, CoordScreen)
	}
}

// MouseCoordMode converts the configured mouse mode for the mover.
func (s *Settings) MouseCoordMode() mouse.CoordMode {
	if s.Mouse.CoordMode == CoordScreen {
		return mouse.CoordScreen
	}

	return mouse.CoordWindow
}
