// Package config loads the studio command's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/studio/render"
)

// ErrInvalid wraps every configuration error.
var ErrInvalid = errors.New("config: invalid configuration")

// Duration is a time.Duration written as a Go duration string ("15s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the command configuration. Flags override file values.
type Config struct {
	Backend      string   `toml:"backend"`
	Background   string   `toml:"background"`
	Grid         bool     `toml:"grid"`
	Format       string   `toml:"format"`
	Quality      float64  `toml:"quality"`
	AssetTimeout Duration `toml:"asset_timeout"`
	AssetDir     string   `toml:"asset_dir"`
	Concurrency  int      `toml:"concurrency"`
	LogLevel     string   `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend:      "canvas",
		Background:   render.DefaultBackground,
		Format:       string(render.FormatPNG),
		Quality:      0.92,
		AssetTimeout: Duration(15 * time.Second),
		Concurrency:  4,
		LogLevel:     "info",
	}
}

// Load reads the file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := render.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalid, err)
	}
	if c.Quality < 0 || c.Quality > 1 {
		return fmt.Errorf("%w: quality %g outside [0, 1]", ErrInvalid, c.Quality)
	}
	if c.AssetTimeout < 0 {
		return fmt.Errorf("%w: negative asset_timeout", ErrInvalid)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return l, nil
}

// ExportFormat returns the parsed Format.
func (c Config) ExportFormat() render.Format {
	f, err := render.ParseFormat(c.Format)
	if err != nil {
		return render.FormatPNG
	}
	return f
}
