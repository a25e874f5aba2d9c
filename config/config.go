// Package config loads the viewer configuration from YAML and sets up
// logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/folio/menu"
	"github.com/phanxgames/folio/permission"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level configuration file.
type Config struct {
	LogLevel    string                       `yaml:"log_level"`
	Menu        MenuConfig                   `yaml:"menu"`
	Window      WindowConfig                 `yaml:"window"`
	Permissions map[string]permission.Policy `yaml:"permissions"`
}

// MenuConfig tunes the page menu.
type MenuConfig struct {
	GracePeriod time.Duration `yaml:"grace_period"`
	FadeIn      time.Duration `yaml:"fade_in"`
	FollowLerp  float64       `yaml:"follow_lerp"`
	Channel     string        `yaml:"channel"`
}

// WindowConfig sizes the viewer window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns the built-in configuration. The default channel lets the
// local participant pin as owner.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the YAML file at path. Missing fields take
// their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Menu.GracePeriod == 0 {
		c.Menu.GracePeriod = menu.DefaultGracePeriod
	}
	if c.Menu.FadeIn == 0 {
		c.Menu.FadeIn = 150 * time.Millisecond
	}
	if c.Menu.FollowLerp == 0 {
		c.Menu.FollowLerp = 0.25
	}
	if c.Menu.Channel == "" {
		c.Menu.Channel = "lobby"
	}
	if c.Window.Title == "" {
		c.Window.Title = "folio"
	}
	if c.Window.Width == 0 {
		c.Window.Width = 960
	}
	if c.Window.Height == 0 {
		c.Window.Height = 640
	}
	if c.Permissions == nil {
		c.Permissions = map[string]permission.Policy{
			c.Menu.Channel: {PinRoles: []string{"owner", "moderator"}, Role: "owner"},
		}
	}
}

// Validate checks value ranges. Errors wrap ErrInvalid.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Menu.GracePeriod < 0 {
		return fmt.Errorf("%w: menu.grace_period must not be negative", ErrInvalid)
	}
	if c.Menu.FadeIn < 0 {
		return fmt.Errorf("%w: menu.fade_in must not be negative", ErrInvalid)
	}
	if c.Menu.FollowLerp < 0 || c.Menu.FollowLerp > 1 {
		return fmt.Errorf("%w: menu.follow_lerp must be within [0, 1]", ErrInvalid)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: window size must not be negative", ErrInvalid)
	}
	return nil
}

// NewLogger returns a console logger writing to w at level. Unknown levels
// fall back to info.
func NewLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
