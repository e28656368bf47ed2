// Package config defines the MarqueeView configuration format and helpers for
// loading or saving it to disk as JSON or YAML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edward-ap/marqueeview/internal/marquee"
)

const (
	// AppID is the stable application identifier used for config storage.
	AppID = "marqueeview"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "MarqueeView"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "config.json"

	// DefaultText is shown when no text is configured.
	DefaultText = "MarqueeView: a self-scrolling single-line text display. Press Start to run it again."
	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 480
	// DefaultHeight is the preferred window height.
	DefaultHeight = 120
	// MinWindowWidth keeps the control buttons visible.
	MinWindowWidth = 320
	// DefaultFrameRate is how often hosts sample the animation.
	DefaultFrameRate = 60
	// MaxFrameRate caps the sampling rate.
	MaxFrameRate = 240

	// InterpolatorLinear keeps velocity constant for a pass.
	InterpolatorLinear = "linear"
	// InterpolatorDecelerate eases into the end of a pass.
	InterpolatorDecelerate = "decelerate"
)

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	Text         string `json:"text" yaml:"text"`
	Speed        int    `json:"speed" yaml:"speed"`
	Mode         string `json:"mode" yaml:"mode"`
	FirstDelayMs int    `json:"firstDelayMs" yaml:"firstDelayMs"`
	Interpolator string `json:"interpolator,omitempty" yaml:"interpolator,omitempty"`
	FrameRateHz  int    `json:"frameRateHz" yaml:"frameRateHz"`
	WindowW      int    `json:"windowW" yaml:"windowW"`
	WindowH      int    `json:"windowH" yaml:"windowH"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to config.json.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Load reads the config from the default location, creating it with defaults
// on first run.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		// Try saving an initial config, but still return defaults even if it fails.
		_ = cfg.SaveFile(path)
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads path as YAML when it ends in .yaml or .yml, JSON otherwise.
// Out-of-range values are replaced with defaults.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// fields missing from the file keep their defaults
	cfg := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(b, cfg)
	} else {
		err = json.Unmarshal(b, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration to the default location.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the configuration to path, creating directories as needed.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var (
		b   []byte
		err error
	)
	if isYAML(path) {
		b, err = yaml.Marshal(c)
	} else {
		b, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Default builds an in-memory config populated with safe defaults.
func Default() *Config {
	cfg := &Config{
		Text:         DefaultText,
		Speed:        marquee.DefaultSpeed,
		Mode:         marquee.ModeForever.String(),
		FirstDelayMs: int(marquee.DefaultFirstDelay / time.Millisecond),
		Interpolator: InterpolatorLinear,
		FrameRateHz:  DefaultFrameRate,
		WindowW:      DefaultWidth,
		WindowH:      DefaultHeight,
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// Marquee converts the persisted values into a session configuration.
func (c *Config) Marquee() marquee.Config {
	mode, err := marquee.ParseMode(c.Mode)
	if err != nil {
		mode = marquee.ModeForever
	}
	out := marquee.Config{
		Speed:      c.Speed,
		Mode:       mode,
		FirstDelay: time.Duration(c.FirstDelayMs) * time.Millisecond,
	}
	if strings.EqualFold(c.Interpolator, InterpolatorDecelerate) {
		out.Interpolator = marquee.Decelerate
	}
	return out
}

// FrameInterval is the time between two samples of the animation.
func (c *Config) FrameInterval() time.Duration {
	hz := c.FrameRateHz
	if hz <= 0 {
		hz = DefaultFrameRate
	}
	return time.Second / time.Duration(hz)
}

// applyRuntimeDefaults clamps invalid values back to defaults rather than
// rejecting the whole file, so the UI always receives sane inputs.
func (c *Config) applyRuntimeDefaults() {
	if strings.TrimSpace(c.Text) == "" {
		c.Text = DefaultText
	}
	if c.Speed <= 0 {
		log.Printf("config: speed %d is not positive, using %d", c.Speed, marquee.DefaultSpeed)
		c.Speed = marquee.DefaultSpeed
	}
	if mode, err := marquee.ParseMode(c.Mode); err != nil {
		log.Printf("config: %v, using %s", err, marquee.ModeForever)
		c.Mode = marquee.ModeForever.String()
	} else {
		c.Mode = mode.String()
	}
	if c.FirstDelayMs < 0 {
		log.Printf("config: firstDelayMs %d is negative, using 0", c.FirstDelayMs)
		c.FirstDelayMs = 0
	}
	switch strings.ToLower(strings.TrimSpace(c.Interpolator)) {
	case "", InterpolatorLinear:
		c.Interpolator = InterpolatorLinear
	case InterpolatorDecelerate:
		c.Interpolator = InterpolatorDecelerate
	default:
		log.Printf("config: unknown interpolator %q, using %s", c.Interpolator, InterpolatorLinear)
		c.Interpolator = InterpolatorLinear
	}
	if c.FrameRateHz <= 0 {
		c.FrameRateHz = DefaultFrameRate
	}
	if c.FrameRateHz > MaxFrameRate {
		c.FrameRateHz = MaxFrameRate
	}
	if c.WindowW == 0 {
		c.WindowW = DefaultWidth
	}
	if c.WindowW < MinWindowWidth {
		c.WindowW = MinWindowWidth
	}
	if c.WindowH == 0 {
		c.WindowH = DefaultHeight
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
