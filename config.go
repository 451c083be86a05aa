package helm3d

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smasonuk/helm3d/interaction"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type GestureConfig struct {
	ActivationDeadline time.Duration `yaml:"activation_deadline"`
	DoubleClickWindow  time.Duration `yaml:"double_click_window"`
	Sensitivity        float64       `yaml:"sensitivity"`
	MousePolicy        string        `yaml:"mouse_policy"`
}

type LayoutConfig struct {
	Breakpoint int `yaml:"breakpoint"`
}

// ProductConfig describes the product a storefront page is selling.
type ProductConfig struct {
	Title     string `yaml:"title"`
	Available bool   `yaml:"available"`
}

type CaptureConfig struct {
	Action  string        `yaml:"action"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	Window  WindowConfig   `yaml:"window"`
	Log     LogConfig      `yaml:"log"`
	Gesture GestureConfig  `yaml:"gesture"`
	Layout  LayoutConfig   `yaml:"layout"`
	Product *ProductConfig `yaml:"product,omitempty"`
	Capture CaptureConfig  `yaml:"capture"`

	InitRetryDelay time.Duration `yaml:"init_retry_delay"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Helm"},
		Log:    LogConfig{Level: "info"},
		Gesture: GestureConfig{
			ActivationDeadline: interaction.DefaultActivationDeadline,
			DoubleClickWindow:  interaction.DefaultDoubleClickWindow,
			Sensitivity:        interaction.DefaultSensitivity,
			MousePolicy:        interaction.PolicyDeferred.String(),
		},
		Layout:         LayoutConfig{Breakpoint: interaction.DefaultBreakpoint},
		Capture:        CaptureConfig{Timeout: 10 * time.Second},
		InitRetryDelay: 100 * time.Millisecond,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	return DecodeConfig(f)
}

// DecodeConfig reads YAML from r over the defaults and validates the result.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Gesture.ActivationDeadline <= 0:
		return fmt.Errorf("%w: activation_deadline must be positive", ErrInvalidConfig)
	case c.Gesture.DoubleClickWindow <= 0:
		return fmt.Errorf("%w: double_click_window must be positive", ErrInvalidConfig)
	case c.Gesture.Sensitivity <= 0:
		return fmt.Errorf("%w: sensitivity must be positive", ErrInvalidConfig)
	case c.Layout.Breakpoint <= 0:
		return fmt.Errorf("%w: breakpoint must be positive", ErrInvalidConfig)
	case c.Capture.Timeout < 0 || c.InitRetryDelay < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	if _, err := ParsePolicy(c.Gesture.MousePolicy); err != nil {
		return err
	}
	return nil
}

func ParsePolicy(s string) (interaction.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "deferred":
		return interaction.PolicyDeferred, nil
	case "immediate":
		return interaction.PolicyImmediate, nil
	}
	return interaction.PolicyDeferred, fmt.Errorf("%w: unknown mouse_policy %q", ErrInvalidConfig, s)
}

// GestureOptions converts the gesture section. Call Validate first.
func (c Config) GestureOptions() interaction.Options {
	policy, _ := ParsePolicy(c.Gesture.MousePolicy)
	return interaction.Options{
		ActivationDeadline: c.Gesture.ActivationDeadline,
		DoubleClickWindow:  c.Gesture.DoubleClickWindow,
		Sensitivity:        c.Gesture.Sensitivity,
		MousePolicy:        policy,
	}
}

// FrontLabel is the product title, or empty for the standalone variant.
func (c Config) FrontLabel() string {
	if c.Product == nil {
		return ""
	}
	return c.Product.Title
}
