package config

import (
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "geomarks.yaml"

// Config is the viewer configuration (geomarks.yaml).
type Config struct {
	// Assets is the asset root: a directory or an http(s) base URL holding
	// map.png and markers/<category>.png.
	Assets string `yaml:"assets"`

	// Data is the dataset file, {"geomarks": [...]}.
	Data string `yaml:"data"`

	// I18n is the translations file. Optional.
	I18n string `yaml:"i18n"`

	// Language is the initial UI language; unknown codes fall back to "en".
	Language string `yaml:"language"`

	// Watch reloads Data when it changes on disk.
	Watch bool `yaml:"watch"`

	Window WindowConfig `yaml:"window"`

	Loader LoaderConfig `yaml:"loader"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// WindowConfig sizes the viewer window in dp.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Background fills the map area behind the letterboxed artwork, "#RRGGBB".
	Background string `yaml:"background"`
}

// LoaderConfig tunes asset loading.
type LoaderConfig struct {
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
	// IconPolicy is "all-or-nothing" or "partial".
	IconPolicy string `yaml:"iconPolicy"`
	// Placeholders draws a generated marker for icons that fail to load.
	Placeholders bool `yaml:"placeholders"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Assets:   "public",
		Data:     "public/data.json",
		I18n:     "public/i18n.json",
		Language: "en",
		Window: WindowConfig{
			Width:      1280,
			Height:     860,
			Background: "#82735B",
		},
		Loader: LoaderConfig{
			Workers:    4,
			Timeout:    10 * time.Second,
			IconPolicy: "all-or-nothing",
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set, which is how the implicit DefaultFile is read.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Assets == "" {
		return errors.New("assets must be set")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Loader.Workers < 0 {
		return errors.Errorf("loader.workers must not be negative, got %d", c.Loader.Workers)
	}
	switch c.Loader.IconPolicy {
	case "", "all-or-nothing", "partial":
	default:
		return errors.Errorf("unknown loader.iconPolicy %q", c.Loader.IconPolicy)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// RemoteAssets reports whether Assets is an http(s) URL.
func (c *Config) RemoteAssets() bool {
	return strings.HasPrefix(c.Assets, "http://") || strings.HasPrefix(c.Assets, "https://")
}

// BackgroundColor parses Window.Background; empty means transparent.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	s := strings.TrimPrefix(c.Window.Background, "#")
	if s == "" {
		return color.NRGBA{}, nil
	}
	if len(s) != 6 {
		return color.NRGBA{}, errors.Errorf("background must be #RRGGBB, got %q", c.Window.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "parsing background %q", c.Window.Background)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
