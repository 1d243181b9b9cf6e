package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/depeter/tvhero/internal/constants"
	"github.com/depeter/tvhero/internal/parallax"
)

var (
	ErrUnknownAspectRatio = parallax.ErrUnknownAspectRatio
	ErrInvalidSize        = errors.New("size must be positive")
)

type Config struct {
	UI       UIConfig      `toml:"ui"`
	Hero     HeroConfig    `toml:"hero"`
	Cache    CacheConfig   `toml:"cache"`
	Images   ImagesConfig  `toml:"images"`
	Log      LogConfig     `toml:"log"`
	Keybinds KeybindConfig `toml:"keybinds"`
}

type UIConfig struct {
	Fullscreen    bool `toml:"fullscreen"`
	Width         int  `toml:"width"`
	Height        int  `toml:"height"`
	ReducedMotion bool `toml:"reduced_motion"`
}

type HeroConfig struct {
	Height int `toml:"height"`
	// AspectRatio is "", "auto", "1/1", "4/3", "16/9" or "3/4".
	AspectRatio     string `toml:"aspect_ratio"`
	ColorExtraction bool   `toml:"color_extraction"`
	ShowGradient    bool   `toml:"show_gradient"`
	Blur            bool   `toml:"blur"`
}

type CacheConfig struct {
	// Dir overrides the image cache directory; empty uses the XDG cache dir.
	Dir           string `toml:"dir"`
	ColorEntries  int    `toml:"color_entries"`
	LoadTimeoutMS int    `toml:"load_timeout_ms"`
	MaxDownloads  int    `toml:"max_downloads"`
}

type ImagesConfig struct {
	// Origin is the base URL relative image paths resolve against.
	Origin string `toml:"origin"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
	File  string `toml:"file"`
}

type KeybindConfig struct {
	Close      string `toml:"close"`
	Debug      string `toml:"debug"`
	Fullscreen string `toml:"fullscreen"`
}

func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Fullscreen: false,
			Width:      1280,
			Height:     800,
		},
		Hero: HeroConfig{
			Height:          constants.DefaultHeroHeight,
			AspectRatio:     string(parallax.AspectAuto),
			ColorExtraction: true,
			ShowGradient:    true,
		},
		Cache: CacheConfig{
			ColorEntries:  constants.ColorCacheSize,
			LoadTimeoutMS: int(constants.ImageLoadTimeout.Milliseconds()),
			MaxDownloads:  constants.MaxConcurrentDownloads,
		},
		Images: ImagesConfig{
			Origin: constants.DefaultOrigin,
		},
		Log: LogConfig{
			Level: "info",
		},
		Keybinds: KeybindConfig{
			Close:      "Escape",
			Debug:      "F12",
			Fullscreen: "F",
		},
	}
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	if _, err := parallax.ParseAspectRatio(c.Hero.AspectRatio); err != nil {
		return fmt.Errorf("hero.aspect_ratio: %w", err)
	}
	sizes := []struct {
		name string
		v    int
	}{
		{"ui.width", c.UI.Width},
		{"ui.height", c.UI.Height},
		{"hero.height", c.Hero.Height},
		{"cache.color_entries", c.Cache.ColorEntries},
		{"cache.load_timeout_ms", c.Cache.LoadTimeoutMS},
		{"cache.max_downloads", c.Cache.MaxDownloads},
	}
	for _, s := range sizes {
		if s.v <= 0 {
			return fmt.Errorf("%s = %d: %w", s.name, s.v, ErrInvalidSize)
		}
	}
	return nil
}

// AspectRatio returns the validated hero aspect ratio.
func (c *Config) AspectRatio() parallax.AspectRatio {
	a, err := parallax.ParseAspectRatio(c.Hero.AspectRatio)
	if err != nil {
		return parallax.AspectFixed
	}
	return a
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tvhero"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path on top of the defaults. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
