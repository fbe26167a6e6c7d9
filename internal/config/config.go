package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// DefaultIsImage matches the common image extensions, case-insensitively.
const DefaultIsImage = `(?i)\.(gif|jpe?g|png|tiff?|bmp|webp|xpm|xbm|pbm|pgm|ppm|pnm)$`

// Screen probe names accepted in ScreenProbe.
const (
	ProbeAuto     = "auto"
	ProbeXWinInfo = "xwininfo"
	ProbeMonitor  = "monitor"
)

// Config is the application configuration.
type Config struct {
	// Dirs are scanned for images in the order given.
	Dirs      []string `yaml:"dirs" toml:"dirs" env:"DIRS" envSeparator:":"`
	Recursive bool     `yaml:"recursive" toml:"recursive" env:"RECURSIVE"`
	// IsImage is the regular expression a filename must match to be a candidate.
	IsImage string `yaml:"is_image" toml:"is_image" env:"IS_IMAGE"`
	// ImgCmd names the backend used to put the image on the root window.
	ImgCmd string `yaml:"imgcmd" toml:"imgcmd" env:"IMGCMD"`
	// StateDir holds the unseen and last files. Empty means Dir().
	StateDir    string `yaml:"state_dir" toml:"state_dir" env:"STATE_DIR"`
	ScreenProbe string `yaml:"screen_probe" toml:"screen_probe" env:"SCREEN_PROBE"`
	Unseen      bool   `yaml:"unseen" toml:"unseen" env:"UNSEEN"`
}

// Dir returns the OS-specific config directory (e.g. ~/.config/muralis).
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "muralis"), nil
}

// Path returns the config file to read: config.yaml, or config.toml when only that exists.
func Path() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(d, "config.yaml")
	if _, err := os.Stat(p); err != nil {
		alt := filepath.Join(d, "config.toml")
		if _, terr := os.Stat(alt); terr == nil {
			return alt, nil
		}
	}
	return p, nil
}

// Load reads the config from the OS config dir, or the default if missing.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return load(p, true)
}

// LoadFile reads the config at p, applies MURALIS_* environment overrides and fills defaults.
// p was named by the user, so a missing file is an error.
func LoadFile(p string) (*Config, error) {
	return load(p, false)
}

func load(p string, optional bool) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case optional && errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: %w", err)
	case filepath.Ext(p) == ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config decode %s: %w", p, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config decode %s: %w", p, err)
		}
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: "MURALIS_"}); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	c.fill()
	return c, nil
}

// Save writes c to config.yaml in the OS config dir and returns the path written.
func Save(c *Config) (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	p := filepath.Join(d, "config.yaml")
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", err
	}
	return p, nil
}

// Default returns default configuration.
func Default() *Config {
	c := &Config{}
	c.fill()
	return c
}

func (c *Config) fill() {
	if len(c.Dirs) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			c.Dirs = []string{filepath.Join(home, "backgrounds")}
		}
	}
	if c.IsImage == "" {
		c.IsImage = DefaultIsImage
	}
	if c.ImgCmd == "" {
		c.ImgCmd = "xloadimage"
	}
	if c.ScreenProbe == "" {
		c.ScreenProbe = ProbeAuto
	}
	if c.StateDir == "" {
		if d, err := Dir(); err == nil {
			c.StateDir = d
		}
	}
}
