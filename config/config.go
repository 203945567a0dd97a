// Package config loads the user configuration and builds the
// configured player backend.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mediabar/player"
	"mediabar/player/mpd"
	"mediabar/player/mpris"
	"mediabar/player/playerctl"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Player backend: "mpris", "mpd" or "playerctl".
	Player string `yaml:"player" default:"mpris"`

	CacheDir string `yaml:"cache_dir"`
	LogDir   string `yaml:"log_dir"`

	// TextLength caps the rendered text field. Zero disables.
	TextLength int `yaml:"text_length" default:"40"`
	// Overflow: "word", "none" or "ellipsis".
	Overflow string `yaml:"overflow" default:"ellipsis"`

	VolumeStep float64 `yaml:"volume_step" default:"0.05"`

	Mpris struct {
		// Player narrows bus selection to a matching player name.
		Player string `yaml:"player"`
	} `yaml:"mpris"`

	Mpd struct {
		Address  string `yaml:"address" default:"127.0.0.1:6600"`
		Password string `yaml:"password"`
	} `yaml:"mpd"`

	Playerctl struct {
		Player         string `yaml:"player" default:"playerctld"`
		TimeoutSeconds int    `yaml:"timeout_seconds" default:"2"`
	} `yaml:"playerctl"`

	Lyrics struct {
		URL            string `yaml:"url" default:"https://lrclib.net/api/get"`
		TimeoutSeconds int    `yaml:"timeout_seconds" default:"10"`
	} `yaml:"lyrics"`

	Art struct {
		Enabled        bool `yaml:"enabled" default:"true"`
		TimeoutSeconds int  `yaml:"timeout_seconds" default:"10"`
	} `yaml:"art"`

	Pipe struct {
		IntervalMS int `yaml:"interval_ms" default:"500"`
	} `yaml:"pipe"`
}

// New returns a config with defaults and env overrides applied.
func New() *Config {
	var conf Config
	_ = defaults.Set(&conf)
	conf.applyEnv()
	return &conf
}

// Directory returns the config directory.
func Directory() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mediabar"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Directory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the user config. A missing file yields the defaults; a
// malformed file is an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	var conf Config
	if err := defaults.Set(&conf); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		conf.applyEnv()
		return &conf, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	conf.applyEnv()
	return &conf, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MEDIABAR_PLAYER"); v != "" {
		c.Player = v
	}
	if v := os.Getenv("MEDIABAR_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("MEDIABAR_LOG_DIR"); v != "" {
		c.LogDir = v
	}
}

// CacheBase resolves the cache base directory.
func (c *Config) CacheBase() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mediabar"), nil
}

// LogBase resolves the log directory.
func (c *Config) LogBase() (string, error) {
	if c.LogDir != "" {
		return c.LogDir, nil
	}
	base, err := c.CacheBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "logs"), nil
}

// GetPlayer builds the configured player backend.
func GetPlayer(conf *Config) (player.Controller, error) {
	switch conf.Player {
	case "", "mpris":
		return mpris.New(conf.Mpris.Player), nil
	case "mpd":
		return mpd.New(conf.Mpd.Address, conf.Mpd.Password), nil
	case "playerctl":
		return playerctl.New(conf.Playerctl.Player,
			time.Duration(conf.Playerctl.TimeoutSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", conf.Player)
	}
}
