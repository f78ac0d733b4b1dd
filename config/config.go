// Package config loads the game configuration: defaults, then a YAML file, then SOKOBAN_*
// environment variables, then command-line flags.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/plus3/sokoban/logging"
	"github.com/plus3/sokoban/resources"
	"github.com/plus3/sokoban/sokoban"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "SOKOBAN_"

type Config struct {
	Window WindowConfig `yaml:"window" envPrefix:"WINDOW_"`
	Game   GameConfig   `yaml:"game" envPrefix:"GAME_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`

	// Root is a directory holding maps/, images/ and sounds/. Empty means the embedded resources.
	Root  string `yaml:"root" env:"ROOT"`
	Debug bool   `yaml:"debug" env:"DEBUG"`
	Watch bool   `yaml:"watch" env:"WATCH"`
}

type WindowConfig struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
}

type GameConfig struct {
	Level    int  `yaml:"level" env:"LEVEL"`
	MaxLevel int  `yaml:"max_level" env:"MAX_LEVEL"`
	TileSize int  `yaml:"tile_size" env:"TILE_SIZE"`
	HUD      bool `yaml:"hud" env:"HUD"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LEVEL"`
	Encoding string `yaml:"encoding" env:"ENCODING"`
	File     string `yaml:"file" env:"FILE"`
}

func Default() Config {
	vars := sokoban.DefaultVars()
	return Config{
		Window: WindowConfig{Title: "Sokoban", Width: 800, Height: 600},
		Game: GameConfig{
			MaxLevel: vars.MaxLevel,
			TileSize: vars.TileSize,
			HUD:      vars.HUD,
		},
		Log: LogConfig{Level: "info", Encoding: "console"},
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads path, or the embedded config.yaml when path is empty, then applies the environment.
func Load(path string) (Config, error) {
	data := resources.DefaultConfig
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyFlags copies the flags that were set on the command line. Recognized names are
// level, root, debug, watch and log-level.
func (c *Config) ApplyFlags(fs *flag.FlagSet) error {
	var errs []error
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "level":
			n, err := strconv.Atoi(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("flag -level: %w", err))
				return
			}
			c.Game.Level = n
		case "root":
			c.Root = value
		case "debug":
			c.Debug = value == "true"
		case "watch":
			c.Watch = value == "true"
		case "log-level":
			c.Log.Level = value
		}
	})
	return errors.Join(errs...)
}

// Vars converts the game section for the simulation.
func (c Config) Vars() sokoban.GameVars {
	return sokoban.GameVars{
		TileSize: c.Game.TileSize,
		MaxLevel: c.Game.MaxLevel,
		HUD:      c.Game.HUD,
	}
}

func (c Config) LogOptions() logging.Options {
	opts := logging.Options{Level: c.Log.Level, Encoding: c.Log.Encoding}
	if c.Log.File != "" {
		opts.OutputPaths = []string{c.Log.File}
	}
	return opts
}

// ClampLevel pulls Game.Level into [0, Game.MaxLevel]. A negative max_level is left for
// Validate to report.
func (c *Config) ClampLevel() {
	if c.Game.MaxLevel < 0 {
		return
	}
	c.Game.Level = max(0, min(c.Game.Level, c.Game.MaxLevel))
}

func (c Config) Validate() error {
	var errs []error
	if c.Game.MaxLevel < 0 {
		errs = append(errs, fmt.Errorf("game.max_level must not be negative, got %d", c.Game.MaxLevel))
	}
	if c.Game.Level < 0 || c.Game.Level > c.Game.MaxLevel {
		errs = append(errs, fmt.Errorf("game.level must be in [0, %d], got %d", c.Game.MaxLevel, c.Game.Level))
	}
	if c.Game.TileSize < 8 || c.Game.TileSize > 128 {
		errs = append(errs, fmt.Errorf("game.tile_size must be in [8, 128], got %d", c.Game.TileSize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}
