package config

import (
	"flag"
)

// RegisterFlags defines the command-line flags shared by the binaries.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String("config", "", "path to a YAML config file; empty uses the built-in defaults")
	fs.Int("level", 0, "level to start on")
	fs.String("root", "", "resource directory holding maps/, images/ and sounds/")
	fs.Bool("debug", false, "draw the debug overlay")
	fs.Bool("watch", false, "reload the level when its map file changes (needs -root)")
	fs.String("log-level", "", "debug, info, warn or error")
}

// FromFlags loads the file named by -config, applies the environment and the flags that were
// set, clamps the starting level to [0, max_level], then validates the result. fs must already
// be parsed.
func FromFlags(fs *flag.FlagSet) (Config, error) {
	var path string
	if f := fs.Lookup("config"); f != nil {
		path = f.Value.String()
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		return Config{}, err
	}
	cfg.ClampLevel()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
