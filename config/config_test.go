package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("game:\n  level: 1\n  hud: false\nlog:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Game.Level)
	assert.False(t, cfg.Game.HUD)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 800, cfg.Window.Width, "unset keys keep defaults")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("game:\n  levle: 1\n"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse config:"))
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  tile_size: 16\n"), 0o644))
	t.Setenv("SOKOBAN_GAME_LEVEL", "2")
	t.Setenv("SOKOBAN_WINDOW_TITLE", "Boxes")
	t.Setenv("SOKOBAN_WATCH", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Game.TileSize)
	assert.Equal(t, 2, cfg.Game.Level)
	assert.Equal(t, "Boxes", cfg.Window.Title)
	assert.True(t, cfg.Watch)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("SOKOBAN_GAME_TILE_SIZE", "big")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("config", "", "")
	fs.Int("level", 0, "")
	fs.String("root", "", "")
	fs.Bool("debug", false, "")
	fs.Bool("watch", false, "")
	require.NoError(t, fs.Parse([]string{"-level", "1", "-debug", "-root", "/tmp/res"}))

	cfg := Default()
	cfg.Watch = true
	require.NoError(t, cfg.ApplyFlags(fs))
	assert.Equal(t, 1, cfg.Game.Level)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/res", cfg.Root)
	assert.True(t, cfg.Watch, "flags left unset do not override")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Game.Level = 5
	cfg.Game.TileSize = 2
	cfg.Window.Width = 0
	cfg.Log.Level = "shouty"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"game.level", "game.tile_size", "window size", "log.level"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestVarsAndLogOptions(t *testing.T) {
	cfg := Default()
	cfg.Log.File = "game.log"

	vars := cfg.Vars()
	assert.Equal(t, 32, vars.TileSize)
	assert.Equal(t, 2, vars.MaxLevel)
	assert.Equal(t, []string{"game.log"}, cfg.LogOptions().OutputPaths)
}

func TestFromFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-level", "2", "-watch"}))

	cfg, err := FromFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.Level)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestFromFlagsClampsLevel(t *testing.T) {
	for _, tc := range []struct {
		arg  string
		want int
	}{
		{"9", 2},
		{"-3", 0},
		{"1", 1},
	} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		RegisterFlags(fs)
		require.NoError(t, fs.Parse([]string{"-level", tc.arg}))

		cfg, err := FromFlags(fs)
		require.NoError(t, err, tc.arg)
		assert.Equal(t, tc.want, cfg.Game.Level, tc.arg)
	}
}

func TestFromFlagsValidates(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-log-level", "shouty"}))

	_, err := FromFlags(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestClampLevelKeepsNegativeMax(t *testing.T) {
	cfg := Default()
	cfg.Game.MaxLevel = -1
	cfg.Game.Level = 4
	cfg.ClampLevel()
	assert.Equal(t, 4, cfg.Game.Level)
	assert.ErrorContains(t, cfg.Validate(), "game.max_level")
}
