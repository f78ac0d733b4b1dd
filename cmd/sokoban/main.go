// Command sokoban plays the game in a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plus3/sokoban/config"
	ebitenfront "github.com/plus3/sokoban/frontend/ebiten"
	"github.com/plus3/sokoban/levelwatch"
	"github.com/plus3/sokoban/logging"
	"github.com/plus3/sokoban/resources"
	"github.com/plus3/sokoban/sokoban"
	"go.uber.org/zap"
)

func main() {
	fs := flag.NewFlagSet("sokoban", flag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.FromFlags(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger = logging.WithSession(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("sokoban failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *zap.Logger) error {
	root := resources.FS(cfg.Root)

	game, err := sokoban.NewGame(sokoban.Options{
		Root:   root,
		Audio:  ebitenfront.NewAudioSink(),
		Vars:   cfg.Vars(),
		Level:  cfg.Game.Level,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	var reloads <-chan string
	if cfg.Watch {
		watcher, err := watchMaps(cfg.Root, logger)
		if err != nil {
			return err
		}
		if watcher != nil {
			defer watcher.Close()
			reloads = watcher.Events
		}
	}

	host, err := ebitenfront.NewHost(game, ebitenfront.Options{
		Title:    cfg.Window.Title,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		TileSize: cfg.Game.TileSize,
		Root:     root,
		Debug:    cfg.Debug,
		Reloads:  reloads,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", zap.Int("level", cfg.Game.Level), zap.Bool("debug", cfg.Debug))
	return host.Run()
}

// watchMaps returns nil when there is no directory to watch.
func watchMaps(root string, logger *zap.Logger) (*levelwatch.Watcher, error) {
	if root == "" {
		logger.Warn("watch needs -root, hot reload disabled")
		return nil, nil
	}
	watcher, err := levelwatch.New(levelwatch.DefaultDebounce, filepath.Join(root, "maps"))
	if err != nil {
		return nil, fmt.Errorf("watch maps: %w", err)
	}
	go func() {
		for err := range watcher.Errors {
			logger.Warn("map watcher", zap.Error(err))
		}
	}()
	return watcher, nil
}
