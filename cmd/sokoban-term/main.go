// Command sokoban-term plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/config"
	"github.com/plus3/sokoban/frontend/term"
	"github.com/plus3/sokoban/levelwatch"
	"github.com/plus3/sokoban/logging"
	"github.com/plus3/sokoban/resources"
	"github.com/plus3/sokoban/sokoban"
	"go.uber.org/zap"
)

// defaultLogFile keeps log output off the game screen.
const defaultLogFile = "sokoban-term.log"

func main() {
	fs := flag.NewFlagSet("sokoban-term", flag.ExitOnError)
	config.RegisterFlags(fs)
	mute := fs.Bool("mute", false, "disable sound")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.FromFlags(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}

	logger, err := logging.New(cfg.LogOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger = logging.WithSession(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, *mute, logger)
	stop()
	if err != nil {
		logger.Error("sokoban-term failed", zap.Error(err))
		_ = logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, cfg config.Config, mute bool, logger *zap.Logger) error {
	var audio sokoban.AudioSink = sokoban.SilentAudio{}
	if !mute {
		sink, err := term.NewBeepSink()
		if err != nil {
			logger.Warn("no audio device, playing silently", zap.Error(err))
		} else {
			defer sink.Close()
			audio = sink
		}
	}

	game, err := sokoban.NewGame(sokoban.Options{
		Root:   resources.FS(cfg.Root),
		Audio:  audio,
		Vars:   cfg.Vars(),
		Level:  cfg.Game.Level,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	var reloads <-chan string
	if cfg.Watch && cfg.Root != "" {
		watcher, err := levelwatch.New(levelwatch.DefaultDebounce, filepath.Join(cfg.Root, "maps"))
		if err != nil {
			return fmt.Errorf("watch maps: %w", err)
		}
		defer watcher.Close()
		reloads = watcher.Events
		go func() {
			for err := range watcher.Errors {
				logger.Warn("map watcher", zap.Error(err))
			}
		}()
	} else if cfg.Watch {
		logger.Warn("watch needs -root, hot reload disabled")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	host := term.NewHost(screen, game, term.Options{
		TileSize: cfg.Game.TileSize,
		Reloads:  reloads,
		Logger:   logger,
	})
	logger.Info("starting", zap.Int("level", cfg.Game.Level))
	return host.Run(ctx)
}
