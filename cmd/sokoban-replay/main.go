// Command sokoban-replay plays a scripted key sequence headlessly and prints a report.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/plus3/sokoban/config"
	"github.com/plus3/sokoban/logging"
	"github.com/plus3/sokoban/resources"
	"github.com/plus3/sokoban/sokoban"
	"go.uber.org/zap"
)

func main() {
	fs := flag.NewFlagSet("sokoban-replay", flag.ExitOnError)
	config.RegisterFlags(fs)
	moves := fs.String("moves", "", "keys to replay, e.g. \"right,right,up\"")
	script := fs.String("script", "", "file of keys to replay, one or more per line")
	repeat := fs.Int("repeat", 1, "number of passes over the keys")
	memStats := fs.Bool("mem", false, "include memory statistics in the report")
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

	if err := run(cfg, *moves, *script, *repeat, *memStats, logger); err != nil {
		logger.Error("replay failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, moves, script string, repeat int, memStats bool, logger *zap.Logger) error {
	keys, err := loadKeys(moves, script)
	if err != nil {
		return err
	}

	game, err := sokoban.NewGame(sokoban.Options{
		Root:   resources.FS(cfg.Root),
		Vars:   cfg.Vars(),
		Level:  cfg.Game.Level,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	report := &Report{
		StartLevel: cfg.Game.Level,
		Repeat:     max(repeat, 1),
		MemStats:   memStats,
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("replaying", zap.Int("keys", len(keys)), zap.Int("repeat", report.Repeat))
	if err := Replay(game, keys, repeat, report); err != nil {
		return err
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report.Generate(os.Stdout)
}

func loadKeys(moves, script string) ([]sokoban.Key, error) {
	keys, err := ParseMoves(strings.NewReader(moves))
	if err != nil {
		return nil, fmt.Errorf("-moves: %w", err)
	}
	if script == "" {
		return keys, nil
	}

	f, err := os.Open(script)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	more, err := ParseMoves(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", script, err)
	}
	return append(keys, more...), nil
}
