// Package term runs a sokoban game on a terminal through tcell.
package term

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/sokoban"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Game is what the host drives each tick.
type Game interface {
	sokoban.FrameHandler
	Reload() (bool, error)
}

type Options struct {
	TileSize int
	// Tick is the frame interval. Zero means sokoban.FrameDelta.
	Tick time.Duration
	// Reloads carries paths of edited map files.
	Reloads <-chan string
	Logger  *zap.Logger
}

type Host struct {
	screen  tcell.Screen
	game    Game
	canvas  *GlyphCanvas
	tick    time.Duration
	reloads <-chan string
	logger  *zap.Logger
}

// ErrQuit is returned by HandleEvent for the quit keys. Run treats it as a clean exit.
var ErrQuit = errors.New("quit")

// NewHost takes an initialised screen. Run finalises it on return.
func NewHost(screen tcell.Screen, game Game, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tick := opts.Tick
	if tick <= 0 {
		delta := sokoban.FrameDelta
		tick = time.Duration(delta * float64(time.Second))
	}
	return &Host{
		screen:  screen,
		game:    game,
		canvas:  NewGlyphCanvas(screen, opts.TileSize),
		tick:    tick,
		reloads: opts.Reloads,
		logger:  logger,
	}
}

// Run polls terminal events on one goroutine and runs the frame loop on another until the
// player quits, ctx ends or the game fails.
func (h *Host) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	group.Go(func() error {
		// PollEvent returns nil once the loop goroutine calls Fini.
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	group.Go(func() error {
		defer h.screen.Fini()
		return h.loop(ctx, events)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, ErrQuit) {
		return err
	}
	return nil
}

func (h *Host) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	h.screen.HideCursor()
	if err := h.Frame(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := h.HandleEvent(ev); err != nil {
				return err
			}
		case path, ok := <-h.reloads:
			if !ok {
				h.reloads = nil
				continue
			}
			h.reload(path)
		case <-ticker.C:
			if err := h.Frame(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent forwards key presses to the game.
func (h *Host) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return ErrQuit
		}
		h.game.OnKeyDown(TranslateKey(ev))
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return nil
}

// Frame updates the game once and redraws the screen.
func (h *Host) Frame() error {
	if err := h.game.OnUpdate(); err != nil {
		return err
	}
	h.screen.Clear()
	if err := h.game.OnDraw(h.canvas); err != nil {
		return err
	}
	h.screen.Show()
	return nil
}

func (h *Host) reload(path string) {
	reloaded, err := h.game.Reload()
	if err != nil {
		h.logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	if reloaded {
		h.logger.Info("level reloaded", zap.String("path", path))
	}
}
