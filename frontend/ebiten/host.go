// Package ebiten runs a sokoban game in an Ebiten window.
package ebiten

import (
	"fmt"
	"image/color"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/ecs/debugui"
	debugui_ebiten "github.com/plus3/sokoban/ecs/debugui/ebiten"
	"github.com/plus3/sokoban/sokoban"
	"go.uber.org/zap"
)

var background = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// Game is what the host drives each tick.
type Game interface {
	sokoban.FrameHandler
	Reload() (bool, error)
	Storage() *ecs.Storage
	UpdateStats() *ecs.SchedulerStats
	DrawStats() *ecs.SchedulerStats
}

type Options struct {
	Title    string
	Width    int
	Height   int
	TileSize int
	// Root is read for images/.
	Root fs.FS
	// Debug draws the ImGui overlay over the board.
	Debug bool
	// Reloads carries paths of edited map files. The host reloads the level for each.
	Reloads <-chan string
	Logger  *zap.Logger
}

// Host implements ebiten.Game.
type Host struct {
	game    Game
	opts    Options
	canvas  *SpriteCanvas
	imgui   *debugui_ebiten.ImguiBackend
	debug   debugui.Context
	events  []sokoban.KeyEvent
	pressed []ebiten.Key
	drawErr error
	logger  *zap.Logger
}

var _ ebiten.Game = (*Host)(nil)

func NewHost(game Game, opts Options) (*Host, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Host{
		game:   game,
		opts:   opts,
		canvas: NewSpriteCanvas(opts.Root, opts.TileSize, logger.Named("canvas")),
		logger: logger,
	}

	if opts.Debug {
		overlay, err := debugui.NewOverlay(ecs.WithLogger(logger.Named("debugui")))
		if err != nil {
			return nil, err
		}
		h.imgui = debugui_ebiten.NewImguiBackend(overlay, opts.Title, opts.Width, opts.Height)
		h.debug.Schedulers = []debugui.SchedulerSource{
			{Name: "Update", Stats: game.UpdateStats},
			{Name: "Draw", Stats: game.DrawStats},
		}
	}
	return h, nil
}

// Run opens the window and blocks until it closes or the game fails.
func (h *Host) Run() error {
	if h.imgui == nil {
		ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
		ebiten.SetWindowTitle(h.opts.Title)
	}
	return ebiten.RunGame(h)
}

func (h *Host) Update() error {
	if h.drawErr != nil {
		return h.drawErr
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if err := h.pollReloads(); err != nil {
		return err
	}

	h.events, h.pressed = pollKeys(h.events[:0], h.pressed)
	if !h.debug.Input.WantCaptureKeyboard {
		for _, ev := range h.events {
			h.game.OnKeyDown(ev)
		}
	}

	if err := h.game.OnUpdate(); err != nil {
		return err
	}

	if h.imgui != nil {
		h.debug.Target = h.game.Storage()
		h.debug.DeltaTime = sokoban.FrameDelta
		if tps := ebiten.ActualTPS(); tps > 0 {
			h.debug.DeltaTime = 1 / tps
		}
		return h.imgui.Frame(&h.debug)
	}
	return nil
}

// pollReloads drains pending map edits without blocking the tick.
func (h *Host) pollReloads() error {
	for {
		select {
		case path, ok := <-h.opts.Reloads:
			if !ok {
				h.opts.Reloads = nil
				return nil
			}
			reloaded, err := h.game.Reload()
			if err != nil {
				// An edit in progress may not parse yet. Keep playing the loaded level.
				h.logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			if reloaded {
				h.logger.Info("level reloaded", zap.String("path", path))
			}
		default:
			return nil
		}
	}
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	h.canvas.Begin(screen)
	if err := h.game.OnDraw(h.canvas); err != nil && h.drawErr == nil {
		h.drawErr = fmt.Errorf("draw: %w", err)
	}
	if h.imgui != nil {
		h.imgui.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.imgui != nil {
		h.imgui.Layout(outsideWidth, outsideHeight)
	}
	return h.opts.Width, h.opts.Height
}
