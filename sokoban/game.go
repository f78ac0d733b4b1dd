package sokoban

import (
	"fmt"
	"io/fs"

	"github.com/plus3/sokoban/ecs"
	"go.uber.org/zap"
)

// FrameDelta is the fixed update step, matching a 60Hz host.
const FrameDelta = 1.0 / 60.0

// FrameHandler is the boundary between the simulation and a frontend. The host calls
// OnUpdate then OnDraw once per tick, and OnKeyDown for each key press, all on one goroutine.
type FrameHandler interface {
	OnUpdate() error
	OnDraw(canvas Canvas) error
	OnKeyDown(ev KeyEvent)
}

// Options configures NewGame. Root is required. A nil Audio plays nothing, zero Vars mean
// DefaultVars and a nil Logger discards output.
type Options struct {
	// Root holds maps/ and sounds/.
	Root   fs.FS
	Audio  AudioSink
	Vars   GameVars
	Level  int
	Logger *zap.Logger
}

// Game owns the storage, the resources and both schedulers.
type Game struct {
	registry *ecs.ComponentRegistry
	storage  *ecs.Storage
	res      *Resources
	loader   *LevelLoader
	update   *ecs.Scheduler[*Resources]
	draw     *ecs.Scheduler[*DrawContext]
	drawCtx  *DrawContext
	logger   *zap.Logger
}

var _ FrameHandler = (*Game)(nil)

// NewGame builds the game and loads opts.Level.
func NewGame(opts Options) (*Game, error) {
	if opts.Root == nil {
		return nil, fmt.Errorf("sokoban: no resource root")
	}
	if opts.Audio == nil {
		opts.Audio = SilentAudio{}
	}
	if opts.Vars.TileSize == 0 {
		opts.Vars = DefaultVars()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	storage := ecs.NewStorage(registry, ecs.WithLogger(logger.Named("ecs")))
	res := newResources(opts.Vars, logger)

	loader := &LevelLoader{
		root:    opts.Root,
		storage: storage,
		factory: NewFactory(storage),
		res:     res,
		audio:   opts.Audio,
		logger:  logger,
	}
	res.Loader = loader

	update := ecs.NewScheduler[*Resources](storage)
	update.Register(&InputSystem{})
	update.Register(&GameplaySystem{})
	update.Register(&AudioSystem{})

	draw := ecs.NewScheduler[*DrawContext](storage)
	draw.Register(&RenderSystem{})

	g := &Game{
		registry: registry,
		storage:  storage,
		res:      res,
		loader:   loader,
		update:   update,
		draw:     draw,
		drawCtx:  &DrawContext{State: res.State, Vars: res.Vars},
		logger:   logger,
	}

	if err := loader.Load(opts.Level); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) OnUpdate() error {
	return g.update.Once(FrameDelta, g.res)
}

func (g *Game) OnDraw(canvas Canvas) error {
	g.drawCtx.Canvas = canvas
	g.drawCtx.Level = g.res.Level
	defer func() { g.drawCtx.Canvas = nil }()
	return g.draw.Once(0, g.drawCtx)
}

func (g *Game) OnKeyDown(ev KeyEvent) {
	g.res.Input.Push(ev.Key)
}

// Reload reloads the current level if its map changed on disk.
func (g *Game) Reload() (bool, error) {
	return g.loader.ReloadIfChanged()
}

// LoadLevel switches to level immediately, outside of the frame's command flush.
func (g *Game) LoadLevel(level int) error {
	return g.loader.Load(level)
}

func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

func (g *Game) Registry() *ecs.ComponentRegistry {
	return g.registry
}

func (g *Game) State() GameState {
	return *g.res.State
}

func (g *Game) Level() LevelInfo {
	return g.res.Level
}

func (g *Game) Vars() GameVars {
	return g.res.Vars
}

// UpdateStats returns timing of the update systems.
func (g *Game) UpdateStats() *ecs.SchedulerStats {
	return g.update.GetStats()
}

// DrawStats returns timing of the draw systems.
func (g *Game) DrawStats() *ecs.SchedulerStats {
	return g.draw.GetStats()
}

// PlayerPosition returns the player's cell and facing. ok is false when the level has no player.
func (g *Game) PlayerPosition() (pos Position, facing Direction, ok bool) {
	for p := range ecs.NewView[struct {
		*Player
		*Position
		*Directional
	}](g.storage).Values() {
		return *p.Position, p.Directional.Facing, true
	}
	return Position{}, Down, false
}

// SilentAudio discards every sound.
type SilentAudio struct{}

// Load returns a track that never makes sound.
func (SilentAudio) Load(string, []byte, bool) (Track, error) {
	return silentTrack{}, nil
}

type silentTrack struct{}

func (silentTrack) Play()        {}
func (silentTrack) Stop()        {}
func (silentTrack) Close() error { return nil }
