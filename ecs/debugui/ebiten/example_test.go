package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/ecs/debugui"
	debugui_ebiten "github.com/plus3/sokoban/ecs/debugui/ebiten"
)

type Position struct{ X, Y int }

// Game implements ebiten.Game and draws the overlay for a separate game storage.
type Game struct {
	world        *ecs.Storage
	imguiBackend *debugui_ebiten.ImguiBackend
	ctx          debugui.Context
}

func (g *Game) Update() error {
	g.ctx.Target = g.world
	g.ctx.DeltaTime = 1.0 / 60.0
	return g.imguiBackend.Frame(&g.ctx)
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	if err := ecs.RegisterComponent[Position](registry); err != nil {
		panic(err)
	}
	world := ecs.NewStorage(registry)
	if _, err := world.Spawn(Position{X: 1, Y: 2}); err != nil {
		panic(err)
	}

	overlay, err := debugui.NewOverlay()
	if err != nil {
		panic(err)
	}

	// Custom panels are plain entities in the overlay storage.
	if _, err := overlay.Storage().Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	}); err != nil {
		panic(err)
	}

	game := &Game{
		world:        world,
		imguiBackend: debugui_ebiten.NewImguiBackend(overlay, "ECS ImGui Example", 1280, 720),
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
