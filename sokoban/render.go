package sokoban

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/plus3/sokoban/ecs"
)

// Canvas is the drawing sink a frontend provides for one frame. Coordinates are screen pixels.
type Canvas interface {
	DrawSprite(sprite string, x, y int)
	DrawText(text string, x, y int)
}

// DrawContext is the resource set of the draw scheduler.
type DrawContext struct {
	Canvas Canvas
	State  *GameState
	Vars   GameVars
	Level  LevelInfo
}

type drawItem struct {
	id     ecs.EntityId
	sprite string
	pos    Position
}

// RenderSystem issues one DrawSprite per positioned renderable, floors first.
type RenderSystem struct {
	Renderables ecs.Query[struct {
		Id          ecs.EntityId
		Position    *Position
		Renderable  *Renderable
		Directional *Directional `ecs:"optional"`
	}]

	items []drawItem
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame[*DrawContext]) {
	ctx := frame.Resources
	if ctx.Canvas == nil {
		return
	}

	s.items = s.items[:0]
	for r := range s.Renderables.Values() {
		sprite := r.Renderable.Sprite
		if r.Directional != nil {
			sprite += "_" + r.Directional.Facing.String()
		}
		s.items = append(s.items, drawItem{id: r.Id, sprite: sprite, pos: *r.Position})
	}

	slices.SortStableFunc(s.items, func(a, b drawItem) int {
		if c := cmp.Compare(a.pos.Z, b.pos.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	tile := ctx.Vars.TileSize
	for _, it := range s.items {
		ctx.Canvas.DrawSprite(it.sprite, it.pos.X*tile, it.pos.Y*tile)
	}

	if ctx.Vars.HUD && ctx.State != nil {
		ctx.Canvas.DrawText(HUDLine(ctx.State), 0, ctx.Level.Height*tile+tile/4)
	}
}

// HUDLine formats the status line shown under the map.
func HUDLine(state *GameState) string {
	line := fmt.Sprintf("level %d  moves %d  pushes %d  %s", state.Level, state.Moves, state.Pushes, state.Gameplay)
	if state.Won() {
		line += "  (press N for the next level)"
	}
	return line
}
