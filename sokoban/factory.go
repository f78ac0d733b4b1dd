package sokoban

import (
	"fmt"

	"github.com/plus3/sokoban/ecs"
)

// Factory builds tile entities. Each Create call is a single Spawn, so an entity is either
// complete or absent.
type Factory struct {
	storage *ecs.Storage
}

// NewFactory returns a Factory that spawns into storage.
func NewFactory(storage *ecs.Storage) *Factory {
	return &Factory{storage: storage}
}

// FloorSprite returns the sprite name floor_<type>_<material>.
func FloorSprite(t FloorType, m FloorMaterial) string {
	return fmt.Sprintf("floor_%s_%s", t, m)
}

// WallSprite returns the sprite name wall_<color>_<shape>.
func WallSprite(c WallColor, s WallShape) string {
	return fmt.Sprintf("wall_%s_%s", c, s)
}

// BoxSprite returns the sprite name box_<type>_<color>.
func BoxSprite(t BoxType, c Color) string {
	return fmt.Sprintf("box_%s_%s", t, c)
}

// SpotSprite returns the sprite name spot_<color>.
func SpotSprite(c Color) string {
	return "spot_" + c.String()
}

// PlayerSprite is the base player sprite; the renderer appends the facing.
const PlayerSprite = "player"

// CreateFloor spawns a floor on the floor layer.
func (f *Factory) CreateFloor(pos Position, t FloorType, m FloorMaterial) (ecs.EntityId, error) {
	pos.Z = ZFloor
	return f.storage.Spawn(pos, Renderable{Sprite: FloorSprite(t, m)})
}

// CreateWall spawns a blocking wall.
func (f *Factory) CreateWall(pos Position, c WallColor, s WallShape) (ecs.EntityId, error) {
	pos.Z = ZTile
	return f.storage.Spawn(
		pos,
		Renderable{Sprite: WallSprite(c, s)},
		Wall{Color: c, Shape: s},
		Blocking{},
	)
}

// CreatePlayer spawns the movable player facing the given direction.
func (f *Factory) CreatePlayer(pos Position, facing Direction) (ecs.EntityId, error) {
	pos.Z = ZTile
	return f.storage.Spawn(
		pos,
		Renderable{Sprite: PlayerSprite},
		Player{},
		Movable{},
		Directional{Facing: facing},
	)
}

// CreateBox spawns a movable, blocking box.
func (f *Factory) CreateBox(pos Position, t BoxType, c Color) (ecs.EntityId, error) {
	pos.Z = ZTile
	return f.storage.Spawn(
		pos,
		Renderable{Sprite: BoxSprite(t, c)},
		Box{Type: t, Color: c},
		Movable{},
		Blocking{},
	)
}

// CreateSpot spawns a spot below the tile layer.
func (f *Factory) CreateSpot(pos Position, c Color) (ecs.EntityId, error) {
	pos.Z = ZSpot
	return f.storage.Spawn(
		pos,
		Renderable{Sprite: SpotSprite(c)},
		Spot{Color: c},
	)
}

// BuildGrid creates the entities of a parsed map. Every non-empty cell gets a floor beneath
// its tile entity.
func (f *Factory) BuildGrid(grid Grid) error {
	for _, tile := range grid.Tiles {
		var err error
		switch tile.Kind {
		case TileFloor:
		case TileWall:
			_, err = f.CreateWall(tile.Position, WallGray, WallSquare)
		case TilePlayer:
			_, err = f.CreatePlayer(tile.Position, Down)
		case TileBox:
			_, err = f.CreateBox(tile.Position, BoxBright, Red)
		case TileSpot:
			_, err = f.CreateSpot(tile.Position, Red)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("create %s at (%d, %d): %w", tile.Kind, tile.Position.X, tile.Position.Y, err)
		}

		if _, err := f.CreateFloor(tile.Position, FloorGravel, MaterialSand); err != nil {
			return fmt.Errorf("create floor at (%d, %d): %w", tile.Position.X, tile.Position.Y, err)
		}
	}
	return nil
}
